package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"medfinder-api/internal/models"
)

const uniqueViolation = "23505"

// Repository implements the repository interface for PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// dataAccess wraps a driver error with a stack trace.
func dataAccess(op string, err error) error {
	return &models.DataAccessError{Op: "repository: " + op, Err: pkgerrors.WithStack(err)}
}

// likePattern builds a substring ILIKE pattern with wildcards in text escaped.
func likePattern(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(text) + "%"
}

// SearchInStockMedicines returns in-stock medicines whose name, generic name or
// brand contains text, case-insensitively, with the owning store populated.
func (r *Repository) SearchInStockMedicines(ctx context.Context, text string) ([]models.Medicine, error) {
	sql := `
		SELECT
			m.id,
			m.name,
			m.generic_name,
			m.brand,
			m.price,
			m.quantity,
			m.category,
			m.description,
			m.in_stock,
			m.store_id,
			m.expiry_date,
			m.created_at,
			m.updated_at,
			s.id,
			s.name,
			s.address,
			s.phone,
			s.email,
			s.longitude,
			s.latitude,
			s.owner_id,
			s.is_active
		FROM medicines m
		LEFT JOIN stores s ON s.id = m.store_id
		WHERE (m.name ILIKE $1 OR m.generic_name ILIKE $1 OR m.brand ILIKE $1)
			AND m.in_stock
			AND m.quantity > 0
		ORDER BY m.created_at, m.id
	`

	rows, err := r.db.Query(ctx, sql, likePattern(text))
	if err != nil {
		return nil, dataAccess("failed to execute search query", err)
	}
	defer rows.Close()

	medicines := []models.Medicine{}
	for rows.Next() {
		var (
			m        models.Medicine
			generic  *string
			brand    *string
			desc     *string
			storeID  pgtype.UUID
			name     *string
			address  *string
			phone    *string
			email    *string
			lng, lat *float64
			ownerID  pgtype.UUID
			isActive *bool
		)
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&generic,
			&brand,
			&m.Price,
			&m.Quantity,
			&m.Category,
			&desc,
			&m.InStock,
			&m.StoreID,
			&m.ExpiryDate,
			&m.CreatedAt,
			&m.UpdatedAt,
			&storeID,
			&name,
			&address,
			&phone,
			&email,
			&lng,
			&lat,
			&ownerID,
			&isActive,
		)
		if err != nil {
			return nil, dataAccess("failed to scan medicine", err)
		}
		m.GenericName = deref(generic)
		m.Brand = deref(brand)
		m.Description = deref(desc)

		if storeID.Valid {
			m.Store = &models.Store{
				ID:       uuid.UUID(storeID.Bytes),
				Name:     deref(name),
				Address:  deref(address),
				Phone:    deref(phone),
				Email:    deref(email),
				Location: geoPoint(lng, lat),
				OwnerID:  uuid.UUID(ownerID.Bytes),
				IsActive: isActive != nil && *isActive,
			}
		}
		medicines = append(medicines, m)
	}

	if err := rows.Err(); err != nil {
		return nil, dataAccess("error iterating rows", err)
	}

	return medicines, nil
}

// CreateUser inserts a user. A duplicate email yields models.ErrAlreadyExists.
func (r *Repository) CreateUser(ctx context.Context, user models.User) error {
	sql := `
		INSERT INTO users (id, email, password_hash, name, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, sql, user.ID, user.Email, user.PasswordHash, user.Name, user.Role, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("repository: user %s: %w", user.Email, models.ErrAlreadyExists)
		}
		return dataAccess("failed to insert user", err)
	}
	return nil
}

// FindUserByEmail looks up a user by email. A missing user yields models.ErrNotFound.
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql := `
		SELECT id, email, password_hash, name, role, created_at
		FROM users
		WHERE email = $1
	`

	var u models.User
	err := r.db.QueryRow(ctx, sql, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repository: user %s: %w", email, models.ErrNotFound)
		}
		return nil, dataAccess("failed to query user", err)
	}
	return &u, nil
}

// CreateStore inserts a store.
func (r *Repository) CreateStore(ctx context.Context, store models.Store) error {
	sql := `
		INSERT INTO stores (id, name, address, phone, email, longitude, latitude, owner_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	lng, lat := coordinates(store.Location)
	_, err := r.db.Exec(ctx, sql,
		store.ID, store.Name, store.Address, store.Phone, store.Email,
		lng, lat, store.OwnerID, store.IsActive, store.CreatedAt, store.UpdatedAt,
	)
	if err != nil {
		return dataAccess("failed to insert store", err)
	}
	return nil
}

const storeColumns = `id, name, address, phone, email, longitude, latitude, owner_id, is_active, created_at, updated_at`

func scanStore(row pgx.Row) (models.Store, error) {
	var (
		s        models.Store
		lng, lat *float64
	)
	err := row.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &s.Email, &lng, &lat, &s.OwnerID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	s.Location = geoPoint(lng, lat)
	return s, err
}

// ListActiveStoresByOwner returns the owner's active stores, oldest first.
func (r *Repository) ListActiveStoresByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Store, error) {
	sql := `SELECT ` + storeColumns + ` FROM stores WHERE owner_id = $1 AND is_active ORDER BY created_at`

	rows, err := r.db.Query(ctx, sql, ownerID)
	if err != nil {
		return nil, dataAccess("failed to query stores", err)
	}
	defer rows.Close()

	stores := []models.Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, dataAccess("failed to scan store", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccess("error iterating rows", err)
	}
	return stores, nil
}

// FindStoreByOwner returns the store if ownerID owns it, models.ErrNotFound otherwise.
func (r *Repository) FindStoreByOwner(ctx context.Context, storeID, ownerID uuid.UUID) (*models.Store, error) {
	sql := `SELECT ` + storeColumns + ` FROM stores WHERE id = $1 AND owner_id = $2`

	s, err := scanStore(r.db.QueryRow(ctx, sql, storeID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("repository: store %s: %w", storeID, models.ErrNotFound)
		}
		return nil, dataAccess("failed to query store", err)
	}
	return &s, nil
}

// CreateMedicine inserts a medicine.
func (r *Repository) CreateMedicine(ctx context.Context, m models.Medicine) error {
	sql := `
		INSERT INTO medicines (
			id, name, generic_name, brand, price, quantity, category,
			description, in_stock, store_id, expiry_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, sql,
		m.ID, m.Name, nullable(m.GenericName), nullable(m.Brand), m.Price, m.Quantity, m.Category,
		nullable(m.Description), m.InStock, m.StoreID, m.ExpiryDate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return dataAccess("failed to insert medicine", err)
	}
	return nil
}

// ListMedicinesByStore returns a store's medicines, newest first.
func (r *Repository) ListMedicinesByStore(ctx context.Context, storeID uuid.UUID) ([]models.Medicine, error) {
	sql := `
		SELECT id, name, generic_name, brand, price, quantity, category,
			description, in_stock, store_id, expiry_date, created_at, updated_at
		FROM medicines
		WHERE store_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, sql, storeID)
	if err != nil {
		return nil, dataAccess("failed to query medicines", err)
	}
	defer rows.Close()

	medicines := []models.Medicine{}
	for rows.Next() {
		var (
			m                    models.Medicine
			generic, brand, desc *string
		)
		err := rows.Scan(
			&m.ID, &m.Name, &generic, &brand, &m.Price, &m.Quantity, &m.Category,
			&desc, &m.InStock, &m.StoreID, &m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt,
		)
		if err != nil {
			return nil, dataAccess("failed to scan medicine", err)
		}
		m.GenericName = deref(generic)
		m.Brand = deref(brand)
		m.Description = deref(desc)
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, dataAccess("error iterating rows", err)
	}
	return medicines, nil
}

// Ping checks database connectivity.
func (r *Repository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := r.db.Ping(ctx); err != nil {
		return dataAccess("ping failed", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// geoPoint rebuilds a GeoJSON point; either coordinate missing yields nil.
func geoPoint(lng, lat *float64) *models.GeoPoint {
	if lng == nil || lat == nil {
		return nil
	}
	return models.NewGeoPoint(*lat, *lng)
}

func coordinates(g *models.GeoPoint) (lng, lat *float64) {
	if g == nil || len(g.Coordinates) < 2 {
		return nil, nil
	}
	return &g.Coordinates[0], &g.Coordinates[1]
}
