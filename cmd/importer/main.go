package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"medfinder-api/internal/config"
	"medfinder-api/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MedicineRecord is one row of an inventory CSV:
// name,generic_name,brand,price,quantity,category,description,expiry_date
type MedicineRecord struct {
	Name        string
	GenericName string
	Brand       string
	Price       float64
	Quantity    int
	Category    string
	Description string
	ExpiryDate  *time.Time
}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	store := flag.String("store", "", "ID of the store that receives the inventory")
	flag.Parse()

	if *file == "" || *store == "" {
		fmt.Println("Error: --file and --store flags are required")
		os.Exit(1)
	}

	storeID, err := uuid.Parse(*store)
	if err != nil {
		fmt.Printf("Error: invalid store id %q: %v\n", *store, err)
		os.Exit(1)
	}

	fmt.Printf("Starting import from file: %s\n", *file)

	records, err := parseCSV(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d records\n", len(records))

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Connect to DB
	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(ctx)

	// Ensure tables exist
	if err := repository.EnsureSchema(ctx, conn); err != nil {
		fmt.Printf("Error creating schema: %v\n", err)
		os.Exit(1)
	}

	before, err := countMedicines(ctx, conn, storeID)
	if err != nil {
		fmt.Printf("Error checking store: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	if err := insertRecords(ctx, conn, storeID, records); err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	if err := verifyImport(ctx, conn, storeID, before+len(records)); err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d records\n", len(records))
}

func parseCSV(filePath string) ([]MedicineRecord, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return readRecords(file)
}

func readRecords(r io.Reader) ([]MedicineRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []MedicineRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		medicine, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, medicine)
	}

	return records, nil
}

func parseRecord(record []string) (MedicineRecord, error) {
	if len(record) < 6 {
		return MedicineRecord{}, fmt.Errorf("invalid record length: %d, expected at least 6 columns", len(record))
	}

	field := func(i int) string {
		if i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	m := MedicineRecord{
		Name:        field(0),
		GenericName: field(1),
		Brand:       field(2),
		Category:    field(5),
		Description: field(6),
	}
	if m.Name == "" || m.Category == "" {
		return MedicineRecord{}, fmt.Errorf("name and category are required")
	}

	price, err := strconv.ParseFloat(field(3), 64)
	if err != nil || price < 0 {
		return MedicineRecord{}, fmt.Errorf("invalid price: %s", field(3))
	}
	m.Price = price

	quantity, err := strconv.Atoi(field(4))
	if err != nil || quantity < 0 {
		return MedicineRecord{}, fmt.Errorf("invalid quantity: %s", field(4))
	}
	m.Quantity = quantity

	if raw := field(7); raw != "" {
		expiry, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return MedicineRecord{}, fmt.Errorf("invalid expiry date: %s", raw)
		}
		m.ExpiryDate = &expiry
	}

	return m, nil
}

func countMedicines(ctx context.Context, conn *pgx.Conn, storeID uuid.UUID) (int, error) {
	var exists bool
	if err := conn.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM stores WHERE id = $1)", storeID).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to look up store: %w", err)
	}
	if !exists {
		return 0, fmt.Errorf("store %s does not exist", storeID)
	}

	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM medicines WHERE store_id = $1", storeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

func insertRecords(ctx context.Context, conn *pgx.Conn, storeID uuid.UUID, records []MedicineRecord) error {
	now := time.Now().UTC()

	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"medicines"},
		[]string{"id", "name", "generic_name", "brand", "price", "quantity", "category", "description", "in_stock", "store_id", "expiry_date", "created_at", "updated_at"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{
				uuid.New(), r.Name, nullable(r.GenericName), nullable(r.Brand), r.Price, r.Quantity, r.Category,
				nullable(r.Description), r.Quantity > 0, storeID, r.ExpiryDate, now, now,
			}, nil
		}),
	)
	return err
}

func verifyImport(ctx context.Context, conn *pgx.Conn, storeID uuid.UUID, expectedCount int) error {
	var count int
	err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM medicines WHERE store_id = $1", storeID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}

	var inStock int
	err = conn.QueryRow(ctx, "SELECT COUNT(*) FROM medicines WHERE store_id = $1 AND in_stock", storeID).Scan(&inStock)
	if err != nil {
		return fmt.Errorf("failed to count in-stock records: %w", err)
	}

	fmt.Printf("Store now lists %d medicines, %d in stock\n", count, inStock)
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
