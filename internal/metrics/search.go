package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var searchStores = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "medfinder",
		Name:      "search_result_stores",
		Help:      "Number of stores returned per search",
		Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
	},
	[]string{"located"},
)

func init() {
	prometheus.MustRegister(searchStores)
}

// ObserveSearch records how many stores a search returned and whether the
// caller supplied a location.
func ObserveSearch(located bool, stores int) {
	searchStores.WithLabelValues(strconv.FormatBool(located)).Observe(float64(stores))
}
