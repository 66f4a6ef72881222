package stats

import (
	"expvar"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// expvar names are process-global, so the updater is constructed once
// and shared by the subtests.
func TestStatsUpdater(t *testing.T) {
	mux := http.NewServeMux()
	su := NewStatsUpdater(mux)

	t.Run("registers the expvar route", func(t *testing.T) {
		assert.NotNil(t, su, "expected StatsUpdater to be non-nil")
		assert.NotNil(t, su.updateChan, "expected updateChan to be initialized")
		handler, pattern := mux.Handler(&http.Request{URL: &url.URL{Path: "/debug/vars"}, Method: http.MethodGet})
		assert.NotNil(t, handler, "expected handler for /debug/vars to be set")
		assert.Equal(t, "GET /debug/vars", pattern, "expected handler to be registered for GET method on /debug/vars")
	})

	t.Run("applies counter updates", func(t *testing.T) {
		su.RegisterMetric("TestMetric")
		su.Run()

		su.Incr("TestMetric")
		su.Incr("TestMetric")
		su.Decr("TestMetric")

		assert.Eventually(t, func() bool {
			metric, ok := su.vars.Get("TestMetric").(*expvar.Int)
			return ok && metric.Value() == 1
		}, time.Second, 10*time.Millisecond, "expected the counter to settle at 1")
	})
}
