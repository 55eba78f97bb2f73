package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(codesSoldTotal.WithLabelValues("premium"))
	IncCodesSold(" Premium ")
	assert.Equal(t, before+1, testutil.ToFloat64(codesSoldTotal.WithLabelValues("premium")))

	before = testutil.ToFloat64(cardViewsTotal.WithLabelValues("slug"))
	IncCardView("slug")
	IncCardView("slug")
	assert.Equal(t, before+2, testutil.ToFloat64(cardViewsTotal.WithLabelValues("slug")))

	SetCodesByStatus(map[string]int64{"available": 7, "sold": 2})
	assert.Equal(t, float64(7), testutil.ToFloat64(codesByStatus.WithLabelValues("available")))
}

func TestObserveHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404"))
	ObserveHTTPRequest("GET", "", http.StatusNotFound, 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler(t *testing.T) {
	IncCodesRedeemed("basic")

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cardly_activation_codes_redeemed_total")
}
