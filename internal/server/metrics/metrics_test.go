package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRequest_CountsByEndpointAndStatus(t *testing.T) {
	m := New()

	m.ObserveRequest("/catalog/goes18/prod", 200, 5*time.Millisecond)
	m.ObserveRequest("/catalog/goes18/prod", 200, 7*time.Millisecond)
	m.ObserveRequest("/catalog/goes18/prod", 404, time.Millisecond)

	ok := testutil.ToFloat64(m.Requests.WithLabelValues("/catalog/goes18/prod", "200"))
	if ok != 2 {
		t.Fatalf("expected 2 successful requests, got %v", ok)
	}
	missing := testutil.ToFloat64(m.Requests.WithLabelValues("/catalog/goes18/prod", "404"))
	if missing != 1 {
		t.Fatalf("expected 1 not-found request, got %v", missing)
	}
}

func TestHandler_ServesRegisteredMetrics(t *testing.T) {
	m := New()
	m.QuotaDenials.WithLabelValues("Free").Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `skycatalog_quota_denials_total{plan="Free"} 1`) {
		t.Fatalf("quota denial counter missing from exposition:\n%s", rec.Body.String())
	}
}
