package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body, _ := io.ReadAll(w.Body)
	return string(body)
}

func TestObserveView(t *testing.T) {
	m := New()
	m.ObserveView("issues", 3)
	m.ObserveView("issues", 0)

	out := scrape(t, m)
	for _, want := range []string{
		`techhub_view_requests_total{view="issues"} 2`,
		`techhub_filter_results_count{view="issues"} 2`,
		`techhub_filter_results_sum{view="issues"} 3`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestObserveReload(t *testing.T) {
	m := New()
	m.ObserveReload(ReloadApplied)
	m.ObserveReload(ReloadUnchanged)
	m.ObserveReload(ReloadUnchanged)

	out := scrape(t, m)
	if !strings.Contains(out, `techhub_catalog_reloads_total{result="unchanged"} 2`) {
		t.Errorf("unchanged reloads missing:\n%s", out)
	}
	if !strings.Contains(out, "go_goroutines") {
		t.Error("runtime collectors not registered")
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveView("events", 1)
	if strings.Contains(scrape(t, b), `techhub_view_requests_total{view="events"}`) {
		t.Error("registries share state")
	}
}
