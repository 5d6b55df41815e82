package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_admin/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/api/rooms", "GET", 200, 12*time.Millisecond)
	observability.ObserveAPICall("rooms", "list", 200, 3*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{"hotel_admin_http_requests_total", "hotel_admin_api_calls_total"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}

func TestNotifier_WritesKindAndError(t *testing.T) {
	var buf strings.Builder
	n := observability.NewNotifier(observability.NewLoggerTo(&buf, "prod"))

	n.Success("Room added successfully")
	n.Error("Failed to add room", io.ErrUnexpectedEOF)

	out := buf.String()
	if !strings.Contains(out, `"kind":"success"`) || !strings.Contains(out, "Room added successfully") {
		t.Fatalf("missing success line: %s", out)
	}
	if !strings.Contains(out, `"level":"error"`) || !strings.Contains(out, "unexpected EOF") {
		t.Fatalf("missing error line: %s", out)
	}
}
