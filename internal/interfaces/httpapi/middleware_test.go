package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireAdminToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

	cases := []struct {
		name       string
		configured string
		header     string
		value      string
		want       int
	}{
		{name: "bearer", configured: "s3cret", header: "Authorization", value: "Bearer s3cret", want: http.StatusNoContent},
		{name: "lowercase scheme", configured: "s3cret", header: "Authorization", value: "bearer s3cret", want: http.StatusNoContent},
		{name: "admin header", configured: "s3cret", header: "X-Admin-Token", value: "s3cret", want: http.StatusNoContent},
		{name: "basic scheme", configured: "s3cret", header: "Authorization", value: "Basic s3cret", want: http.StatusUnauthorized},
		{name: "prefix only", configured: "s3cret", header: "X-Admin-Token", value: "s3c", want: http.StatusUnauthorized},
		{name: "not configured", configured: "", header: "X-Admin-Token", value: "", want: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/admin/clubs/c1/matches", nil)
			if tc.value != "" {
				req.Header.Set(tc.header, tc.value)
			}
			rec := httptest.NewRecorder()
			RequireAdminToken(tc.configured, ok).ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /healthz "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/admin/clubs/c1/matches", "/"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestStartHandlerSpanWithoutParent(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/clubs/c1/matches", nil)
	req.SetPathValue("clubID", "c1")

	ctx, span := startHandlerSpan(req, "UploadMatch")
	defer span.End()
	if ctx != req.Context() {
		t.Fatalf("untraced request should keep its context")
	}
	if span.IsRecording() {
		t.Fatalf("untraced request should not record a handler span")
	}
	markSpanFailed(span, http.StatusInternalServerError, errors.New("boom"))
}

func TestRecoverPanicWritesInternalError(t *testing.T) {
	boom := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })
	rec := httptest.NewRecorder()
	recoverPanic(nil, boom).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
