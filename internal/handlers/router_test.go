package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRouter_CORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	w := httptest.NewRecorder()
	srv.handler.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_MethodRouting(t *testing.T) {
	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{http.MethodPost, "/products", http.StatusMethodNotAllowed},
		{http.MethodGet, "/product/add", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope/deeper", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			srv := newTestServer(t, nil)

			w := srv.do(tt.method, tt.path, nil)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}
