package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/shop-admin/backend/pkg/logger"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedLevel string
	}{
		{
			name:          "success is info",
			status:        http.StatusOK,
			body:          "[]",
			expectedLevel: "INFO",
		},
		{
			name:          "client error is warn",
			status:        http.StatusBadRequest,
			body:          `{"error":"Invalid ID supplied"}`,
			expectedLevel: "WARN",
		},
		{
			name:          "server error is error",
			status:        http.StatusInternalServerError,
			body:          `{"error":"Internal server error"}`,
			expectedLevel: "ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&buf, "debug")

			testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			handler := chimiddleware.RequestID(Logger(log)(testHandler))

			req := httptest.NewRequest(http.MethodGet, "/products?name=asc", nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to decode log entry %q: %v", buf.String(), err)
			}

			if entry["level"] != tt.expectedLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.expectedLevel)
			}
			if int(entry["status"].(float64)) != tt.status {
				t.Errorf("logged status = %v, want %d", entry["status"], tt.status)
			}
			if int(entry["bytes"].(float64)) != len(tt.body) {
				t.Errorf("logged bytes = %v, want %d", entry["bytes"], len(tt.body))
			}
			if entry["query"] != "name=asc" {
				t.Errorf("logged query = %v, want name=asc", entry["query"])
			}
			if id, _ := entry["request_id"].(string); id == "" {
				t.Error("expected request_id to be logged")
			}
		})
	}
}
