package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestParam_FromChiRoute(t *testing.T) {
	var got string
	m := chi.NewRouter()
	m.Get("/universities/{id}", func(w http.ResponseWriter, r *http.Request) { got = Param(r, "id") })

	m.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/universities/42", nil))
	if got != "42" {
		t.Fatalf("Param = %q, want 42", got)
	}
	if Param(httptest.NewRequest(http.MethodGet, "/", nil), "id") != "" {
		t.Fatalf("Param without route context should be empty")
	}
}
