package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"unirank/internal/core/ranking"
	"unirank/internal/modkit/httpkit"
	phttp "unirank/internal/platform/net/http"
	svc "unirank/internal/services/api/universities/service"

	"github.com/go-chi/chi/v5"
)

type fakeClearer struct{ calls int }

func (f *fakeClearer) Clear(context.Context) (int64, error) { f.calls++; return 5, nil }

func newRouter(t *testing.T, clr *fakeClearer, withAdmin bool) stdhttp.Handler {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	var s *svc.Svc
	if clr != nil {
		s = svc.New(ranking.NewMemory(ranking.Seed()), clr)
	} else {
		s = svc.New(ranking.NewMemory(ranking.Seed()), nil)
	}
	if withAdmin {
		Register(r, s, httpkit.NewAdminKeyPort("s3cret"))
	} else {
		Register(r, s, nil)
	}
	return r.Mux()
}

func do(t *testing.T, h stdhttp.Handler, method, target string, hdr map[string]string) (int, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: unmarshal %q: %v", method, target, rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestList_PaginatesAndFilters(t *testing.T) {
	h := newRouter(t, nil, false)

	code, env := do(t, h, stdhttp.MethodGet, "/universities?country=kingdom&sortBy=total_score&sortOrder=desc&limit=1", nil)
	if code != stdhttp.StatusOK {
		t.Fatalf("code = %d, env = %+v", code, env)
	}
	data := env.Data.(map[string]any)
	unis := data["universities"].([]any)
	page := data["pagination"].(map[string]any)
	if len(unis) != 1 || unis[0].(map[string]any)["university"] != "University of Oxford" {
		t.Fatalf("universities = %v", unis)
	}
	if page["total"].(float64) != 2 || page["totalPages"].(float64) != 2 || page["limit"].(float64) != 1 {
		t.Fatalf("pagination = %v", page)
	}
}

func names(t *testing.T, env phttp.Envelope) []string {
	t.Helper()
	var out []string
	list, _ := env.Data.(map[string]any)["universities"].([]any)
	for _, u := range list {
		out = append(out, u.(map[string]any)["university"].(string))
	}
	return out
}

func TestList_UnrecognizedParamsFallBack(t *testing.T) {
	h := newRouter(t, nil, false)
	_, asc := do(t, h, stdhttp.MethodGet, "/universities?sortOrder=ASC", nil)
	want := strings.Join(names(t, asc), "|")

	cases := []struct {
		name   string
		target string
		same   bool
	}{
		{"unknown order", "/universities?sortOrder=sideways", true},
		{"lower desc", "/universities?sortOrder=desc", false},
		{"bad paging", "/universities?page=abc&limit=-1", true},
		{"long search", "/universities?search=" + strings.Repeat("x", 201), false},
		{"long country", "/universities?country=" + strings.Repeat("y", 101), false},
	}
	for _, tc := range cases {
		code, env := do(t, h, stdhttp.MethodGet, tc.target, nil)
		if code != stdhttp.StatusOK {
			t.Fatalf("%s: code = %d env = %+v", tc.name, code, env)
		}
		if got := strings.Join(names(t, env), "|"); (got == want) != tc.same {
			t.Fatalf("%s: order %q vs ascending %q", tc.name, got, want)
		}
	}
}

func TestGet(t *testing.T) {
	h := newRouter(t, nil, false)

	code, env := do(t, h, stdhttp.MethodGet, "/universities/2", nil)
	if code != stdhttp.StatusOK || env.Data.(map[string]any)["university"] != "Harvard University" {
		t.Fatalf("code = %d data = %v", code, env.Data)
	}
	if code, _ := do(t, h, stdhttp.MethodGet, "/universities/99", nil); code != stdhttp.StatusNotFound {
		t.Fatalf("missing id code = %d", code)
	}
	if code, _ := do(t, h, stdhttp.MethodGet, "/universities/abc", nil); code != stdhttp.StatusBadRequest {
		t.Fatalf("bad id code = %d", code)
	}
	if code, _ := do(t, h, stdhttp.MethodGet, "/universities/0", nil); code != stdhttp.StatusBadRequest {
		t.Fatalf("zero id code = %d", code)
	}
}

func TestCountriesAndYears(t *testing.T) {
	h := newRouter(t, nil, false)

	_, env := do(t, h, stdhttp.MethodGet, "/countries", nil)
	cs := env.Data.([]any)
	if len(cs) != 2 || cs[0] != "United Kingdom" || cs[1] != "United States" {
		t.Fatalf("countries = %v", cs)
	}
	_, env = do(t, h, stdhttp.MethodGet, "/years", nil)
	ys := env.Data.([]any)
	if len(ys) != 1 || ys[0].(float64) != 2025 {
		t.Fatalf("years = %v", ys)
	}
}

func TestDeleteAll_RequiresAdminKey(t *testing.T) {
	clr := &fakeClearer{}
	h := newRouter(t, clr, true)

	if code, _ := do(t, h, stdhttp.MethodDelete, "/universities", nil); code != stdhttp.StatusUnauthorized {
		t.Fatalf("no key code = %d", code)
	}
	if code, _ := do(t, h, stdhttp.MethodDelete, "/universities", map[string]string{"X-Admin-Key": "nope"}); code != stdhttp.StatusUnauthorized {
		t.Fatalf("bad key code = %d", code)
	}
	code, env := do(t, h, stdhttp.MethodDelete, "/universities", map[string]string{"Authorization": "Bearer s3cret"})
	if code != stdhttp.StatusOK || env.Data.(map[string]any)["deleted"].(float64) != 5 {
		t.Fatalf("code = %d data = %v", code, env.Data)
	}
	if clr.calls != 1 {
		t.Fatalf("clear calls = %d", clr.calls)
	}
}

func TestDeleteAll_NotMountedWithoutAdmin(t *testing.T) {
	h := newRouter(t, nil, false)
	req := httptest.NewRequest(stdhttp.MethodDelete, "/universities", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("code = %d, want 405", rec.Code)
	}
}

func TestRegionsNotServed(t *testing.T) {
	h := newRouter(t, nil, true)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/regions", nil))
	if rec.Code != stdhttp.StatusNotFound && rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("/regions code = %d, want it unrouted", rec.Code)
	}
}
