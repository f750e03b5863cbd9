package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(k string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Set(k, "1")
			next.ServeHTTP(w, r)
		})
	}
}

func status(code int) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(code) }
}

func TestAdaptChi_VerbsGroupsAndRoutes(t *testing.T) {
	t.Parallel()

	m := chi.NewRouter()
	r := AdaptChi(m)
	r.Use(header("X-Root"))

	r.Get("/words", status(200))
	r.Post("/words", status(201))
	r.Delete("/words", status(202))
	r.Options("/words", status(204))
	r.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(203) }))

	r.Group(func(g Router) {
		g.Use(header("X-Group"))
		g.Get("/grouped", status(200))
	})
	r.Route("/api", func(api Router) {
		api.Route("/v1", func(v1 Router) {
			v1.Post("/censor", status(200))
		})
	})

	do := func(method, path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		r.Mux().ServeHTTP(rr, httptest.NewRequest(method, path, nil))
		return rr
	}

	cases := []struct {
		method, path string
		want         int
	}{
		{stdhttp.MethodGet, "/words", 200},
		{stdhttp.MethodPost, "/words", 201},
		{stdhttp.MethodDelete, "/words", 202},
		{stdhttp.MethodOptions, "/words", 204},
		{stdhttp.MethodGet, "/raw", 203},
		{stdhttp.MethodPost, "/api/v1/censor", 200},
		{stdhttp.MethodGet, "/api/v1/censor", stdhttp.StatusMethodNotAllowed},
	}
	for _, c := range cases {
		if rr := do(c.method, c.path); rr.Code != c.want {
			t.Fatalf("%s %s = %d, want %d", c.method, c.path, rr.Code, c.want)
		}
	}

	rr := do(stdhttp.MethodGet, "/grouped")
	if rr.Header().Get("X-Root") != "1" || rr.Header().Get("X-Group") != "1" {
		t.Fatalf("group should see root and group middleware: %v", rr.Header())
	}
	if rr := do(stdhttp.MethodGet, "/words"); rr.Header().Get("X-Group") != "" {
		t.Fatalf("group middleware leaked to root routes")
	}
}
