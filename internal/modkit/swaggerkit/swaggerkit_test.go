package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "profanity/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestDoc_StampsVersionAndAppliesMutators(t *testing.T) {
	raw, err := Doc(Open)
	if err != nil {
		t.Fatalf("Doc: %v", err)
	}
	var spec struct {
		Info  struct{ Version string } `json:"info"`
		Paths map[string]map[string]map[string]any
	}
	if err := json.Unmarshal(raw, &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Info.Version == "" {
		t.Fatalf("version not stamped")
	}
	if _, ok := spec.Paths["/profanity/censor"]["post"]; !ok {
		t.Fatalf("censor route missing from spec")
	}
	if _, ok := spec.Paths["/profanity/words"]["post"]["security"]; ok {
		t.Fatalf("Open should drop security requirements")
	}

	raw, _ = Doc()
	if !strings.Contains(string(raw), "BearerAuth") {
		t.Fatalf("secured spec should keep bearer requirements")
	}
}

func TestMount(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("disabled docs should 404, got %d", rr.Code)
	}

	mux = chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"openapi"`) {
		t.Fatalf("doc.json: %d", rr.Code)
	}
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rr.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect: %d", rr.Code)
	}
}
