package swaggerkit

import (
	_ "embed"
	"encoding/json"
	"net/http"

	"profanity/internal/core/version"
)

//go:embed openapi.json
var openapi []byte

// SpecMutator adjusts the parsed spec before it is served
type SpecMutator func(spec map[string]any)

// Open drops the bearer requirement from every operation, for servers
// running without an admin token
func Open(spec map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		ops, _ := p.(map[string]any)
		for _, op := range ops {
			if o, ok := op.(map[string]any); ok {
				delete(o, "security")
			}
		}
	}
}

// Doc returns the spec with the build version stamped in and mutators applied
func Doc(mutators ...SpecMutator) ([]byte, error) {
	var spec map[string]any
	if err := json.Unmarshal(openapi, &spec); err != nil {
		return nil, err
	}
	if info, ok := spec["info"].(map[string]any); ok {
		info["version"] = version.Info().Version
	}
	for _, m := range mutators {
		m(spec)
	}
	return json.Marshal(spec)
}

func serveDocJSON(mutators ...SpecMutator) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		body, err := Doc(mutators...)
		if err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(body)
	}
}
