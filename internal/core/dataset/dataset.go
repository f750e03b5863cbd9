// Package dataset loads the per-language profane word lists the engine builds
// its patterns from. Lists are read-only once loaded
package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"profanity/internal/core/wordlist"

	"gopkg.in/yaml.v3"
)

//go:embed words.json
var embedded []byte

// Provider looks up the word list for a language code
type Provider interface {
	Lookup(lang string) ([]string, bool)
}

// Map is a literal Provider, handy for tests and overlays
type Map map[string][]string

// Lookup implements Provider
func (m Map) Lookup(lang string) ([]string, bool) {
	w, ok := m[lang]
	return w, ok
}

type rawPack struct {
	Version   int                 `json:"version" yaml:"version"`
	Meta      map[string]any      `json:"meta" yaml:"meta"`
	Languages map[string][]string `json:"languages" yaml:"languages"`
}

// Pack is a loaded dataset
type Pack struct {
	Version int
	Meta    map[string]any

	words map[string][]string
}

// Load returns the embedded dataset
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("dataset: parse words.json: %w", err)
	}
	return compile(rp, "words.json")
}

// LoadFile reads a dataset from a YAML file. JSON files parse too since JSON is YAML
func LoadFile(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}
	var rp rawPack
	if err := yaml.Unmarshal(data, &rp); err != nil {
		return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
	}
	if rp.Version == 0 {
		rp.Version = 1
	}
	return compile(rp, path)
}

func compile(rp rawPack, src string) (*Pack, error) {
	if rp.Version != 1 {
		return nil, fmt.Errorf("dataset: unsupported %s version %d (want 1)", src, rp.Version)
	}
	p := &Pack{
		Version: rp.Version,
		Meta:    rp.Meta,
		words:   make(map[string][]string, len(rp.Languages)),
	}
	for lang, list := range rp.Languages {
		lang = strings.ToLower(strings.TrimSpace(lang))
		if lang == "" {
			continue
		}
		p.words[lang] = append(p.words[lang], list...)
	}
	// Lowercase, trim, drop empties and dedupe while keeping order
	for lang, list := range p.words {
		seen := make(map[string]struct{}, len(list))
		out := make([]string, 0, len(list))
		for _, w := range list {
			w = wordlist.Normalize(strings.TrimSpace(w))
			if w == "" {
				continue
			}
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
		p.words[lang] = out
	}
	return p, nil
}

// Lookup implements Provider
func (p *Pack) Lookup(lang string) ([]string, bool) {
	w, ok := p.words[lang]
	return w, ok
}

// Languages returns the language codes in the pack, sorted
func (p *Pack) Languages() []string {
	out := make([]string, 0, len(p.words))
	for lang := range p.words {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Merge returns a Provider where overlay languages replace base ones
func Merge(base, overlay Provider) Provider {
	return merged{base: base, overlay: overlay}
}

type merged struct{ base, overlay Provider }

func (m merged) Lookup(lang string) ([]string, bool) {
	if m.overlay != nil {
		if w, ok := m.overlay.Lookup(lang); ok {
			return w, true
		}
	}
	if m.base == nil {
		return nil, false
	}
	return m.base.Lookup(lang)
}

// Languages returns the sorted union of the languages known to p when it can enumerate them
func Languages(p Provider) []string {
	type lister interface{ Languages() []string }
	switch v := p.(type) {
	case lister:
		return v.Languages()
	case Map:
		out := make([]string, 0, len(v))
		for k := range v {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	case merged:
		seen := map[string]struct{}{}
		var out []string
		for _, l := range append(Languages(v.base), Languages(v.overlay)...) {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
		sort.Strings(out)
		return out
	default:
		return nil
	}
}
