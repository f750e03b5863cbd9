// Package profanity detects and censors profane words in free-form text.
//
// An Engine combines per-language word lists from a dataset with a caller
// managed blacklist, whitelist and removed list. It compiles one matcher per
// distinct language set and caches it until the blacklist or removed list
// changes. Engines are not safe for concurrent use
package profanity

import (
	"profanity/internal/core/dataset"
	"profanity/internal/core/wordlist"
)

// Span is a half-open byte range of the input text. Word is the lowercased match
type Span struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Word  string `json:"word"`
}

// Engine holds the word lists and the matcher cache
type Engine struct {
	opts Options
	data dataset.Provider

	whitelist *wordlist.Set
	blacklist *wordlist.Set
	removed   *wordlist.Set

	matchers map[string]*Matcher
	allow    *automaton // whitelist automaton, nil until needed
}

// New returns an Engine reading words from data. Zero fields of opts are
// filled from DefaultOptions, except WholeWord
func New(data dataset.Provider, opts Options) *Engine {
	if data == nil {
		data = dataset.Map{}
	}
	e := &Engine{
		opts:     opts.withDefaults(),
		data:     data,
		matchers: make(map[string]*Matcher),
	}
	e.whitelist = wordlist.New(func() { e.allow = nil })
	e.blacklist = wordlist.New(e.Invalidate)
	e.removed = wordlist.New(e.Invalidate)
	return e
}

// Options returns a copy of the effective options
func (e *Engine) Options() Options {
	o := e.opts
	o.Languages = append([]string(nil), o.Languages...)
	return o
}

// Languages lists the codes the dataset knows about, when it can enumerate them
func (e *Engine) Languages() []string { return dataset.Languages(e.data) }

// Invalidate drops every cached matcher
func (e *Engine) Invalidate() {
	clear(e.matchers)
}

// AddWords blacklists words. A word that was previously removed is only
// taken off the removed list so the dataset entry comes back
func (e *Engine) AddWords(words ...string) {
	var restore, add []string
	for _, w := range words {
		if e.removed.Has(w) {
			restore = append(restore, w)
		} else {
			add = append(add, w)
		}
	}
	if len(restore) > 0 {
		e.removed.Remove(restore...)
	}
	if len(add) > 0 {
		e.blacklist.Add(add...)
	}
}

// RemoveWords un-blacklists words, or suppresses them when they come from the dataset
func (e *Engine) RemoveWords(words ...string) {
	var unlist, suppress []string
	for _, w := range words {
		if e.blacklist.Has(w) {
			unlist = append(unlist, w)
		} else {
			suppress = append(suppress, w)
		}
	}
	if len(unlist) > 0 {
		e.blacklist.Remove(unlist...)
	}
	if len(suppress) > 0 {
		e.removed.Add(suppress...)
	}
}

// AddWhitelist marks words as never censored
func (e *Engine) AddWhitelist(words ...string) { e.whitelist.Add(words...) }

// RemoveWhitelist drops words from the whitelist
func (e *Engine) RemoveWhitelist(words ...string) { e.whitelist.Remove(words...) }

// Whitelist returns the whitelisted words in insertion order
func (e *Engine) Whitelist() []string { return e.whitelist.Words() }

// Blacklist returns the blacklisted words in insertion order
func (e *Engine) Blacklist() []string { return e.blacklist.Words() }

// Removed returns the suppressed dataset words in insertion order
func (e *Engine) Removed() []string { return e.removed.Words() }

// Matcher returns the cached matcher for languages, building it on a miss
func (e *Engine) Matcher(languages ...string) (*Matcher, error) {
	if len(languages) == 0 {
		return nil, ErrInvalidInput
	}
	key, langs := canonical(languages)
	if m, ok := e.matchers[key]; ok {
		return m, nil
	}

	var words []string
	for _, lang := range langs {
		list, ok := e.data.Lookup(lang)
		if !ok {
			return nil, unknownLanguage(lang)
		}
		for _, w := range list {
			if !e.removed.Has(w) {
				words = append(words, w)
			}
		}
	}
	words = append(words, e.blacklist.Words()...)

	m, err := compileMatcher(key, words, e.opts.WholeWord)
	if err != nil {
		return nil, err
	}
	e.matchers[key] = m
	return m, nil
}

func (e *Engine) resolve(languages []string) []string {
	if len(languages) > 0 {
		return languages
	}
	return e.opts.Languages
}

func (e *Engine) resolver(text string) *resolver {
	if e.whitelist.Len() == 0 {
		return nil
	}
	words := e.whitelist.Words()
	if e.allow == nil {
		e.allow = buildAutomaton(words)
	}
	return &resolver{words: words, ac: e.allow, wholeWord: e.opts.WholeWord, text: text}
}

// scan calls fn for every match in text that the whitelist does not cover.
// fn returns false to stop
func (e *Engine) scan(text string, languages []string, fn func(l lowered, start, end int) bool) error {
	m, err := e.Matcher(e.resolve(languages)...)
	if err != nil {
		return err
	}
	l := lower(text)
	spans := m.find(l.text)
	if len(spans) == 0 {
		return nil
	}
	wl := e.resolver(l.text)
	for _, sp := range spans {
		if wl.suppressed(sp[0], sp[1]) {
			continue
		}
		if !fn(l, sp[0], sp[1]) {
			return nil
		}
	}
	return nil
}

// Exists reports whether text holds any profanity for languages, or the
// default languages when none are given
func (e *Engine) Exists(text string, languages ...string) (bool, error) {
	found := false
	err := e.scan(text, languages, func(lowered, int, int) bool {
		found = true
		return false
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Matches returns every profane span that survives the whitelist
func (e *Engine) Matches(text string, languages ...string) ([]Span, error) {
	var out []Span
	err := e.scan(text, languages, func(l lowered, start, end int) bool {
		out = append(out, Span{Start: l.source(start), End: l.source(end), Word: l.text[start:end]})
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
