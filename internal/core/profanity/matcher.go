package profanity

import (
	"regexp"
	"sort"
	"strings"

	perr "profanity/internal/platform/errors"
)

// boundary accepts a classic word boundary or an underscore, so "_word_"
// counts as bounded while "sword" does not
const boundary = `(?:\b|_)`

// Matcher is a compiled alternation over the active word list for one
// language set. It is immutable once built
type Matcher struct {
	key   string
	words []string
	re    *regexp.Regexp // nil when there is nothing to match
}

// Key is the canonical language key the matcher is cached under
func (m *Matcher) Key() string { return m.key }

// Words returns the alternation branches in pattern order
func (m *Matcher) Words() []string { return append([]string(nil), m.words...) }

// Pattern returns the regular expression source, empty when the matcher never matches
func (m *Matcher) Pattern() string {
	if m.re == nil {
		return ""
	}
	return m.re.String()
}

// find returns the successive non-overlapping match spans in s
func (m *Matcher) find(s string) [][]int {
	if m.re == nil || s == "" {
		return nil
	}
	return m.re.FindAllStringIndex(s, -1)
}

// canonical trims, lowercases, dedupes and sorts language codes
func canonical(languages []string) (string, []string) {
	seen := make(map[string]struct{}, len(languages))
	out := make([]string, 0, len(languages))
	for _, l := range languages {
		l = strings.ToLower(strings.TrimSpace(l))
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	sort.Strings(out)
	return strings.Join(out, ","), out
}

// compileMatcher joins the escaped words into one case-insensitive alternation.
// Leftmost-first alternation means earlier words win at the same offset
func compileMatcher(key string, words []string, wholeWord bool) (*Matcher, error) {
	seen := make(map[string]struct{}, len(words))
	uniq := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
	}
	m := &Matcher{key: key, words: uniq}
	if len(uniq) == 0 {
		return m, nil
	}

	var b strings.Builder
	b.WriteString("(?i)")
	if wholeWord {
		b.WriteString(boundary)
	}
	b.WriteByte('(')
	for i, w := range uniq {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(regexp.QuoteMeta(w))
	}
	b.WriteByte(')')
	if wholeWord {
		b.WriteString(boundary)
	}

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "compile matcher %q", key)
	}
	m.re = re
	return m, nil
}
