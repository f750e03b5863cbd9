// Package wordlist provides the lowercase word sets the profanity engine keeps
// for its whitelist, blacklist and removed words
package wordlist

import "strings"

// Normalize folds a word the way every list stores it
func Normalize(w string) string { return strings.ToLower(w) }

// Set is a unique, insertion ordered collection of lowercase words.
// onChange fires once per Add/Remove batch that actually mutated the set
type Set struct {
	words    []string
	index    map[string]int
	onChange func()
}

// New returns an empty Set. onChange may be nil
func New(onChange func()) *Set {
	return &Set{index: make(map[string]int), onChange: onChange}
}

// Add inserts words that are not already present
func (s *Set) Add(words ...string) {
	changed := false
	for _, w := range words {
		w = Normalize(w)
		if w == "" {
			continue
		}
		if _, ok := s.index[w]; ok {
			continue
		}
		s.index[w] = len(s.words)
		s.words = append(s.words, w)
		changed = true
	}
	if changed {
		s.notify()
	}
}

// Remove deletes words; unknown words are ignored
func (s *Set) Remove(words ...string) {
	changed := false
	for _, w := range words {
		w = Normalize(w)
		i, ok := s.index[w]
		if !ok {
			continue
		}
		s.words = append(s.words[:i], s.words[i+1:]...)
		delete(s.index, w)
		// reindex the tail
		for j := i; j < len(s.words); j++ {
			s.index[s.words[j]] = j
		}
		changed = true
	}
	if changed {
		s.notify()
	}
}

// Has reports whether word (case-insensitive) is in the set
func (s *Set) Has(word string) bool {
	_, ok := s.index[Normalize(word)]
	return ok
}

// Words returns a copy of the members in insertion order
func (s *Set) Words() []string {
	return append([]string(nil), s.words...)
}

// Len returns the number of members
func (s *Set) Len() int { return len(s.words) }

func (s *Set) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}
