package profanity

import "sort"

// isWordByte matches the boundary class used when checking that a
// whitelisted occurrence stands alone: ASCII letters, digits, '_' and '-'
func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '_', b == '-':
		return true
	}
	return false
}

// resolver decides whether a match is covered by a whitelisted word.
// Occurrences of every whitelisted word are collected in a single pass the
// first time a match asks
type resolver struct {
	words     []string
	ac        *automaton
	wholeWord bool
	text      string

	starts [][]int // per word, ascending
	ready  bool
}

func (r *resolver) index() {
	r.ready = true
	r.starts = make([][]int, len(r.words))
	r.ac.each(r.text, func(end, id int) {
		r.starts[id] = append(r.starts[id], end-len(r.words[id]))
	})
}

// first returns the first occurrence of word id starting at or after from
func (r *resolver) first(id, from int) (int, bool) {
	s := r.starts[id]
	k := sort.SearchInts(s, from)
	if k == len(s) {
		return 0, false
	}
	return s[k], true
}

// suppressed reports whether [start,end) of the lowercase text is whitelisted.
// Only the first occurrence of each word at or after start-len(word)+1 counts
func (r *resolver) suppressed(start, end int) bool {
	if r == nil || len(r.words) == 0 {
		return false
	}
	if !r.ready {
		r.index()
	}
	for id, w := range r.words {
		i, ok := r.first(id, max(0, start-len(w)+1))
		if !ok {
			continue
		}
		iEnd := i + len(w)
		if r.wholeWord {
			if start == i && end == iEnd &&
				(start == 0 || !isWordByte(r.text[start-1])) &&
				(end == len(r.text) || !isWordByte(r.text[end])) {
				return true
			}
			continue
		}
		if (start >= i && start < iEnd) || (end > i && end <= iEnd) || (i >= start && iEnd <= end) {
			return true
		}
	}
	return false
}
