package profanity

import (
	"strings"
	"unicode/utf8"

	perr "profanity/internal/platform/errors"
)

// Censor rewrites every profane word in text according to ct.
// Bytes outside matched words are kept as they are, original casing included
func (e *Engine) Censor(text string, ct CensorType, languages ...string) (string, error) {
	if !ct.Valid() {
		return "", perr.Wrapf(ErrInvalidCensorType, perr.ErrorCodeValidation, "invalid censor type %d", int(ct))
	}

	var (
		b    strings.Builder
		last int // source bytes consumed so far
	)
	b.Grow(len(text))
	err := e.scan(text, languages, func(l lowered, start, end int) bool {
		s, t := l.source(start), l.source(end)
		b.WriteString(text[last:s])
		b.WriteString(e.replace(text[s:t], ct))
		last = t
		return true
	})
	if err != nil {
		return "", err
	}
	if last == 0 && b.Len() == 0 {
		return text, nil
	}
	b.WriteString(text[last:])
	return b.String(), nil
}

// replace computes the censored form of one original-case word
func (e *Engine) replace(word string, ct CensorType) string {
	g := string(e.opts.GrawlixChar)
	switch ct {
	case Word:
		if strings.Contains(word, "_") {
			return e.opts.Grawlix + "_"
		}
		return e.opts.Grawlix
	case WordLength:
		return strings.Repeat(g, utf8.RuneCountInString(word))
	case FirstChar:
		_, sz := utf8.DecodeRuneInString(word)
		return g + word[sz:]
	case FirstVowel:
		if i := strings.IndexAny(word, "aeiouAEIOU"); i >= 0 {
			return word[:i] + g + word[i+1:]
		}
		return word
	case AllVowels:
		var b strings.Builder
		b.Grow(len(word))
		for i := 0; i < len(word); i++ {
			if strings.IndexByte("aeiouAEIOU", word[i]) >= 0 {
				b.WriteString(g)
			} else {
				b.WriteByte(word[i])
			}
		}
		return b.String()
	}
	return word
}
