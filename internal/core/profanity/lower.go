package profanity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// lowered is the lowercase view of a text that matching runs against.
// Lowercasing can change the byte length of a rune, so src maps every byte
// offset of the view back to the source text. src is nil when the two line up
type lowered struct {
	text string
	src  []int
}

func lower(s string) lowered {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return lowered{text: strings.ToLower(s)}
	}

	var b strings.Builder
	b.Grow(len(s))
	src := make([]int, 0, len(s)+1)
	aligned := true
	for i := 0; i < len(s); {
		r, sz := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && sz == 1 {
			// invalid byte, copied through untouched
			b.WriteByte(s[i])
			src = append(src, i)
			i++
			continue
		}
		lr := unicode.ToLower(r)
		n := utf8.RuneLen(lr)
		if n != sz {
			aligned = false
		}
		b.WriteRune(lr)
		for k := 0; k < n; k++ {
			src = append(src, i)
		}
		i += sz
	}
	src = append(src, len(s))
	if aligned {
		src = nil
	}
	return lowered{text: b.String(), src: src}
}

// source maps a byte offset in the view to the source text
func (l lowered) source(i int) int {
	if l.src == nil {
		return i
	}
	return l.src[i]
}
