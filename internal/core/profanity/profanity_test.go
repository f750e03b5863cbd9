package profanity

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"profanity/internal/core/dataset"
	perr "profanity/internal/platform/errors"
)

func testData() dataset.Map {
	return dataset.Map{
		"test":  {"foo", "bar"},
		"en":    {"ass", "shit", "badword"},
		"other": {"baz"},
		"empty": {},
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testData(), DefaultOptions())
}

func mustCensor(t *testing.T, e *Engine, text string, ct CensorType, langs ...string) string {
	t.Helper()
	out, err := e.Censor(text, ct, langs...)
	if err != nil {
		t.Fatalf("Censor(%q): %v", text, err)
	}
	return out
}

func mustExists(t *testing.T, e *Engine, text string, langs ...string) bool {
	t.Helper()
	ok, err := e.Exists(text, langs...)
	if err != nil {
		t.Fatalf("Exists(%q): %v", text, err)
	}
	return ok
}

func TestNew_FillsDefaults(t *testing.T) {
	e := New(nil, Options{})
	o := e.Options()
	if !reflect.DeepEqual(o.Languages, []string{"en"}) {
		t.Fatalf("Languages = %v", o.Languages)
	}
	if o.Grawlix != "@#$%&!" || o.GrawlixChar != '*' {
		t.Fatalf("grawlix defaults not applied: %+v", o)
	}
	if o.WholeWord {
		t.Fatalf("WholeWord must stay as given")
	}
	if !DefaultOptions().WholeWord {
		t.Fatalf("DefaultOptions should be whole word")
	}
}

func TestCensor_OffsetsAcrossLengthChanges(t *testing.T) {
	e := newEngine(t)
	if got := mustCensor(t, e, "foo bar", WordLength, "test"); got != "*** ***" {
		t.Fatalf("got %q", got)
	}
	if got := mustCensor(t, e, "foo bar", Word, "test"); got != "@#$%&! @#$%&!" {
		t.Fatalf("got %q", got)
	}
	got := mustCensor(t, e, "a foo, then bar and FOO.", Word, "test")
	if want := "a @#$%&!, then @#$%&! and @#$%&!."; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestCensor_Strategies(t *testing.T) {
	e := newEngine(t)
	e.AddWords("badword", "xyz")

	cases := []struct {
		name string
		in   string
		ct   CensorType
		want string
	}{
		{"word", "you BadWord!", Word, "you @#$%&!!"},
		{"length", "you BadWord!", WordLength, "you *******!"},
		{"first char", "you BADWORD!", FirstChar, "you *ADWORD!"},
		{"first vowel", "you BADWORD!", FirstVowel, "you B*DWORD!"},
		{"all vowels", "you BaDwOrd!", AllVowels, "you B*Dw*rd!"},
		{"first vowel none", "xyz", FirstVowel, "xyz"},
		{"all vowels none", "xyz", AllVowels, "xyz"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustCensor(t, e, tc.in, tc.ct); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestCensor_Underscores(t *testing.T) {
	e := newEngine(t)
	if got := mustCensor(t, e, "x_foo_y", Word, "test"); got != "x@#$%&!_y" {
		t.Fatalf("got %q", got)
	}
	if got := mustCensor(t, e, "_foo_", Word, "test"); got != "@#$%&!_" {
		t.Fatalf("got %q", got)
	}
	if mustExists(t, e, "sfoo", "test") {
		t.Fatalf("embedded word should not match in whole word mode")
	}
}

func TestCensor_PreservesUnmatchedBytes(t *testing.T) {
	e := newEngine(t)
	in := "  Foo\tbAr\n\x00ok "
	got := mustCensor(t, e, in, WordLength, "test")
	if want := "  ***\t***\n\x00ok "; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := mustCensor(t, e, "nothing here", Word, "test"); got != "nothing here" {
		t.Fatalf("clean text changed: %q", got)
	}
}

func TestCensor_LowercaseLengthChanges(t *testing.T) {
	e := newEngine(t)
	// U+0130 lowers to a single byte, U+023A lowers to three
	if got := mustCensor(t, e, "İ foo", WordLength, "test"); got != "İ ***" {
		t.Fatalf("got %q", got)
	}
	if got := mustCensor(t, e, "Ⱥ FOO Ⱥ bar", FirstChar, "test"); got != "Ⱥ *OO Ⱥ *ar" {
		t.Fatalf("got %q", got)
	}
}

func TestCensor_IdempotentOnGrawlix(t *testing.T) {
	e := newEngine(t)
	once := mustCensor(t, e, "foo and bar", Word, "test")
	if mustExists(t, e, once, "test") {
		t.Fatalf("grawlix output still reported profane: %q", once)
	}
	if twice := mustCensor(t, e, once, Word, "test"); twice != once {
		t.Fatalf("second pass changed text: %q -> %q", once, twice)
	}
}

func TestCensor_InvalidType(t *testing.T) {
	e := newEngine(t)
	_, err := e.Censor("foo", CensorType(42), "test")
	if !errors.Is(err, ErrInvalidCensorType) {
		t.Fatalf("err = %v, want ErrInvalidCensorType", err)
	}
	if perr.CodeOf(err) != perr.ErrorCodeValidation {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
}

func TestExists_CaseInsensitive(t *testing.T) {
	e := newEngine(t)
	if !mustExists(t, e, "BADWORD") || !mustExists(t, e, "badword") {
		t.Fatalf("expected both casings to match")
	}
	e.AddWords("MiXeD")
	if !mustExists(t, e, "mixed") || !mustExists(t, e, "MIXED") {
		t.Fatalf("blacklist should be case-insensitive")
	}
}

func TestExists_LanguageResolution(t *testing.T) {
	e := newEngine(t)
	if mustExists(t, e, "baz", "test") {
		t.Fatalf("baz is not in test")
	}
	if !mustExists(t, e, "baz", "test", "other") {
		t.Fatalf("baz is in other")
	}
	if !mustExists(t, e, "shit") {
		t.Fatalf("default languages should be used")
	}
	if mustExists(t, e, "anything foo", "empty") {
		t.Fatalf("empty list must never match")
	}
}

func TestMatcher_Errors(t *testing.T) {
	e := newEngine(t)
	if _, err := e.Matcher(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	_, err := e.Exists("foo", "test", "zz")
	if !errors.Is(err, ErrUnknownLanguage) {
		t.Fatalf("err = %v, want ErrUnknownLanguage", err)
	}
	if !strings.Contains(err.Error(), `"zz"`) {
		t.Fatalf("error should name the language: %v", err)
	}
	if perr.HTTPStatus(err) != perr.HTTPStatusCode(perr.ErrorCodeInvalidArgument) {
		t.Fatalf("unexpected status mapping")
	}
}

func TestMatcher_CacheKeyAndInvalidation(t *testing.T) {
	e := newEngine(t)
	m1, err := e.Matcher("en", "test")
	if err != nil {
		t.Fatal(err)
	}
	m2, _ := e.Matcher(" TEST ", "en", "en")
	if m1 != m2 {
		t.Fatalf("canonical keys should share a matcher")
	}
	if m1.Key() != "en,test" {
		t.Fatalf("key = %q", m1.Key())
	}

	e.AddWhitelist("foo")
	if m3, _ := e.Matcher("en", "test"); m3 != m1 {
		t.Fatalf("whitelist changes must not rebuild the matcher")
	}

	e.AddWords("newword")
	m4, _ := e.Matcher("en", "test")
	if m4 == m1 {
		t.Fatalf("blacklist change should rebuild")
	}
	if w := m4.Words(); w[len(w)-1] != "newword" {
		t.Fatalf("blacklist words go last: %v", w)
	}

	e.RemoveWords("shit")
	m5, _ := e.Matcher("en", "test")
	if m5 == m4 {
		t.Fatalf("removed change should rebuild")
	}
	for _, w := range m5.Words() {
		if w == "shit" {
			t.Fatalf("removed word still in matcher")
		}
	}

	e.Invalidate()
	if m6, _ := e.Matcher("en", "test"); m6 == m5 {
		t.Fatalf("Invalidate should drop the cache")
	}
}

func TestMatcher_LeftmostFirst(t *testing.T) {
	e := New(dataset.Map{"x": {"ab", "abc"}}, Options{WholeWord: false})
	spans, err := e.Matches("abc", "x")
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 1 || spans[0] != (Span{Start: 0, End: 2, Word: "ab"}) {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestMatcher_EscapesMetacharacters(t *testing.T) {
	e := New(dataset.Map{"x": {"a.b", "c+"}}, Options{WholeWord: false})
	if mustExists(t, e, "axb", "x") {
		t.Fatalf("dot must be literal")
	}
	if !mustExists(t, e, "a.b", "x") || !mustExists(t, e, "cc+", "x") {
		t.Fatalf("literal words should match")
	}
}

func TestMatches_Spans(t *testing.T) {
	e := newEngine(t)
	spans, err := e.Matches("Foo and BAR", "test")
	if err != nil {
		t.Fatal(err)
	}
	want := []Span{{0, 3, "foo"}, {8, 11, "bar"}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %+v want %+v", spans, want)
	}
}

func TestMatches_SpansIndexInput(t *testing.T) {
	e := newEngine(t)
	// U+023A is 2 bytes and lowercases to U+2C65, which is 3
	text := "\u023a\u023a FOO"
	spans, err := e.Matches(text, "test")
	if err != nil {
		t.Fatal(err)
	}
	want := []Span{{5, 8, "foo"}}
	if !reflect.DeepEqual(spans, want) {
		t.Fatalf("spans = %+v want %+v", spans, want)
	}
	if got := text[spans[0].Start:spans[0].End]; got != "FOO" {
		t.Fatalf("input slice = %q, want FOO", got)
	}
}

func TestWords_MutualExclusion(t *testing.T) {
	e := newEngine(t)

	e.RemoveWords("foo")
	if mustExists(t, e, "foo", "test") {
		t.Fatalf("removed dataset word still matches")
	}
	if !reflect.DeepEqual(e.Removed(), []string{"foo"}) {
		t.Fatalf("removed = %v", e.Removed())
	}

	e.AddWords("FOO")
	if len(e.Removed()) != 0 || len(e.Blacklist()) != 0 {
		t.Fatalf("re-adding should only clear removed: bl=%v rm=%v", e.Blacklist(), e.Removed())
	}
	if !mustExists(t, e, "foo", "test") {
		t.Fatalf("restored word should match")
	}

	e.AddWords("qux")
	e.RemoveWords("qux")
	if len(e.Blacklist()) != 0 || len(e.Removed()) != 0 {
		t.Fatalf("removing a blacklisted word should only unlist it: bl=%v rm=%v", e.Blacklist(), e.Removed())
	}

	ops := []func(...string){e.AddWords, e.RemoveWords}
	words := []string{"a", "B", "c", "foo", "shit"}
	for i := 0; i < 200; i++ {
		ops[(i*7)%2](words[(i*3)%len(words)], words[(i*5)%len(words)])
		bl := map[string]bool{}
		for _, w := range e.Blacklist() {
			bl[w] = true
		}
		for _, w := range e.Removed() {
			if bl[w] {
				t.Fatalf("step %d: %q in both blacklist and removed", i, w)
			}
		}
	}
}

func TestWhitelist_WholeWord(t *testing.T) {
	e := newEngine(t)
	e.AddWords("assassin")
	e.AddWhitelist("ass")

	if !mustExists(t, e, "assassin") {
		t.Fatalf("whitelisted ass must not cover assassin")
	}
	if mustExists(t, e, "ass") || mustExists(t, e, "you ass") {
		t.Fatalf("standalone ass should be whitelisted")
	}
	if got := mustCensor(t, e, "ass assassin", Word); got != "ass @#$%&!" {
		t.Fatalf("got %q", got)
	}

	e.RemoveWhitelist("ass")
	if !mustExists(t, e, "ass") {
		t.Fatalf("whitelist removal should take effect")
	}
}

func TestWhitelist_Partial(t *testing.T) {
	e := New(testData(), Options{WholeWord: false})
	if !mustExists(t, e, "assassin") {
		t.Fatalf("substring match expected without whole word")
	}
	e.AddWhitelist("assassin")
	if mustExists(t, e, "assassin") {
		t.Fatalf("overlapping whitelist should suppress")
	}
	if got := mustCensor(t, e, "Assassin", WordLength); got != "Assassin" {
		t.Fatalf("got %q", got)
	}
	if !mustExists(t, e, "assassin ass") {
		t.Fatalf("match outside the whitelisted word should survive")
	}
}
