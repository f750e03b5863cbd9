package profanity

// Options configures an Engine
type Options struct {
	// Languages used when a call names none
	Languages []string
	// WholeWord requires matches to sit on word boundaries (or underscores)
	WholeWord bool
	// Grawlix replaces whole words under CensorWord
	Grawlix string
	// GrawlixChar is the single replacement character for the other censor types
	GrawlixChar rune
}

// DefaultOptions returns the stock configuration
func DefaultOptions() Options {
	return Options{
		Languages:   []string{"en"},
		WholeWord:   true,
		Grawlix:     "@#$%&!",
		GrawlixChar: '*',
	}
}

// withDefaults fills empty fields. WholeWord is a plain bool and is left alone
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if len(o.Languages) == 0 {
		o.Languages = d.Languages
	} else {
		o.Languages = append([]string(nil), o.Languages...)
	}
	if o.Grawlix == "" {
		o.Grawlix = d.Grawlix
	}
	if o.GrawlixChar == 0 {
		o.GrawlixChar = d.GrawlixChar
	}
	return o
}
