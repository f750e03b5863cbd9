package module

import (
	"time"

	"profanity/internal/core/profanity"
	"profanity/internal/platform/config"
	"profanity/internal/platform/logger"
)

// Options holds configuration settings for the profanity module
type Options struct {
	Engine     profanity.Options
	CensorType profanity.CensorType

	// DatasetFile overlays languages from a YAML dataset onto the embedded one
	DatasetFile string
	// WordsFile seeds the custom lists; Watch reapplies it on change
	WordsFile     string
	Watch         bool
	WatchDebounce time.Duration

	// Events ships detection events to ClickHouse when a CH seam is present
	Events      bool
	EventsBatch int
	EventsFlush time.Duration

	// AdminToken guards list mutations with a bearer token when set
	AdminToken string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("CORE_PROFANITY_")
	d := profanity.DefaultOptions()

	raw := pc.MayString("CENSOR_TYPE", profanity.Word.String())
	ct, err := profanity.ParseCensorType(raw)
	if err != nil {
		logger.Named("profanity").Warn().Str("value", raw).Msg("unknown CORE_PROFANITY_CENSOR_TYPE, using word")
		ct = profanity.Word
	}

	return Options{
		Engine: profanity.Options{
			Languages:   pc.MayCSV("LANGUAGES", d.Languages),
			WholeWord:   pc.MayBool("WHOLE_WORD", d.WholeWord),
			Grawlix:     pc.MayString("GRAWLIX", d.Grawlix),
			GrawlixChar: pc.MayRune("GRAWLIX_CHAR", d.GrawlixChar),
		},
		CensorType:    ct,
		DatasetFile:   pc.MayString("DATASET_FILE", ""),
		WordsFile:     pc.MayString("WORDS_FILE", ""),
		Watch:         pc.MayBool("WATCH", true),
		WatchDebounce: pc.MayDuration("WATCH_DEBOUNCE", 0),
		Events:        pc.MayBool("EVENTS", false),
		EventsBatch:   pc.MayInt("EVENTS_BATCH", 0),
		EventsFlush:   pc.MayDuration("EVENTS_FLUSH", 0),
		AdminToken:    cfg.Prefix("CORE_API_").MayString("ADMIN_TOKEN", ""),
	}
}
