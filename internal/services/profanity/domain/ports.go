package domain

import "context"

// ServicePort is the profanity surface exposed to transports
type ServicePort interface {
	Exists(ctx context.Context, in ExistsInput) (ExistsResult, error)
	Censor(ctx context.Context, in CensorInput) (CensorResult, error)
	Matches(ctx context.Context, in MatchesInput) (MatchesResult, error)

	AddWords(ctx context.Context, in WordsInput) (ListsResult, error)
	RemoveWords(ctx context.Context, in WordsInput) (ListsResult, error)
	AddWhitelist(ctx context.Context, in WordsInput) (ListsResult, error)
	RemoveWhitelist(ctx context.Context, in WordsInput) (ListsResult, error)

	Lists(ctx context.Context) (ListsResult, error)
	Languages(ctx context.Context) (LanguagesResult, error)
	Stats(ctx context.Context) (StatsResult, error)
}

// WordStore persists the custom lists
type WordStore interface {
	Load(ctx context.Context) (Lists, error)
	Replace(ctx context.Context, list List, words []string) error
}

// EventSink records detection events
type EventSink interface {
	Record(ctx context.Context, ev Event) error
}

// EventStats reads back what an EventSink recorded
type EventStats interface {
	Stats(ctx context.Context) ([]OpStats, error)
	Dropped() int64
}
