// Package service guards a profanity engine for concurrent callers and keeps
// the custom lists in sync with an optional word store
package service

import (
	"context"
	"slices"
	"strings"
	"sync"

	"profanity/internal/core/profanity"
	perr "profanity/internal/platform/errors"
	"profanity/internal/platform/logger"
	"profanity/internal/services/profanity/domain"
)

// Config for the profanity service
type Config struct {
	// CensorType is used when a request does not name one
	CensorType profanity.CensorType
}

// Option wires optional collaborators
type Option func(*Service)

// WithStore persists list changes to ws
func WithStore(ws domain.WordStore) Option { return func(s *Service) { s.words = ws } }

// WithSink records detection events to es. A sink that can read its events
// back also serves Stats
func WithSink(es domain.EventSink) Option {
	return func(s *Service) {
		s.sink = es
		s.stats, _ = es.(domain.EventStats)
	}
}

// Service implements domain.ServicePort
type Service struct {
	// mu guards eng; matcher compilation is lazy so reads take it too
	mu  sync.Mutex
	eng *profanity.Engine

	// wmu serializes mutations so persisted snapshots land in order
	wmu sync.Mutex

	cfg   Config
	words domain.WordStore
	sink  domain.EventSink
	stats domain.EventStats
	log   *logger.Logger
}

// New wraps eng. The service owns eng from here on
func New(eng *profanity.Engine, cfg Config, opts ...Option) *Service {
	if !cfg.CensorType.Valid() {
		cfg.CensorType = profanity.Word
	}
	s := &Service{eng: eng, cfg: cfg, log: logger.Named("profanity")}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Exists implements domain.ServicePort
func (s *Service) Exists(ctx context.Context, in domain.ExistsInput) (domain.ExistsResult, error) {
	text, ok := in.Text.(string)
	if !ok {
		return domain.ExistsResult{}, nil
	}

	s.mu.Lock()
	found, err := s.eng.Exists(text, in.Languages...)
	s.mu.Unlock()
	if err != nil {
		return domain.ExistsResult{}, err
	}

	n := 0
	if found {
		n = 1
	}
	s.emit(ctx, domain.Event{Op: domain.OpExists, Languages: in.Languages, Matches: n})
	return domain.ExistsResult{Exists: found}, nil
}

// Censor implements domain.ServicePort
func (s *Service) Censor(ctx context.Context, in domain.CensorInput) (domain.CensorResult, error) {
	ct := s.cfg.CensorType
	if in.CensorType != "" {
		var err error
		if ct, err = profanity.ParseCensorType(in.CensorType); err != nil {
			return domain.CensorResult{}, err
		}
	}

	text, ok := in.Text.(string)
	if !ok {
		return domain.CensorResult{Text: in.Text, CensorType: ct.String()}, nil
	}

	s.mu.Lock()
	spans, err := s.eng.Matches(text, in.Languages...)
	var out string
	if err == nil {
		out, err = s.eng.Censor(text, ct, in.Languages...)
	}
	s.mu.Unlock()
	if err != nil {
		return domain.CensorResult{}, err
	}

	s.emit(ctx, domain.Event{
		Op:         domain.OpCensor,
		Languages:  in.Languages,
		Matches:    len(spans),
		CensorType: ct.String(),
	})
	return domain.CensorResult{Text: out, CensorType: ct.String(), Matches: len(spans)}, nil
}

// Matches implements domain.ServicePort
func (s *Service) Matches(ctx context.Context, in domain.MatchesInput) (domain.MatchesResult, error) {
	text, ok := in.Text.(string)
	if !ok {
		return domain.MatchesResult{Matches: []profanity.Span{}}, nil
	}

	s.mu.Lock()
	spans, err := s.eng.Matches(text, in.Languages...)
	s.mu.Unlock()
	if err != nil {
		return domain.MatchesResult{}, err
	}
	if spans == nil {
		spans = []profanity.Span{}
	}

	s.emit(ctx, domain.Event{Op: domain.OpMatches, Languages: in.Languages, Matches: len(spans)})
	return domain.MatchesResult{Matches: spans}, nil
}

// AddWords implements domain.ServicePort
func (s *Service) AddWords(ctx context.Context, in domain.WordsInput) (domain.ListsResult, error) {
	return s.mutate(ctx, "add words", in.Words, (*profanity.Engine).AddWords)
}

// RemoveWords implements domain.ServicePort
func (s *Service) RemoveWords(ctx context.Context, in domain.WordsInput) (domain.ListsResult, error) {
	return s.mutate(ctx, "remove words", in.Words, (*profanity.Engine).RemoveWords)
}

// AddWhitelist implements domain.ServicePort
func (s *Service) AddWhitelist(ctx context.Context, in domain.WordsInput) (domain.ListsResult, error) {
	return s.mutate(ctx, "add whitelist", in.Words, (*profanity.Engine).AddWhitelist)
}

// RemoveWhitelist implements domain.ServicePort
func (s *Service) RemoveWhitelist(ctx context.Context, in domain.WordsInput) (domain.ListsResult, error) {
	return s.mutate(ctx, "remove whitelist", in.Words, (*profanity.Engine).RemoveWhitelist)
}

// Lists implements domain.ServicePort
func (s *Service) Lists(_ context.Context) (domain.ListsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return result(s.snapshot()), nil
}

// Languages implements domain.ServicePort
func (s *Service) Languages(_ context.Context) (domain.LanguagesResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	langs := s.eng.Languages()
	if langs == nil {
		langs = []string{}
	}
	return domain.LanguagesResult{Languages: langs, Default: s.eng.Options().Languages}, nil
}

// Stats implements domain.ServicePort
func (s *Service) Stats(ctx context.Context) (domain.StatsResult, error) {
	if s.stats == nil {
		return domain.StatsResult{}, perr.Unavailablef("detection events are not enabled")
	}
	ops, err := s.stats.Stats(ctx)
	if err != nil {
		return domain.StatsResult{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read event stats")
	}
	if ops == nil {
		ops = []domain.OpStats{}
	}
	return domain.StatsResult{Ops: ops, Dropped: s.stats.Dropped()}, nil
}

// Restore loads persisted lists into the engine. It is a no-op without a store
func (s *Service) Restore(ctx context.Context) error {
	if s.words == nil {
		return nil
	}
	ls, err := s.words.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.eng.AddWhitelist(ls.Whitelist...)
	s.eng.RemoveWords(ls.Removed...)
	s.eng.AddWords(ls.Blacklist...)
	s.mu.Unlock()

	s.log.Info().
		Int("whitelist", len(ls.Whitelist)).
		Int("blacklist", len(ls.Blacklist)).
		Int("removed", len(ls.Removed)).
		Msg("custom lists restored")
	return nil
}

func (s *Service) mutate(ctx context.Context, what string, words []string, apply func(*profanity.Engine, ...string)) (domain.ListsResult, error) {
	words = clean(words)
	if len(words) == 0 {
		return domain.ListsResult{}, perr.InvalidArgf("words are required")
	}

	s.wmu.Lock()
	defer s.wmu.Unlock()

	s.mu.Lock()
	before := s.snapshot()
	apply(s.eng, words...)
	after := s.snapshot()
	s.mu.Unlock()

	logger.C(ctx).Debug().Str("op", what).Strs("words", words).Msg("custom lists changed")

	if s.words != nil {
		for _, l := range domain.AllLists {
			if slices.Equal(before.Get(l), after.Get(l)) {
				continue
			}
			if err := s.words.Replace(ctx, l, after.Get(l)); err != nil {
				s.log.Error().Err(err).Str("list", string(l)).Msg("persist custom list")
				return domain.ListsResult{}, err
			}
		}
	}
	return result(after), nil
}

// snapshot must be called with mu held
func (s *Service) snapshot() domain.Lists {
	return domain.Lists{
		Whitelist: s.eng.Whitelist(),
		Blacklist: s.eng.Blacklist(),
		Removed:   s.eng.Removed(),
	}
}

func (s *Service) emit(ctx context.Context, ev domain.Event) {
	if s.sink == nil {
		return
	}
	if len(ev.Languages) == 0 {
		s.mu.Lock()
		ev.Languages = s.eng.Options().Languages
		s.mu.Unlock()
	}
	if err := s.sink.Record(ctx, ev); err != nil {
		s.log.Warn().Err(err).Str("op", string(ev.Op)).Msg("record event")
	}
}

func result(ls domain.Lists) domain.ListsResult {
	nz := func(xs []string) []string {
		if xs == nil {
			return []string{}
		}
		return xs
	}
	return domain.ListsResult{
		Whitelist: nz(ls.Whitelist),
		Blacklist: nz(ls.Blacklist),
		Removed:   nz(ls.Removed),
	}
}

func clean(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
