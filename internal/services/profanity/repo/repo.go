// Package repo persists the custom word lists in Postgres
package repo

import (
	"context"
	"fmt"
	"strings"

	"profanity/internal/modkit/repokit"
	perr "profanity/internal/platform/errors"
	"profanity/internal/platform/store"
	"profanity/internal/services/profanity/domain"
)

const schema = `CREATE TABLE IF NOT EXISTS custom_words (
	list       text        NOT NULL CHECK (list IN ('whitelist', 'blacklist', 'removed')),
	word       text        NOT NULL,
	position   integer     NOT NULL,
	updated_at timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (list, word)
)`

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage is the SQL surface for custom_words
type Storage interface {
	EnsureSchema(ctx context.Context) error
	Load(ctx context.Context) (domain.Lists, error)
	Clear(ctx context.Context, list domain.List) error
	Insert(ctx context.Context, list domain.List, words []string) error
}

// EnsureSchema implements Storage
func (s *pg) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schema); err != nil {
		return perr.FromPostgres(err, "create custom_words")
	}
	return nil
}

type entry struct {
	list string
	word string
}

// Load implements Storage. Words come back in the order they were saved
func (s *pg) Load(ctx context.Context) (domain.Lists, error) {
	rows, err := store.Many(ctx, s.q, func(r store.Row) (entry, error) {
		var e entry
		err := r.Scan(&e.list, &e.word)
		return e, err
	}, `SELECT list, word FROM custom_words ORDER BY list, position`)
	if err != nil {
		return domain.Lists{}, perr.FromPostgres(err, "load custom_words")
	}

	var out domain.Lists
	for _, e := range rows {
		l := domain.List(e.list)
		out.Set(l, append(out.Get(l), e.word))
	}
	return out, nil
}

// Clear implements Storage
func (s *pg) Clear(ctx context.Context, list domain.List) error {
	if _, err := store.Exec(ctx, s.q, `DELETE FROM custom_words WHERE list = $1`, string(list)); err != nil {
		return perr.FromPostgresf(err, "clear %s", list)
	}
	return nil
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, list domain.List, words []string) error {
	if len(words) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO custom_words (list, word, position) VALUES `)
	args := make([]any, 0, len(words)*3)
	for i, w := range words {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*3 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d)", base, base+1, base+2)
		args = append(args, string(list), w, i)
	}
	sb.WriteString(` ON CONFLICT (list, word) DO UPDATE SET position = EXCLUDED.position, updated_at = now()`)

	if _, err := s.q.Exec(ctx, sb.String(), args...); err != nil {
		return perr.FromPostgresf(err, "insert %s", list)
	}
	return nil
}

// Words implements domain.WordStore over a TxRunner
type Words struct {
	tx repokit.TxRunner
	b  repokit.Binder[Storage]
}

// NewWords binds the word store to tx. Every Replace transaction first takes a
// transaction scoped advisory lock so replicas sharing the table apply in turn
func NewWords(tx repokit.TxRunner) *Words {
	return &Words{tx: repokit.WithBeginHooks(tx, lockWords), b: NewPG()}
}

func lockWords(ctx context.Context, q repokit.Queryer) error {
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('custom_words'))`); err != nil {
		return perr.FromPostgres(err, "lock custom_words")
	}
	return nil
}

// EnsureSchema creates the table when missing
func (w *Words) EnsureSchema(ctx context.Context) error {
	return repokit.MustBind(w.b, w.tx).EnsureSchema(ctx)
}

// Load implements domain.WordStore
func (w *Words) Load(ctx context.Context) (domain.Lists, error) {
	return repokit.MustBind(w.b, w.tx).Load(ctx)
}

// replaceAttempts bounds retries of a Replace that hit lock contention
const replaceAttempts = 3

// Replace implements domain.WordStore. The list is swapped atomically;
// serialization failures and deadlocks are retried
func (w *Words) Replace(ctx context.Context, list domain.List, words []string) error {
	var err error
	for i := 0; i < replaceAttempts; i++ {
		err = repokit.InTx(ctx, w.tx, w.b, func(s Storage) error {
			if err := s.Clear(ctx, list); err != nil {
				return err
			}
			return s.Insert(ctx, list, words)
		})
		if !perr.Retryable(err) {
			return err
		}
	}
	return err
}
