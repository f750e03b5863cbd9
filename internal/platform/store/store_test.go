package store

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"profanity/internal/platform/config"
	"profanity/internal/platform/store/ch"
	kit "profanity/internal/platform/testkit"

	"github.com/rs/zerolog"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dst ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dst {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.vals[i]))
	}
	return nil
}

type fakeRows struct {
	data   [][]any
	i      int
	err    error
	closed bool
}

func (r *fakeRows) Next() bool            { r.i++; return r.i <= len(r.data) }
func (r *fakeRows) Scan(dst ...any) error { return fakeRow{vals: r.data[r.i-1]}.Scan(dst...) }
func (r *fakeRows) Err() error            { return r.err }
func (r *fakeRows) Close()                { r.closed = true }
func (r *fakeRows) Columns() []string     { return []string{"list", "word"} }

type fakeQ struct {
	rows *fakeRows
	row  fakeRow
	sql  string
	args []any
}

func (q *fakeQ) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	q.sql, q.args = sql, args
	return nil, nil
}
func (q *fakeQ) Query(_ context.Context, sql string, args ...any) (Rows, error) {
	q.sql, q.args = sql, args
	return q.rows, nil
}
func (q *fakeQ) QueryRow(_ context.Context, sql string, args ...any) Row {
	q.sql, q.args = sql, args
	return q.row
}

func TestMany(t *testing.T) {
	q := &fakeQ{rows: &fakeRows{data: [][]any{{"blacklist", "heck"}, {"whitelist", "scunthorpe"}}}}
	got, err := Many(context.Background(), q, func(r Row) (string, error) {
		var list, word string
		err := r.Scan(&list, &word)
		return list + ":" + word, err
	}, "SELECT list, word FROM custom_words WHERE position >= $1", 0)
	if err != nil {
		t.Fatalf("Many: %v", err)
	}
	if want := []string{"blacklist:heck", "whitelist:scunthorpe"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Many = %v, want %v", got, want)
	}
	if !q.rows.closed || len(q.args) != 1 {
		t.Fatalf("rows not closed or args dropped")
	}

	q = &fakeQ{rows: &fakeRows{err: errors.New("conn lost")}}
	if _, err := Many(context.Background(), q, func(Row) (int, error) { return 0, nil }, "x"); err == nil {
		t.Fatalf("rows.Err should surface")
	}
}

func TestScalarAndExec(t *testing.T) {
	q := &fakeQ{row: fakeRow{vals: []any{42}}}
	n, err := Scalar[int](context.Background(), q, "SELECT count(*) FROM custom_words")
	if err != nil || n != 42 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
	q.row = fakeRow{err: errors.New("no rows")}
	if n, err := Scalar[int](context.Background(), q, "x"); err == nil || n != 0 {
		t.Fatalf("Scalar error path = %d, %v", n, err)
	}
	if _, err := Exec(context.Background(), q, "DELETE FROM custom_words WHERE list = $1", "removed"); err != nil {
		t.Fatalf("Exec: %v", err)
	}
	if !strings.HasPrefix(q.sql, "DELETE") || q.args[0] != "removed" {
		t.Fatalf("Exec did not pass through: %q %v", q.sql, q.args)
	}
}

type pingPG struct {
	fakeQ
	err    error
	closed bool
}

func (p *pingPG) Tx(ctx context.Context, fn func(RowQuerier) error) error { return fn(p) }
func (p *pingPG) Ping(context.Context) error                              { return p.err }
func (p *pingPG) Close() error                                            { p.closed = true; return nil }

type fakeCH struct {
	pingErr error
	closed  bool
}

func (f *fakeCH) Insert(context.Context, string, [][]any) error          { return nil }
func (f *fakeCH) Exec(context.Context, string, ...any) error             { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) { return nil, errors.New("x") }
func (f *fakeCH) Ping(context.Context) error                             { return f.pingErr }
func (f *fakeCH) Close() error                                           { f.closed = true; return nil }

func TestGuardAndClose(t *testing.T) {
	var nilStore *Store
	if nilStore.Guard(context.Background()) == nil {
		t.Fatalf("nil store should fail Guard")
	}
	if nilStore.Close(context.Background()) != nil {
		t.Fatalf("nil store Close should be a no-op")
	}

	pgx := &pingPG{}
	chc := &fakeCH{}
	s := &Store{PG: pgx, CH: newCHAdapter(chc)}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard: %v", err)
	}

	pgx.err = errors.New("pg down")
	chc.pingErr = errors.New("ch down")
	err := s.Guard(context.Background())
	if err == nil || !strings.Contains(err.Error(), "pg: pg down") || !strings.Contains(err.Error(), "ch: ch down") {
		t.Fatalf("Guard should join both failures, got %v", err)
	}

	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !pgx.closed || !chc.closed {
		t.Fatalf("Close should close both backends")
	}
}

func TestOpen_NothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("disabled backends should stay nil")
	}
}

func TestOpen_WithLogger(t *testing.T) {
	if _, err := Open(context.Background(), Config{}, WithLogger(nil)); err == nil {
		t.Fatalf("nil logger should be rejected")
	}

	var buf bytes.Buffer
	l := zerolog.New(&buf)
	s, err := Open(context.Background(), Config{}, WithLogger(&l))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s.Log.Info().Msg("hello")
	if !strings.Contains(buf.String(), `"component":"store"`) {
		t.Fatalf("store logs should carry the component, got %s", buf.String())
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_ENABLED", "")
	t.Setenv("SERVICE_CLICKHOUSE_ENABLED", "")
	if c := FromConfig(config.New(), "profanity", "api"); c.PG.Enabled || c.CH.Enabled {
		t.Fatalf("backends default to off: %+v", c)
	}

	t.Setenv("SERVICE_PGSQL_ENABLED", "true")
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://u:p@db:5432/profanity")
	t.Setenv("SERVICE_PGSQL_MAX_CONNS", "9")
	t.Setenv("SERVICE_CLICKHOUSE_ENABLED", "true")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "clickhouse://ch:9000/default")

	c := FromConfig(config.New(), "profanity", "api")
	if !c.PG.Enabled || c.PG.MaxConns != 9 || c.PG.SlowQueryMs != 500 || c.PG.AppName != "profanity-api" {
		t.Fatalf("pg = %+v", c.PG)
	}
	if !c.CH.Enabled || c.CH.ClientName != "profanity" || c.CH.ClientTag != "api" {
		t.Fatalf("ch = %+v", c.CH)
	}

	t.Setenv("SERVICE_PGSQL_DBURL", "")
	kit.MustPanic(t, func() { FromConfig(config.New(), "profanity", "api") })
}

// opRows is a ch.Rows over fixed op names
type opRows struct {
	ops    []string
	i      int
	closed bool
}

func (r *opRows) Next() bool             { r.i++; return r.i <= len(r.ops) }
func (r *opRows) Scan(dest ...any) error { *dest[0].(*string) = r.ops[r.i-1]; return nil }
func (r *opRows) Err() error             { return nil }
func (r *opRows) Close() error           { r.closed = true; return nil }
func (r *opRows) Columns() []string      { return []string{"op"} }

type queryCH struct {
	fakeCH
	rows *opRows
}

func (q *queryCH) Query(context.Context, string, ...any) (ch.Rows, error) { return q.rows, nil }

func TestCHAdapter_QueryRows(t *testing.T) {
	inner := &queryCH{rows: &opRows{ops: []string{"censor", "exists"}}}
	rows, err := newCHAdapter(inner).Query(context.Background(), "SELECT DISTINCT op FROM profanity_events")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	var got []string
	for rows.Next() {
		var op string
		if err := rows.Scan(&op); err != nil {
			t.Fatal(err)
		}
		got = append(got, op)
	}
	rows.Close()
	if strings.Join(got, ",") != "censor,exists" || rows.Err() != nil || !inner.rows.closed {
		t.Fatalf("rows = %v closed=%v", got, inner.rows.closed)
	}
	if cols := rows.Columns(); len(cols) != 1 || cols[0] != "op" {
		t.Fatalf("Columns = %v", cols)
	}

	if _, err := newCHAdapter(&fakeCH{}).Query(context.Background(), "x"); err == nil {
		t.Fatalf("query error should pass through")
	}
}
