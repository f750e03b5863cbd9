package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pg(code string) *pgconn.PgError { return &pgconn.PgError{Code: code} }

func TestDBErrorCode(t *testing.T) {
	cases := []struct {
		code string
		want ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation}, // custom_words list CHECK
		{"22001", ErrorCodeInvalidArgument},
		{"40001", ErrorCodeDB},
		{"25006", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"XXXXX", ErrorCodeDB},
	}
	for _, c := range cases {
		got, ok := DBErrorCode(pg(c.code))
		if !ok || got != c.want {
			t.Fatalf("DBErrorCode(%s) = %v,%v want %v", c.code, got, ok, c.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("nope")); ok {
		t.Fatalf("non-pg error should not map")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatalf("nil should pass through")
	}

	err := FromPostgresf(pg("23514"), "insert %s", "blacklist")
	if CodeOf(err) != ErrorCodeValidation {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if e, _ := As(err); e.ToWire().Message != "insert blacklist" {
		t.Fatalf("wire message = %q", e.ToWire().Message)
	}
	if _, ok := ExtractPgError(err); !ok {
		t.Fatalf("pg error should be reachable through the wrap")
	}

	if CodeOf(FromPostgres(stderrs.New("conn reset"), "load")) != ErrorCodeDB {
		t.Fatalf("foreign errors map to DB")
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"serialization", FromPostgres(pg("40001"), "x"), true},
		{"deadlock", pg("40P01"), true},
		{"lock not available", pg("55P03"), true},
		{"unique", pg("23505"), false},
		{"canceled", fmt.Errorf("tx: %w", context.Canceled), false},
		{"commit text", stderrs.New("commit unexpectedly resulted in rollback"), true},
		{"other text", stderrs.New("boom"), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Retryable(c.err); got != c.want {
				t.Fatalf("Retryable = %v, want %v", got, c.want)
			}
		})
	}
}
