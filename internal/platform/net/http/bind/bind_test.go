package bind

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "profanity/internal/platform/errors"
)

type words struct {
	Words []string `json:"words" validate:"required,min=1,dive,required,max=8"`
	Mode  string   `json:"mode,omitempty" validate:"omitempty,even_len"`
}

func init() {
	_ = RegisterTag("even_len", "{0} must have an even length", func(fl FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	})
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestParseJSON_Success(t *testing.T) {
	got, err := ParseJSON[words](post(`{"words":["heck","darn"],"mode":"ab"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Words) != 2 || got.Mode != "ab" {
		t.Fatalf("got %+v", got)
	}
}

func TestParseJSON_BodyErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty", ""},
		{"malformed", `{"words":`},
		{"unknown field", `{"words":["a"],"extra":1}`},
		{"trailing", `{"words":["a"]} {}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON[words](post(tc.body))
			if perr.CodeOf(err) != perr.ErrorCodeJSON {
				t.Fatalf("code = %v, want json (%v)", perr.CodeOf(err), err)
			}
		})
	}
}

func TestParseJSON_EmptyDeleteIsZero(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/", http.NoBody)
	got, err := ParseJSON[words](req)
	if err != nil || got.Words != nil {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestParseJSON_AllowEmptyBody(t *testing.T) {
	got, err := ParseJSON[words](post(""), JSONOptions{AllowEmptyBody: true, MaxBytes: 64})
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if got.Words != nil {
		t.Fatalf("expected zero value, got %+v", got)
	}
}

func TestParseJSON_MaxBytes(t *testing.T) {
	body := `{"words":["` + strings.Repeat("a", 128) + `"]}`
	if _, err := ParseJSON[words](post(body), JSONOptions{MaxBytes: 32, DisallowUnknown: true}); err == nil {
		t.Fatalf("expected truncated body to fail")
	}
}

func TestParseJSON_Validation(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"words":[]}`, "words must be at least 1"},
		{`{"words":["toolongword"]}`, "words[0] must be at most 8"},
		{`{"words":["ok"],"mode":"abc"}`, "mode must have an even length"},
	}
	for _, tc := range cases {
		_, err := ParseJSON[words](post(tc.body))
		if perr.CodeOf(err) != perr.ErrorCodeValidation {
			t.Fatalf("%s: code = %v, want validation", tc.body, perr.CodeOf(err))
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: message %q, want %q", tc.body, err.Error(), tc.want)
		}
	}
}

func TestTagNameFunc(t *testing.T) {
	type s struct {
		A int `json:"a_name,omitempty" validate:"min=1"`
		B int `json:"-" validate:"min=1"`
		C int `validate:"min=1"`
	}
	field, _ := ValidationFieldAndMessage(Get().Validator.Struct(s{B: 1, C: 1}))
	if field != "a_name" {
		t.Fatalf("field = %q, want json name", field)
	}
	field, _ = ValidationFieldAndMessage(Get().Validator.Struct(s{A: 1, C: 1}))
	if field != "B" {
		t.Fatalf("field = %q, want struct name for json:\"-\"", field)
	}
	field, _ = ValidationFieldAndMessage(Get().Validator.Struct(s{A: 1, B: 1}))
	if field != "C" {
		t.Fatalf("field = %q, want struct name without tag", field)
	}
}

func TestValidationFieldAndMessage_Passthrough(t *testing.T) {
	if f, m := ValidationFieldAndMessage(nil); f != "" || m != "" {
		t.Fatalf("nil error should be empty")
	}
	if f, m := ValidationFieldAndMessage(errors.New("boom")); f != "" || m != "boom" {
		t.Fatalf("got field=%q msg=%q", f, m)
	}
}

func TestParseJSON_InvalidValidationTarget(t *testing.T) {
	if _, err := ParseJSON[int](post(`3`)); perr.CodeOf(err) != perr.ErrorCodeJSON {
		t.Fatalf("non-struct target should map to a json error, got %v", err)
	}
}
