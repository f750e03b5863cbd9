package profanity

import perr "profanity/internal/platform/errors"

// Sentinels; call sites wrap them, match with errors.Is
var (
	// ErrInvalidInput is returned when no language is given
	ErrInvalidInput = perr.New(perr.ErrorCodeInvalidArgument, "at least one language must be provided")

	// ErrUnknownLanguage is returned when the dataset has no list for a language
	ErrUnknownLanguage = perr.New(perr.ErrorCodeInvalidArgument, "unknown language")

	// ErrInvalidCensorType is returned for a CensorType outside the enum
	ErrInvalidCensorType = perr.New(perr.ErrorCodeValidation, "invalid censor type")
)

func unknownLanguage(lang string) error {
	return perr.Wrapf(ErrUnknownLanguage, perr.ErrorCodeInvalidArgument, "invalid language: %q", lang)
}
