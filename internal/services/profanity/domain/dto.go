// Package domain holds DTOs and ports for the profanity service
package domain

import "profanity/internal/core/profanity"

// Text is typed any on purpose: callers may post numbers, objects or null.
// Anything that is not a JSON string never matches and is echoed back untouched

// ExistsInput asks whether text contains profanity
type ExistsInput struct {
	Text      any      `json:"text" example:"what the shit"`
	Languages []string `json:"languages,omitempty" validate:"omitempty,max=16,dive,required,max=16" example:"en"`
}

// ExistsResult reports a detection
type ExistsResult struct {
	Exists bool `json:"exists" example:"true"`
}

// CensorInput asks for text with profanity rewritten
type CensorInput struct {
	Text       any      `json:"text" example:"what the shit"`
	CensorType string   `json:"censor_type,omitempty" validate:"omitempty,censor_type" example:"word_length"`
	Languages  []string `json:"languages,omitempty" validate:"omitempty,max=16,dive,required,max=16" example:"en"`
}

// CensorResult carries the rewritten text and how many words were replaced
type CensorResult struct {
	Text       any    `json:"text" example:"what the ****"`
	CensorType string `json:"censor_type" example:"word_length"`
	Matches    int    `json:"matches" example:"1"`
}

// MatchesInput asks for the spans that would be censored
type MatchesInput struct {
	Text      any      `json:"text" example:"what the shit"`
	Languages []string `json:"languages,omitempty" validate:"omitempty,max=16,dive,required,max=16" example:"en"`
}

// MatchesResult lists the censored spans as byte offsets of the input text
type MatchesResult struct {
	Matches []profanity.Span `json:"matches"`
}

// WordsInput adds or removes custom words
type WordsInput struct {
	Words []string `json:"words" validate:"required,min=1,max=500,dive,required,max=64" example:"heck"`
}

// ListsResult is the current state of the custom lists
type ListsResult struct {
	Whitelist []string `json:"whitelist"`
	Blacklist []string `json:"blacklist"`
	Removed   []string `json:"removed"`
}

// LanguagesResult lists the dataset languages and the configured defaults
type LanguagesResult struct {
	Languages []string `json:"languages" example:"en"`
	Default   []string `json:"default" example:"en"`
}

// StatsResult summarizes the detection events recorded so far
type StatsResult struct {
	Ops []OpStats `json:"ops"`
	// Dropped counts events this process lost to a full buffer
	Dropped int64 `json:"dropped" example:"0"`
}
