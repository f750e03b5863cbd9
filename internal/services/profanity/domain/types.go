package domain

import "time"

// List names one of the custom word lists
type List string

const (
	// ListWhitelist holds words that are never censored
	ListWhitelist List = "whitelist"
	// ListBlacklist holds extra profane words
	ListBlacklist List = "blacklist"
	// ListRemoved holds dataset words that no longer count
	ListRemoved List = "removed"
)

// AllLists names every custom list
var AllLists = []List{ListWhitelist, ListBlacklist, ListRemoved}

// Lists is a snapshot of the three custom lists
type Lists struct {
	Whitelist []string `yaml:"whitelist"`
	Blacklist []string `yaml:"blacklist"`
	Removed   []string `yaml:"removed"`
}

// Get returns the words for l
func (ls Lists) Get(l List) []string {
	switch l {
	case ListWhitelist:
		return ls.Whitelist
	case ListBlacklist:
		return ls.Blacklist
	case ListRemoved:
		return ls.Removed
	}
	return nil
}

// Set replaces the words for l
func (ls *Lists) Set(l List, words []string) {
	switch l {
	case ListWhitelist:
		ls.Whitelist = words
	case ListBlacklist:
		ls.Blacklist = words
	case ListRemoved:
		ls.Removed = words
	}
}

// Op names a detection call recorded as an event
type Op string

// Detection ops
const (
	OpExists  Op = "exists"
	OpCensor  Op = "censor"
	OpMatches Op = "matches"
)

// Event is one detection call. Text is never stored
type Event struct {
	ID         string
	At         time.Time
	Op         Op
	Languages  []string
	Matches    int
	CensorType string
}

// OpStats totals the recorded events of one op
type OpStats struct {
	Op      Op     `json:"op" example:"censor"`
	Calls   uint64 `json:"calls" example:"42"`
	Matches uint64 `json:"matches" example:"17"`
}
