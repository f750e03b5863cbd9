// Package wordfile keeps the custom lists in step with a YAML file on disk
//
//	whitelist: [assassin]
//	blacklist: [heck, darn]
//	removed:   [damn]
package wordfile

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"profanity/internal/services/profanity/domain"

	"gopkg.in/yaml.v3"
)

// Load reads a word file. An empty file yields empty lists
func Load(path string) (domain.Lists, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Lists{}, fmt.Errorf("wordfile: read %s: %w", path, err)
	}
	var ls domain.Lists
	if err := yaml.Unmarshal(data, &ls); err != nil {
		return domain.Lists{}, fmt.Errorf("wordfile: parse %s: %w", path, err)
	}
	for _, l := range domain.AllLists {
		ls.Set(l, normalize(ls.Get(l)))
	}
	return ls, nil
}

func normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	var out []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Delta is what changed in one list between two snapshots
type Delta struct {
	Added   []string
	Dropped []string
}

// Diff compares two snapshots list by list
func Diff(prev, next domain.Lists) map[domain.List]Delta {
	out := make(map[domain.List]Delta, len(domain.AllLists))
	for _, l := range domain.AllLists {
		var d Delta
		d.Added = minus(next.Get(l), prev.Get(l))
		d.Dropped = minus(prev.Get(l), next.Get(l))
		if len(d.Added) > 0 || len(d.Dropped) > 0 {
			out[l] = d
		}
	}
	return out
}

// minus returns the words of a missing from b, keeping a's order
func minus(a, b []string) []string {
	in := make(map[string]struct{}, len(b))
	for _, w := range b {
		in[w] = struct{}{}
	}
	var out []string
	for _, w := range a {
		if _, ok := in[w]; !ok {
			out = append(out, w)
		}
	}
	return out
}

// Apply pushes the difference between prev and next into svc.
// Every step is a set operation on one list, filtered against the live lists
// so edits made through the API since prev, or a replay after a failed Apply,
// never spill a word into the other list. Drops go first so a word moving from
// blacklist to removed lands in removed
func Apply(ctx context.Context, svc domain.ServicePort, prev, next domain.Lists) error {
	diff := Diff(prev, next)

	in := func(l domain.List) func(domain.ListsResult, string) bool {
		return func(cur domain.ListsResult, w string) bool { return slices.Contains(listOf(cur, l), w) }
	}
	out := func(l domain.List) func(domain.ListsResult, string) bool {
		return func(cur domain.ListsResult, w string) bool { return !slices.Contains(listOf(cur, l), w) }
	}

	// AddWords on a removed word only clears it from removed, and RemoveWords on
	// a blacklisted word only drops it from the blacklist, hence the paired steps
	steps := []struct {
		words []string
		keep  func(domain.ListsResult, string) bool
		fn    func(context.Context, domain.WordsInput) (domain.ListsResult, error)
	}{
		{diff[domain.ListWhitelist].Dropped, in(domain.ListWhitelist), svc.RemoveWhitelist},
		{diff[domain.ListBlacklist].Dropped, in(domain.ListBlacklist), svc.RemoveWords},
		{diff[domain.ListRemoved].Dropped, in(domain.ListRemoved), svc.AddWords},
		{diff[domain.ListWhitelist].Added, out(domain.ListWhitelist), svc.AddWhitelist},
		{diff[domain.ListBlacklist].Added, in(domain.ListRemoved), svc.AddWords},
		{diff[domain.ListBlacklist].Added, out(domain.ListBlacklist), svc.AddWords},
		{diff[domain.ListRemoved].Added, in(domain.ListBlacklist), svc.RemoveWords},
		{diff[domain.ListRemoved].Added, out(domain.ListRemoved), svc.RemoveWords},
	}
	for _, st := range steps {
		if len(st.words) == 0 {
			continue
		}
		cur, err := svc.Lists(ctx)
		if err != nil {
			return err
		}
		var words []string
		for _, w := range st.words {
			if st.keep(cur, w) {
				words = append(words, w)
			}
		}
		if len(words) == 0 {
			continue
		}
		if _, err := st.fn(ctx, domain.WordsInput{Words: words}); err != nil {
			return err
		}
	}
	return nil
}

func listOf(r domain.ListsResult, l domain.List) []string {
	switch l {
	case domain.ListWhitelist:
		return r.Whitelist
	case domain.ListBlacklist:
		return r.Blacklist
	case domain.ListRemoved:
		return r.Removed
	}
	return nil
}
