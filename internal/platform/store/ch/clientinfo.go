package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// BuildClientInfo tags connections with the process name, its role and build info
// so they can be told apart in system.query_log
func BuildClientInfo(name, role string) clickhouse.ClientInfo {
	if name == "" {
		name = "profanity"
	}
	host, _ := os.Hostname()
	sha := vcsShortSHA()
	gover := runtime.Version()

	type kv = struct{ Name, Version string }

	products := []kv{
		{Name: strings.TrimSpace(name), Version: strings.TrimSpace(role)},
		{Name: "go", Version: gover},
		{Name: "commit", Version: sha},
		{Name: "host", Version: host},
	}

	return clickhouse.ClientInfo{Products: products}
}

func vcsShortSHA() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return "unknown"
}
