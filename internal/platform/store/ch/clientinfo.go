package ch

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// clientInfo names this process in system.query_log, empty values are skipped
func clientInfo(app, tag string) clickhouse.ClientInfo {
	host, _ := os.Hostname()
	pairs := [][2]string{
		{"reviewsense", tag},
		{"app", app},
		{"go", runtime.Version()},
		{"commit", revision()},
		{"host", host},
	}

	var info clickhouse.ClientInfo
	for _, p := range pairs {
		v := strings.TrimSpace(p[1])
		if v == "" {
			continue
		}
		info.Products = append(info.Products, struct{ Name, Version string }{p[0], v})
	}
	return info
}

// revision is the short vcs hash stamped by the go tool
func revision() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
