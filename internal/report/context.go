package report

import (
	"os"
	"os/exec"
	"strings"
	"time"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// RunContext pins a report to the environment that produced it. It is
// collected once per invocation and passed by value from there on.
type RunContext struct {
	Timestamp time.Time
	Host      string
	Commit    string
	Version   string
}

// Collect gathers the run context. Missing pieces degrade to empty
// fields rather than errors; reproducibility metadata must never block a
// solve.
func Collect() RunContext {
	rc := RunContext{Timestamp: time.Now(), Version: Version}
	if host, err := os.Hostname(); err == nil {
		rc.Host = host
	}
	if out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output(); err == nil {
		rc.Commit = strings.TrimSpace(string(out))
	}
	return rc
}

// Map flattens the context for storage metadata.
func (rc RunContext) Map() map[string]string {
	m := map[string]string{
		"timestamp": rc.Timestamp.Format(time.RFC3339),
		"version":   rc.Version,
	}
	if rc.Host != "" {
		m["host"] = rc.Host
	}
	if rc.Commit != "" {
		m["commit"] = rc.Commit
	}
	return m
}
