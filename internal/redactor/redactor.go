// Package redactor masks credentials in text cpam prints or logs: dependency
// sources with user:token@ URLs, and CMake -D options carrying tokens.
// Secrets are replaced with deterministic placeholders like <TOKEN-9f86d081>,
// so equal secrets still compare equal in output.
package redactor

import (
	"crypto/sha256"
	"fmt"
	"regexp"
	"strings"
)

// rule masks submatch group of re with a placeholder tagged tag.
type rule struct {
	tag   string
	re    *regexp.Regexp
	group int
}

// Order matters: service tokens are matched before the generic assignment
// rule so they keep their specific tag.
var rules = []rule{
	{"URL_CREDS", regexp.MustCompile(`://([^/:@\s]+:[^/@\s]+)@`), 1},
	{"GITHUB", regexp.MustCompile(`\b(gh[pousr]_[A-Za-z0-9_]{36,})\b`), 1},
	{"GITLAB", regexp.MustCompile(`\b(glpat-[A-Za-z0-9_-]{20,})\b`), 1},
	{"AWS_KEY", regexp.MustCompile(`\b(AKIA[0-9A-Z]{16})\b`), 1},
	{"BEARER", regexp.MustCompile(`\bBearer\s+([A-Za-z0-9_.-]{20,})`), 1},
	// -DAPI_TOKEN=..., PASSWORD=..., secret: ...
	{"TOKEN", regexp.MustCompile(`(?i)\b\w*(?:password|passwd|secret|token|api_?key)\w*\s*[=:]\s*["']?([^\s"'<>]{8,})`), 1},
}

// placeholder generates a deterministic placeholder for a redacted value.
// Format: <TAG-XXXXXXXX> where XXXXXXXX is the first 4 bytes of SHA-256 hash.
func placeholder(tag, original string) string {
	hash := sha256.Sum256([]byte(original))
	return fmt.Sprintf("<%s-%x>", tag, hash[:4])
}

// Redact applies every rule to s. Text around the secret is kept.
func Redact(s string) string {
	for _, r := range rules {
		s = replaceGroup(s, r)
	}
	return s
}

// RedactAll returns a redacted copy of values.
func RedactAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Redact(v)
	}
	return out
}

func replaceGroup(s string, r rule) string {
	matches := r.re.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		start, end := m[2*r.group], m[2*r.group+1]
		if start < 0 {
			continue
		}
		b.WriteString(s[last:start])
		b.WriteString(placeholder(r.tag, s[start:end]))
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}
