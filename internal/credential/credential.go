// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package credential

import (
	"fmt"
	"regexp"
)

// Blur formats the value of the setting with the given name,
// hiding it if the name or the value looks like a credential.
func Blur(name string, value any) string {
	if namePattern.MatchString(name) {
		return "******"
	}

	formatted := fmt.Sprint(value)
	for _, secret := range secretPatterns {
		if secret.pattern.MatchString(formatted) {
			return secret.name
		}
	}

	return formatted
}

//nolint:gochecknoglobals
var (
	namePattern    = regexp.MustCompile(`(?i)(^|[._-])(password|passwd|secret|token|apikey|bearer|credentials?)$`)
	secretPatterns = []struct {
		name    string
		pattern *regexp.Regexp
	}{
		{"AWS access key", regexp.MustCompile(`(A3T[A-Z0-9]|AKIA|ASIA|ABIA|ACCA)[0-9A-Z]{16}`)},
		{"AWS secret key", regexp.MustCompile(`(?i)aws.{0,20}['"][0-9a-zA-Z/+]{40}['"]`)},
		{"Slack token", regexp.MustCompile(`xox[pborsa]-[0-9]{10,13}-[0-9a-zA-Z-]+`)},
		{"Slack webhook", regexp.MustCompile(`https://hooks\.slack\.com/services/T[a-zA-Z0-9_]+/B[a-zA-Z0-9_]+/[a-zA-Z0-9_]+`)},
		{"GitHub token", regexp.MustCompile(`gh[pousr]_[a-zA-Z0-9]{36}`)},
		{"Private key", regexp.MustCompile(`-----BEGIN [A-Z ]*PRIVATE KEY( BLOCK)?-----`)},
		{"Password in URL", regexp.MustCompile(`[a-zA-Z]{3,10}://[^/\s:@]{3,20}:[^/\s:@]{3,20}@`)},
	}
)
