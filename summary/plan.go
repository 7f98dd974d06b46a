// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package summary

import (
	"regexp"
	"strconv"
)

var (
	ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	planPattern = regexp.MustCompile(
		`Plan: (?:\d+ to import, )?(\d+) to add, (\d+) to change, (\d+) to destroy`,
	)
	noChangesPattern = regexp.MustCompile(`(?m)^\s*No changes\.`)
)

// CountPlan reads the resource counts Terraform prints at the end of a plan,
// e.g. "Plan: 1 to add, 2 to change, 0 to destroy.", or "No changes.".
// It returns false if the plan has neither line.
func CountPlan(plan string) (Counts, bool) {
	plan = ansiPattern.ReplaceAllString(plan, "")

	if match := planPattern.FindStringSubmatch(plan); match != nil {
		// The pattern only matches digits.
		add, _ := strconv.Atoi(match[1])
		change, _ := strconv.Atoi(match[2])
		destroy, _ := strconv.Atoi(match[3])

		return Counts{Add: add, Change: change, Destroy: destroy}, true
	}
	if noChangesPattern.MatchString(plan) {
		return Counts{}, true
	}

	return Counts{}, false
}
