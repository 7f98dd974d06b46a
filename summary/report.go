// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package summary

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Title is the first line of every report.
const Title = "Terraform Plan Drift Summary"

// Risk is the risk assessment of a plan.
type Risk string

const (
	RiskNone        Risk = "None"
	RiskDestructive Risk = "Destructive"
	RiskReplacement Risk = "Replacement"
	RiskMixed       Risk = "Mixed"
)

// Action is the recommended follow-up for a plan.
type Action string

const (
	ActionNone        Action = "No action"
	ActionInvestigate Action = "Investigate"
	ActionApply       Action = "Apply"
)

// Counts is the number of resources a plan adds, changes and destroys.
type Counts struct {
	Add     int
	Change  int
	Destroy int
}

// Report is the six-line plan summary.
type Report struct {
	Domain string
	Counts
	Risk   Risk
	Action Action
}

// ErrMalformed is returned when a summary does not follow the report format.
var ErrMalformed = errors.New("malformed report")

// Parse parses the six lines of a report.
// Surrounding whitespace and blank lines are ignored.
func Parse(text string) (Report, error) { //nolint:cyclop
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) != 6 { //nolint:mnd
		return Report{}, fmt.Errorf("%w: got %d lines, want 6", ErrMalformed, len(lines))
	}

	var report Report
	title, ok := strings.CutPrefix(lines[0], Title)
	if !ok {
		return Report{}, fmt.Errorf("%w: line 1: want %q, got %q", ErrMalformed, Title, lines[0])
	}
	if title = strings.TrimSpace(title); title != "" {
		domain, ok := strings.CutPrefix(title, "(domain: ")
		if !ok || !strings.HasSuffix(domain, ")") {
			return Report{}, fmt.Errorf("%w: line 1: unexpected suffix %q", ErrMalformed, title)
		}
		report.Domain = strings.TrimSuffix(domain, ")")
	}

	counts := []struct {
		label  string
		target *int
	}{
		{"Resources to add", &report.Add},
		{"Resources to change", &report.Change},
		{"Resources to destroy", &report.Destroy},
	}
	for i, count := range counts {
		value, err := field(lines, i+1, count.label)
		if err != nil {
			return Report{}, err
		}
		number, err := strconv.Atoi(value)
		if err != nil || number < 0 {
			return Report{}, fmt.Errorf("%w: line %d: invalid count %q", ErrMalformed, i+2, value)
		}
		*count.target = number
	}

	risk, err := field(lines, 4, "Risk") //nolint:mnd
	if err != nil {
		return Report{}, err
	}
	switch report.Risk = Risk(risk); report.Risk {
	case RiskNone, RiskDestructive, RiskReplacement, RiskMixed:
	default:
		return Report{}, fmt.Errorf("%w: line 5: unknown risk %q", ErrMalformed, risk)
	}

	action, err := field(lines, 5, "Action") //nolint:mnd
	if err != nil {
		return Report{}, err
	}
	switch report.Action = Action(action); report.Action {
	case ActionNone, ActionInvestigate, ActionApply:
	default:
		return Report{}, fmt.Errorf("%w: line 6: unknown action %q", ErrMalformed, action)
	}

	return report, nil
}

func field(lines []string, index int, label string) (string, error) {
	value, ok := strings.CutPrefix(lines[index], "- "+label+":")
	if !ok {
		return "", fmt.Errorf("%w: line %d: want %q, got %q", ErrMalformed, index+1, "- "+label+": ...", lines[index])
	}

	return strings.TrimSpace(value), nil
}

// String renders the report in its canonical six lines.
func (r Report) String() string {
	var builder strings.Builder
	builder.WriteString(Title)
	if r.Domain != "" {
		builder.WriteString(" (domain: ")
		builder.WriteString(r.Domain)
		builder.WriteString(")")
	}
	fmt.Fprintf(&builder, "\n- Resources to add: %d", r.Add)
	fmt.Fprintf(&builder, "\n- Resources to change: %d", r.Change)
	fmt.Fprintf(&builder, "\n- Resources to destroy: %d", r.Destroy)
	fmt.Fprintf(&builder, "\n- Risk: %s", r.Risk)
	fmt.Fprintf(&builder, "\n- Action: %s", r.Action)

	return builder.String()
}

// Subject is a one-line headline for notifications.
func (r Report) Subject() string {
	subject := Title
	if r.Domain != "" {
		subject += " (" + r.Domain + ")"
	}

	return fmt.Sprintf("%s: +%d ~%d -%d, %s", subject, r.Add, r.Change, r.Destroy, r.Risk)
}
