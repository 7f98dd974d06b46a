// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package summary

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

// SystemPrompt instructs the model to keep the report format.
const SystemPrompt = "You are a precise formatter. Always output exactly the required 6 lines, " +
	"with the same labels and order. No code blocks. No commentary."

//go:embed prompt.tmpl
var defaultPrompt string

var defaultTemplate = template.Must(template.New("prompt").Parse(defaultPrompt)) //nolint:gochecknoglobals

// PromptData holds the variables available in the prompt template.
type PromptData struct {
	Plan   string
	Domain string
}

// BuildPrompt renders the default prompt for the plan,
// with the domain appended to the title line if it's not empty.
func BuildPrompt(plan, domain string) string {
	prompt, err := render(defaultTemplate, PromptData{Plan: plan, Domain: domain})
	if err != nil {
		// The default template only refers to fields of PromptData.
		panic(err)
	}

	return prompt
}

// ParseTemplate parses a custom prompt template,
// which may refer to {{.Plan}} and {{.Domain}}.
func ParseTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	return tmpl, nil
}

func render(tmpl *template.Template, data PromptData) (string, error) {
	var builder strings.Builder
	if err := tmpl.Execute(&builder, data); err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}

	return builder.String(), nil
}
