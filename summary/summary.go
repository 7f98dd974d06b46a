// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package summary turns Terraform plan output into a six-line drift report
// with a large language model.
//
// The report has the following format, where the domain is optional:
//
//	Terraform Plan Drift Summary (domain: network)
//	- Resources to add: 1
//	- Resources to change: 0
//	- Resources to destroy: 2
//	- Risk: Destructive
//	- Action: Investigate
package summary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"text/template"
)

// Model is the interface that wraps the basic Complete method.
//
// Complete sends the prompt with the system prompt to a model, and returns its text reply.
type Model interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Summarizer summarizes plans with a Model.
//
// To create a new Summarizer, call [New].
type Summarizer struct {
	model    Model
	logger   *slog.Logger
	template *template.Template
}

// New creates a Summarizer with the given Model and Option(s).
//
// It panics if the model is nil.
func New(model Model, opts ...Option) *Summarizer {
	if model == nil {
		panic("cannot create Summarizer with nil model")
	}

	option := &options{
		model: model,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("opskit.summary")
	if option.template == nil {
		option.template = defaultTemplate
	}

	return (*Summarizer)(option)
}

var errEmptyPlan = errors.New("empty plan")

// Summarize asks the model to summarize the plan,
// and returns the reply with surrounding whitespace trimmed.
func (s *Summarizer) Summarize(ctx context.Context, plan, domain string) (string, error) {
	if strings.TrimSpace(plan) == "" {
		return "", errEmptyPlan
	}

	prompt, err := render(s.template, PromptData{Plan: plan, Domain: domain})
	if err != nil {
		return "", err
	}
	s.logger.LogAttrs(ctx, slog.LevelDebug,
		"Summarizing plan.",
		slog.String("domain", domain),
		slog.Int("prompt_length", len(prompt)),
	)

	reply, err := s.model.Complete(ctx, SystemPrompt, prompt)
	if err != nil {
		return "", fmt.Errorf("complete prompt: %w", err)
	}

	return strings.TrimSpace(reply), nil
}
