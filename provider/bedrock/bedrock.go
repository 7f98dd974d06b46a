// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package bedrock completes prompts with Anthropic models on AWS [Bedrock].
//
// It requires following permissions:
//   - bedrock:InvokeModel
//
// [Bedrock]: https://aws.amazon.com/bedrock/
package bedrock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	// DefaultModelID is the model used if no model is provided.
	DefaultModelID = "anthropic.claude-3-5-sonnet-20240620-v1:0"
	// DefaultMaxTokens is the maximum number of tokens generated if no limit is provided.
	DefaultMaxTokens = 384

	anthropicVersion = "bedrock-2023-05-31"
)

// Bedrock is a client that sends prompts to a model hosted on AWS Bedrock.
//
// To create a new Bedrock, call [New].
type Bedrock struct {
	logger      *slog.Logger
	config      aws.Config
	region      string
	modelID     string
	maxTokens   int
	temperature float64

	once    sync.Once
	client  *bedrockruntime.Client
	initErr error
}

// New creates a Bedrock with the given Option(s).
func New(opts ...Option) *Bedrock {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.modelID == "" {
		option.modelID = DefaultModelID
	}
	if option.maxTokens <= 0 {
		option.maxTokens = DefaultMaxTokens
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("opskit.bedrock")

	return (*Bedrock)(option)
}

var errNil = errors.New("nil Bedrock")

//nolint:tagliatelle
type (
	request struct {
		AnthropicVersion string    `json:"anthropic_version"`
		System           string    `json:"system,omitempty"`
		MaxTokens        int       `json:"max_tokens"`
		Temperature      float64   `json:"temperature"`
		Messages         []message `json:"messages"`
	}
	message struct {
		Role    string    `json:"role"`
		Content []content `json:"content"`
	}
	content struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	}
	response struct {
		Content    []content `json:"content"`
		StopReason string    `json:"stop_reason"`
		Usage      struct {
			InputTokens  int `json:"input_tokens"`
			OutputTokens int `json:"output_tokens"`
		} `json:"usage"`
	}
)

// Complete sends the prompt as a single user message with the system prompt,
// and returns the text of the first text part in the model's reply.
// It returns an empty string if the reply has no text part.
func (b *Bedrock) Complete(ctx context.Context, system, prompt string) (string, error) {
	if b == nil {
		return "", errNil
	}
	if err := b.init(ctx); err != nil {
		return "", err
	}

	body, err := json.Marshal(request{
		AnthropicVersion: anthropicVersion,
		System:           system,
		MaxTokens:        b.maxTokens,
		Temperature:      b.temperature,
		Messages: []message{
			{Role: "user", Content: []content{{Type: "text", Text: prompt}}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	output, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.modelID),
		Body:        body,
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("invoke model %s: %w", b.modelID, err)
	}

	var resp response
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	b.logger.LogAttrs(ctx, slog.LevelDebug,
		"Model has been invoked.",
		slog.String("model", b.modelID),
		slog.String("stop_reason", resp.StopReason),
		slog.Int("input_tokens", resp.Usage.InputTokens),
		slog.Int("output_tokens", resp.Usage.OutputTokens),
	)

	for _, part := range resp.Content {
		if part.Type == "text" {
			return part.Text, nil
		}
	}

	return "", nil
}

func (b *Bedrock) init(ctx context.Context) error {
	b.once.Do(func() {
		if reflect.ValueOf(b.config).IsZero() {
			if b.config, b.initErr = config.LoadDefaultConfig(ctx); b.initErr != nil {
				b.initErr = fmt.Errorf("load default AWS config: %w", b.initErr)

				return
			}
		}
		b.client = bedrockruntime.NewFromConfig(b.config, func(options *bedrockruntime.Options) {
			if b.region != "" {
				options.Region = b.region
			}
		})
	})

	return b.initErr
}

func (b *Bedrock) String() string {
	return "bedrock:" + b.modelID
}
