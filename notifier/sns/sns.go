// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package sns publishes messages to an AWS [SNS] topic,
// e.g. a topic subscribed by AWS Chatbot to relay summaries into Slack.
//
// It requires following permissions:
//   - sns:Publish
//
// [SNS]: https://aws.amazon.com/sns/
package sns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// maxSubjectLength is the longest subject SNS accepts.
const maxSubjectLength = 100

// Notifier publishes messages to the given SNS topic.
//
// To create a new Notifier, call [New].
type Notifier struct {
	topic  string
	config aws.Config
	logger *slog.Logger

	once    sync.Once
	client  *sns.Client
	initErr error
}

// New creates a Notifier with the given SNS topic ARN.
//
// It panics if the topic is empty.
func New(topic string, opts ...Option) *Notifier {
	if topic == "" {
		panic("cannot create Notifier with empty topic")
	}

	option := &options{
		topic: topic,
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("opskit.sns")

	return (*Notifier)(option)
}

var errNil = errors.New("nil Notifier")

// Notify publishes the message with the given subject,
// and returns the message ID assigned by SNS.
// The subject is flattened to a single line and truncated to 100 characters.
func (n *Notifier) Notify(ctx context.Context, subject, message string) (string, error) {
	if n == nil {
		return "", errNil
	}

	n.once.Do(func() {
		if reflect.ValueOf(n.config).IsZero() {
			if n.config, n.initErr = config.LoadDefaultConfig(ctx); n.initErr != nil {
				n.initErr = fmt.Errorf("load default AWS config: %w", n.initErr)

				return
			}
		}
		n.client = sns.NewFromConfig(n.config)
	})
	if n.initErr != nil {
		return "", n.initErr
	}

	input := &sns.PublishInput{
		TopicArn: aws.String(n.topic),
		Message:  aws.String(message),
	}
	if subject = Subject(subject); subject != "" {
		input.Subject = aws.String(subject)
	}
	output, err := n.client.Publish(ctx, input)
	if err != nil {
		return "", fmt.Errorf("publish to sns topic %s: %w", n.topic, err)
	}

	id := aws.ToString(output.MessageId)
	n.logger.LogAttrs(ctx, slog.LevelInfo,
		"Message has been published.",
		slog.String("topic", n.topic),
		slog.String("id", id),
	)

	return id, nil
}

func (n *Notifier) String() string {
	return "sns:" + n.topic
}

// Subject returns s as a valid SNS subject: line breaks are replaced by spaces,
// and it is cut to at most 100 characters.
func Subject(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if runes := []rune(s); len(runes) > maxSubjectLength {
		s = string(runes[:maxSubjectLength])
	}

	return strings.TrimSpace(s)
}
