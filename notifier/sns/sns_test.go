// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package sns_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsMiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/smithy-go/middleware"

	"github.com/nil-go/opskit/internal/assert"
	ksns "github.com/nil-go/opskit/notifier/sns"
)

const topic = "arn:aws:sns:us-east-1:123456789012:plans"

func TestNotifier_nil(t *testing.T) {
	t.Parallel()

	var notifier *ksns.Notifier
	_, err := notifier.Notify(context.Background(), "subject", "message")
	assert.EqualError(t, err, "nil Notifier")
}

func TestNotifier_Notify(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		subject     string
		publish     func(*sns.PublishInput) (*sns.PublishOutput, error)
		expected    string
		err         string
	}{
		{
			description: "publish",
			subject:     "Title: Terraform Plan Summary (domain: network)",
			publish: func(input *sns.PublishInput) (*sns.PublishOutput, error) {
				if aws.ToString(input.TopicArn) != topic {
					return nil, errors.New("unexpected topic " + aws.ToString(input.TopicArn))
				}
				if aws.ToString(input.Subject) != "Title: Terraform Plan Summary (domain: network)" {
					return nil, errors.New("unexpected subject " + aws.ToString(input.Subject))
				}
				if aws.ToString(input.Message) != "summary" {
					return nil, errors.New("unexpected message " + aws.ToString(input.Message))
				}

				return &sns.PublishOutput{MessageId: aws.String("id-1")}, nil
			},
			expected: "id-1",
		},
		{
			description: "empty subject",
			publish: func(input *sns.PublishInput) (*sns.PublishOutput, error) {
				if input.Subject != nil {
					return nil, errors.New("unexpected subject " + aws.ToString(input.Subject))
				}

				return &sns.PublishOutput{MessageId: aws.String("id-2")}, nil
			},
			expected: "id-2",
		},
		{
			description: "publish error",
			subject:     "subject",
			publish: func(*sns.PublishInput) (*sns.PublishOutput, error) {
				return nil, errors.New("publish error")
			},
			err: "publish to sns topic " + topic + ": operation error SNS: Publish, publish error",
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			notifier := ksns.New(topic, ksns.WithAWSConfig(awsConfig(t, testcase.publish)))
			id, err := notifier.Notify(context.Background(), testcase.subject, "summary")
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testcase.expected, id)
			}
		})
	}
}

func TestNotifier_panic(t *testing.T) {
	t.Parallel()

	defer func() {
		assert.Equal(t, "cannot create Notifier with empty topic", recover())
	}()
	ksns.New("")
}

func TestNotifier_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sns:"+topic, ksns.New(topic).String())
}

func TestSubject(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		subject     string
		expected    string
	}{
		{description: "short", subject: "Title: summary", expected: "Title: summary"},
		{description: "line breaks", subject: " a\nb\r\n\tc ", expected: "a b c"},
		{description: "long", subject: strings.Repeat("x", 120), expected: strings.Repeat("x", 100)},
		{description: "multibyte", subject: strings.Repeat("é", 101), expected: strings.Repeat("é", 100)},
		{description: "empty", subject: "\n", expected: ""},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, ksns.Subject(testcase.subject))
		})
	}
}

// awsConfig stubs Publish at the initialize step, where the input parameters are still typed.
func awsConfig(tb testing.TB, publish func(*sns.PublishInput) (*sns.PublishOutput, error)) aws.Config {
	tb.Helper()

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithRegion("us-east-1"),
		config.WithAPIOptions([]func(*middleware.Stack) error{
			func(stack *middleware.Stack) error {
				return stack.Initialize.Add(
					middleware.InitializeMiddlewareFunc(
						"mock",
						func(
							ctx context.Context,
							in middleware.InitializeInput,
							_ middleware.InitializeHandler,
						) (middleware.InitializeOutput, middleware.Metadata, error) {
							if awsMiddleware.GetOperationName(ctx) != "Publish" {
								return middleware.InitializeOutput{}, middleware.Metadata{}, nil
							}
							input, _ := in.Parameters.(*sns.PublishInput)
							output, err := publish(input)
							if err != nil {
								return middleware.InitializeOutput{}, middleware.Metadata{}, err
							}

							return middleware.InitializeOutput{Result: output}, middleware.Metadata{}, nil
						},
					),
					middleware.After,
				)
			},
		}),
	)
	assert.NoError(tb, err)

	return cfg
}
