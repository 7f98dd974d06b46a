// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package bedrock

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// WithAWSConfig provides the AWS Config for the AWS SDK.
//
// By default, it loads the default AWS Config.
func WithAWSConfig(config aws.Config) Option {
	return func(options *options) {
		options.config = config
	}
}

// WithRegion overrides the region of the AWS Config.
func WithRegion(region string) Option {
	return func(options *options) {
		options.region = region
	}
}

// WithModelID provides the Bedrock model ID.
//
// By default, it uses [DefaultModelID].
func WithModelID(modelID string) Option {
	return func(options *options) {
		options.modelID = modelID
	}
}

// WithMaxTokens provides the maximum number of tokens to generate.
//
// By default, it's [DefaultMaxTokens].
func WithMaxTokens(maxTokens int) Option {
	return func(options *options) {
		options.maxTokens = maxTokens
	}
}

// WithTemperature provides the sampling temperature.
//
// By default, it's 0 for deterministic output.
func WithTemperature(temperature float64) Option {
	return func(options *options) {
		options.temperature = temperature
	}
}

// WithLogger provides the slog.Logger for Bedrock.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures a Bedrock with specific options.
	Option  func(*options)
	options Bedrock
)
