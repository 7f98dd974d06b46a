// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package parameterstore

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// WithPath provides the hierarchy for loading parameters from Parameter Store.
// Only parameters under the given path will be loaded.
// Hierarchies start with a forward slash (/).
//
// By default, the path is "/" for all parameters.
func WithPath(path string) Option {
	return func(options *options) {
		options.path = path
	}
}

// WithFilter provides [filter] that will be used to select a set of parameters.
//
// The following Key values are supported for GetParametersByPath: Type, KeyId, and Label.
//
// [filter]: https://docs.aws.amazon.com/systems-manager/latest/APIReference/API_ParameterStringFilter.html
func WithFilter(filters ...types.ParameterStringFilter) Option {
	return func(options *options) {
		options.filters = append(options.filters, filters...)
	}
}

// WithNameSplitter provides the function used to split parameter names into nested keys.
// The name passed to the splitter has the path already stripped.
// If it returns an nil/[]string{}/[]string{""}, the parameter will be ignored.
//
// For example, with the default splitter, a name like "/bedrock/model/id"
// would be split into "bedrock", "model", and "id".
func WithNameSplitter(splitter func(string) []string) Option {
	return func(options *options) {
		options.splitter = splitter
	}
}

// WithAWSConfig provides the AWS Config for the AWS SDK.
//
// By default, it loads the default AWS Config.
func WithAWSConfig(config aws.Config) Option {
	return func(options *options) {
		options.config = config
	}
}

// WithLogger provides the slog.Logger for ParameterStore.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures the a ParameterStore with specific options.
	Option  func(options *options)
	options ParameterStore
)
