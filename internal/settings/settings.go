// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package settings loads the settings shared by the command-line tools.
//
// Settings are loaded in the order of precedence, from low to high:
//   - embedded defaults,
//   - the YAML file given by --config,
//   - AWS Parameter Store under ssm.path, if it is set by any other loader,
//   - environment variables named after a setting, e.g. BEDROCK_MODEL_ID for bedrock.model.id,
//   - flags, e.g. --bedrock-model-id for bedrock.model.id.
package settings

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/opskit/internal/config"
	"github.com/nil-go/opskit/provider/env"
	"github.com/nil-go/opskit/provider/file"
	"github.com/nil-go/opskit/provider/fs"
	"github.com/nil-go/opskit/provider/parameterstore"
	kflag "github.com/nil-go/opskit/provider/pflag"
)

//go:embed defaults.yaml
var defaults embed.FS

// Settings holds the settings of the command-line tools.
type Settings struct {
	AWS struct {
		Region string
	}
	Bedrock struct {
		Model struct {
			ID string
		}
		MaxTokens   int
		Temperature float64
	}
	SNS struct {
		Topic string
	}
	SSM struct {
		Path string
	}
	Prompt struct {
		Template string
	}
	Log struct {
		Level slog.Level
	}
}

// Paths are the settings reported by [Explain].
// Other settings from the environment, such as AWS credentials, are not reported.
var Paths = []string{ //nolint:gochecknoglobals
	"aws.region",
	"bedrock.model.id",
	"bedrock.maxtokens",
	"bedrock.temperature",
	"sns.topic",
	"ssm.path",
	"prompt.template",
	"log.level",
}

// Load loads settings from all loaders with the given flag set and config file,
// which is skipped if it's empty.
func Load(ctx context.Context, set *pflag.FlagSet, configFile string, opts ...Option) (*config.Config, Settings, error) {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}

	base := []config.Loader{fs.New(defaults, "defaults.yaml")}
	if configFile != "" {
		base = append(base, config.Decode(file.New(configFile, file.WithLogger(option.logger)), yaml.Unmarshal))
	}

	cfg, settings, err := load(option.logger, set, base)
	if err != nil || settings.SSM.Path == "" {
		return cfg, settings, err
	}

	// The path of Parameter Store can be set by any other loader,
	// so it's inserted before environment variables and flags in a second pass.
	awsConfig := option.awsConfig
	if reflect.ValueOf(awsConfig).IsZero() {
		if awsConfig, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(settings.AWS.Region)); err != nil {
			return nil, Settings{}, fmt.Errorf("load default AWS config: %w", err)
		}
	}
	store := parameterstore.New(
		parameterstore.WithPath(settings.SSM.Path),
		parameterstore.WithAWSConfig(awsConfig),
		parameterstore.WithLogger(option.logger),
	)

	return load(option.logger, set, append(base, store))
}

func load(logger *slog.Logger, set *pflag.FlagSet, loaders []config.Loader) (*config.Config, Settings, error) {
	cfg := config.New(config.WithLogger(logger))
	loaders = append(loaders, env.New(env.WithFilter(isSettingEnv)))
	if set != nil {
		loaders = append(loaders, kflag.New(cfg, set))
	}
	for _, loader := range loaders {
		if err := cfg.Load(loader); err != nil {
			return nil, Settings{}, err //nolint:wrapcheck
		}
	}

	var settings Settings
	if err := cfg.Unmarshal("", &settings); err != nil {
		return nil, Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}

	return cfg, settings, nil
}

// isSettingEnv reports whether the environment variable maps to one of [Paths],
// e.g. BEDROCK_MODEL_ID for bedrock.model.id.
func isSettingEnv(name string) bool {
	for _, path := range Paths {
		if strings.EqualFold(name, strings.ReplaceAll(path, ".", "_")) {
			return true
		}
	}

	return false
}

// Explain reports where each of [Paths] is loaded from.
func Explain(cfg *config.Config) string {
	var explanation string
	for _, path := range Paths {
		explanation += cfg.Explain(path)
	}

	return explanation
}

// WithLogger provides the slog.Logger for loaders.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithAWSConfig provides the AWS Config for AWS Parameter Store.
//
// By default, it loads the default AWS Config with the region in aws.region.
func WithAWSConfig(config aws.Config) Option {
	return func(options *options) {
		options.awsConfig = config
	}
}

type (
	// Option configures how settings are loaded.
	Option  func(*options)
	options struct {
		logger    *slog.Logger
		awsConfig aws.Config
	}
)
