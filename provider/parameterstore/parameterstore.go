// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package parameterstore loads configuration from AWS [Parameter Store].
//
// It requires following permissions to access parameters from AWS Parameter Store:
//   - ssm:GetParametersByPath
//
// Parameters are loaded recursively under the configured path,
// and the path is stripped from parameter names before they are split into keys.
// For example, with path "/opskit", parameter "/opskit/bedrock/model/id"
// is loaded as "bedrock.model.id".
//
// [Parameter Store]: https://docs.aws.amazon.com/systems-manager/latest/userguide/systems-manager-parameter-store.html
package parameterstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/nil-go/opskit/internal/maps"
)

// ParameterStore is a loader that loads configuration from AWS Parameter Store.
//
// To create a new ParameterStore, call [New].
type ParameterStore struct {
	logger   *slog.Logger
	path     string
	filters  []types.ParameterStringFilter
	splitter func(string) []string
	config   aws.Config
}

// New creates a ParameterStore with the given Option(s).
func New(opts ...Option) *ParameterStore {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.path == "" {
		option.path = "/"
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("opskit.parameterstore")

	return (*ParameterStore)(option)
}

var errNil = errors.New("nil ParameterStore")

func (p *ParameterStore) Load() (map[string]any, error) {
	if p == nil {
		return nil, errNil
	}

	ctx := context.Background()
	parameters, err := p.parameters(ctx)
	if err != nil {
		return nil, err
	}

	splitter := p.splitter
	if splitter == nil {
		splitter = func(s string) []string {
			return strings.Split(strings.Trim(s, "/"), "/")
		}
	}

	values := make(map[string]any)
	for _, parameter := range parameters {
		name := strings.TrimPrefix(aws.ToString(parameter.Name), strings.TrimSuffix(p.path, "/"))
		keys := splitter(name)
		if len(keys) == 0 || len(keys) == 1 && keys[0] == "" {
			continue
		}

		maps.Insert(values, keys, aws.ToString(parameter.Value))
	}
	p.logger.LogAttrs(ctx, slog.LevelDebug,
		"Parameters have been loaded.",
		slog.String("path", p.path),
		slog.Int("count", len(parameters)),
	)

	return values, nil
}

func (p *ParameterStore) parameters(ctx context.Context) ([]types.Parameter, error) {
	cfg := p.config
	if reflect.ValueOf(cfg).IsZero() {
		var err error
		if cfg, err = config.LoadDefaultConfig(ctx); err != nil {
			return nil, fmt.Errorf("load default AWS config: %w", err)
		}
	}
	client := ssm.NewFromConfig(cfg)

	var (
		parameters []types.Parameter
		nextToken  *string
	)
	for {
		output, err := client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:             aws.String(p.path),
			ParameterFilters: p.filters,
			Recursive:        aws.Bool(true),
			WithDecryption:   aws.Bool(true),
			NextToken:        nextToken,
		})
		if err != nil {
			return nil, fmt.Errorf("get parameters: %w", err)
		}
		parameters = append(parameters, output.Parameters...)

		if output.NextToken == nil {
			return parameters, nil
		}
		nextToken = output.NextToken
	}
}

func (p *ParameterStore) String() string {
	return "parameter-store:" + p.path
}
