// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package config_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nil-go/opskit/internal/assert"
	"github.com/nil-go/opskit/internal/config"
	"github.com/nil-go/opskit/provider/env"
)

func TestConfig_Unmarshal(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		opts        []config.Option
		loaders     []config.Loader
		assert      func(*config.Config)
	}{
		{
			description: "empty values",
			assert: func(cfg *config.Config) {
				var value string
				assert.NoError(t, cfg.Unmarshal("config", &value))
				assert.Equal(t, "", value)
			},
		},
		{
			description: "for primary type",
			loaders:     []config.Loader{mapLoader{"config": "string"}},
			assert: func(cfg *config.Config) {
				var value string
				assert.NoError(t, cfg.Unmarshal("config", &value))
				assert.Equal(t, "string", value)
			},
		},
		{
			description: "for struct",
			loaders: []config.Loader{
				mapLoader{"bedrock": map[string]any{"model": map[string]any{"id": "m"}, "maxtokens": "384"}},
			},
			assert: func(cfg *config.Config) {
				var value struct {
					Model struct {
						ID string
					}
					MaxTokens int32
				}
				assert.NoError(t, cfg.Unmarshal("bedrock", &value))
				assert.Equal(t, "m", value.Model.ID)
				assert.Equal(t, int32(384), value.MaxTokens)
			},
		},
		{
			description: "later loader wins",
			loaders: []config.Loader{
				mapLoader{"aws": map[string]any{"region": "us-east-1", "profile": "p"}},
				mapLoader{"AWS": map[string]any{"Region": "eu-west-1"}},
			},
			assert: func(cfg *config.Config) {
				var value struct {
					Region  string
					Profile string
				}
				assert.NoError(t, cfg.Unmarshal("AWS", &value))
				assert.Equal(t, "eu-west-1", value.Region)
				assert.Equal(t, "p", value.Profile)
			},
		},
		{
			description: "customized delimiter",
			opts:        []config.Option{config.WithDelimiter("/")},
			loaders:     []config.Loader{mapLoader{"config": map[string]any{"nest": "string"}}},
			assert: func(cfg *config.Config) {
				var value string
				assert.NoError(t, cfg.Unmarshal("config/nest", &value))
				assert.Equal(t, "string", value)
			},
		},
		{
			description: "customized tag name",
			opts:        []config.Option{config.WithTagName("json")},
			loaders:     []config.Loader{mapLoader{"config": map[string]any{"max_tokens": 1}}},
			assert: func(cfg *config.Config) {
				var value struct {
					MaxTokens int `json:"max_tokens"`
				}
				assert.NoError(t, cfg.Unmarshal("config", &value))
				assert.Equal(t, 1, value.MaxTokens)
			},
		},
		{
			description: "duration hook",
			loaders:     []config.Loader{mapLoader{"poll": "15s"}},
			assert: func(cfg *config.Config) {
				var value time.Duration
				assert.NoError(t, cfg.Unmarshal("poll", &value))
				assert.Equal(t, 15*time.Second, value)
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			cfg := config.New(testcase.opts...)
			for _, loader := range testcase.loaders {
				assert.NoError(t, cfg.Load(loader))
			}
			testcase.assert(cfg)
		})
	}
}

func TestConfig_Load_error(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	assert.EqualError(t, cfg.Load(nil), "cannot load config from nil loader")
	assert.EqualError(t, cfg.Load(errorLoader{}), "load configuration: load error")
}

func TestConfig_Exists(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	assert.NoError(t, cfg.Load(mapLoader{"Config": map[string]any{"a": "string"}}))
	assert.True(t, cfg.Exists([]string{"config", "A"}))
	assert.True(t, !cfg.Exists([]string{"other"}))

	var empty *config.Config
	assert.True(t, !empty.Exists([]string{"config"}))
}

func TestConfig_Explain(t *testing.T) {
	t.Setenv("CONFIG_NEST", "env")
	cfg := config.New()
	assert.NoError(t, cfg.Load(env.New(env.WithPrefix("CONFIG_"))))
	assert.NoError(t, cfg.Load(mapLoader{"owner": "map", "config": map[string]any{"nest": "map", "token": "t"}}))

	assert.Equal(t, "non-exist has no configuration.\n\n", cfg.Explain("non-exist"))
	assert.Equal(t, "owner has value[map] that is loaded by loader[map].\n\n", cfg.Explain("owner"))
	expected := `config.nest has value[map] that is loaded by loader[map].
Here are other value(loader)s:
  - env(env:CONFIG_)

config.token has value[******] that is loaded by loader[map].

`
	assert.Equal(t, expected, cfg.Explain("config"))
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	assert.NoError(t, cfg.Load(config.Decode(bytesSource("aws:\n  region: eu-west-1\n"), yaml.Unmarshal)))
	var region string
	assert.NoError(t, cfg.Unmarshal("aws.region", &region))
	assert.Equal(t, "eu-west-1", region)

	err := cfg.Load(config.Decode(bytesSource("- a"), yaml.Unmarshal))
	assert.True(t, err != nil)
	assert.Equal(t, "bytes", config.Decode(bytesSource(""), yaml.Unmarshal).(interface{ String() string }).String())
}

type mapLoader map[string]any

func (m mapLoader) Load() (map[string]any, error) {
	return m, nil
}

func (m mapLoader) String() string {
	return "map"
}

type errorLoader struct{}

func (errorLoader) Load() (map[string]any, error) {
	return nil, errors.New("load error")
}

type bytesSource string

func (b bytesSource) Load(context.Context) ([]byte, error) {
	return []byte(b), nil
}

func (b bytesSource) String() string {
	return "bytes"
}
