// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package config merges settings from ordered loaders, such as embedded defaults,
// configuration files, AWS Parameter Store, environment variables and flags,
// and decodes them into structs.
//
// Each loader takes precedence over the loaders before it.
// Keys are case-insensitive and nested with the delimiter, `.` by default.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	gomaps "maps"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nil-go/opskit/internal/credential"
	"github.com/nil-go/opskit/internal/maps"
)

// Loader is the interface that wraps the basic Load method.
//
// Load loads settings and returns as a nested map[string]any.
// It requires that the string keys should be nested like `{parent: {child: {key: 1}}}`.
type Loader interface {
	Load() (map[string]any, error)
}

// Config reads settings from appropriate loaders.
//
// To create a new Config, call [New].
type Config struct {
	logger     *slog.Logger
	decodeHook mapstructure.DecodeHookFunc
	tagName    string
	delimiter  string

	values    map[string]any
	providers []provider
}

type provider struct {
	loader Loader
	values map[string]any
}

// New creates a new Config with the given Option(s).
func New(opts ...Option) *Config {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	if option.delimiter == "" {
		option.delimiter = "."
	}
	if option.tagName == "" {
		option.tagName = "opskit"
	}
	if option.decodeHook == nil {
		option.decodeHook = defaultDecodeHook
	}

	return (*Config)(option)
}

// Load loads settings from the given loader.
// Each loader takes precedence over the loaders before it.
//
// This method can be called multiple times but it is not concurrency-safe.
func (c *Config) Load(loader Loader) error {
	if loader == nil {
		return errNilLoader
	}

	values, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if c.values == nil {
		c.values = make(map[string]any)
	}
	maps.Merge(c.values, values)

	// Merged to empty map to convert to lower case.
	providerValues := make(map[string]any)
	maps.Merge(providerValues, values)
	c.providers = append(c.providers, provider{
		loader: loader,
		values: providerValues,
	})
	c.logger.Debug("Configuration has been loaded.", "loader", loader)

	return nil
}

// Exists tests if the given path exist in the configuration.
//
// It's used by the loader to check if the configuration has been set by other loaders.
func (c *Config) Exists(path []string) bool {
	if c == nil {
		return false
	}

	return maps.Sub(c.values, path) != nil
}

// Unmarshal reads settings under the given path from the Config
// and decodes it into the given object pointed to by target.
// The path is case-insensitive.
func (c *Config) Unmarshal(path string, target any) error {
	if c == nil {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           target,
			WeaklyTypedInput: true,
			DecodeHook:       c.decodeHook,
			TagName:          c.tagName,
		},
	)
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	if err := decoder.Decode(maps.Sub(c.values, c.split(path))); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func (c *Config) split(key string) []string {
	return strings.Split(key, c.delimiter)
}

// Explain describes, for every leaf under path, the value in effect with the loader
// it came from, followed by the values it overrides. Credentials are blurred.
// The path is case-insensitive.
func (c *Config) Explain(path string) string {
	if c == nil {
		return path + " has no configuration.\n\n"
	}

	var explanation strings.Builder
	for _, leaf := range c.leaves(strings.ToLower(path), maps.Sub(c.values, c.split(path))) {
		c.explain(&explanation, leaf)
	}

	return explanation.String()
}

// leaves lists the paths of all non-map values under value in key order.
func (c *Config) leaves(path string, value any) []string {
	values, ok := value.(map[string]any)
	if !ok {
		return []string{path}
	}

	var paths []string
	for _, key := range slices.Sorted(gomaps.Keys(values)) {
		child := key
		if path != "" {
			child = path + c.delimiter + key
		}
		paths = append(paths, c.leaves(child, values[key])...)
	}

	return paths
}

func (c *Config) explain(explanation *strings.Builder, path string) {
	type source struct {
		loader Loader
		value  any
	}
	// Latest loader first.
	var sources []source
	for i := len(c.providers) - 1; i >= 0; i-- {
		if value := maps.Sub(c.providers[i].values, c.split(path)); value != nil {
			sources = append(sources, source{loader: c.providers[i].loader, value: value})
		}
	}

	if len(sources) == 0 {
		fmt.Fprintf(explanation, "%s has no configuration.\n\n", path)

		return
	}

	fmt.Fprintf(explanation, "%s has value[%s] that is loaded by loader[%v].\n",
		path, credential.Blur(path, sources[0].value), sources[0].loader)
	if len(sources) > 1 {
		explanation.WriteString("Here are other value(loader)s:\n")
		for _, other := range sources[1:] {
			fmt.Fprintf(explanation, "  - %s(%v)\n", credential.Blur(path, other.value), other.loader)
		}
	}
	explanation.WriteString("\n")
}

var (
	errNilLoader = errors.New("cannot load config from nil loader")

	defaultDecodeHook = mapstructure.ComposeDecodeHookFunc( //nolint:gochecknoglobals
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
)
