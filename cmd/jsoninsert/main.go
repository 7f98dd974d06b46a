// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Command jsoninsert appends a document to the first array named by a key
// in another document, and prints the result.
//
// Usage:
//
//	jsoninsert [flags] <main_file> <insert_file> <insertion_key>
//
// Both files can be local paths or s3://bucket/key URIs,
// and are parsed as YAML if they have a .yaml or .yml extension, or as JSON otherwise.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/nil-go/opskit/document"
	"github.com/nil-go/opskit/internal/settings"
	"github.com/nil-go/opskit/internal/source"
)

const usage = "Usage: jsoninsert [flags] <main_file> <insert_file> <insertion_key>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type command struct {
	main   source.Source
	insert source.Source
	key    string

	output string
	format document.Format
	opts   []document.InsertOption

	stdout io.Writer
	logger *slog.Logger
}

//nolint:cyclop,funlen
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	set := pflag.NewFlagSet("jsoninsert", pflag.ContinueOnError)
	set.SetOutput(stderr)
	set.Usage = func() {
		_, _ = fmt.Fprintln(stderr, usage)
		set.PrintDefaults()
	}
	output := set.StringP("output", "o", "", "write the result to `file` instead of stdout")
	format := set.String("format", "json", "output `format`, json or yaml")
	all := set.Bool("all", false, "insert into the first match of every branch instead of only the first match")
	watch := set.Bool("watch", false, "insert again whenever an input changes, until interrupted")
	configFile := set.String("config", "", "YAML config `file`")
	set.String("log-level", "", "log `level`, one of debug, info, warn and error (default info)")
	if err := set.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		return 1
	}
	if set.NArg() != 3 { //nolint:mnd
		_, _ = fmt.Fprintln(stderr, usage)

		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	_, loaded, err := settings.Load(ctx, set, *configFile, settings.WithLogger(logger))
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Fail to load settings.", slog.Any("error", err))

		return 1
	}
	logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: loaded.Log.Level}))
	sourceOpts := []source.Option{source.WithLogger(logger), source.WithRegion(loaded.AWS.Region)}

	cmd := command{
		main:   source.New(set.Arg(0), sourceOpts...),
		insert: source.New(set.Arg(1), sourceOpts...),
		key:    set.Arg(2), //nolint:mnd
		output: *output,
		stdout: stdout,
		logger: logger,
	}
	if cmd.format, err = document.ParseFormat(*format); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Invalid output format.", slog.Any("error", err))

		return 1
	}
	if *all {
		cmd.opts = append(cmd.opts, document.EveryBranch())
	}

	if err := cmd.apply(ctx); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Fail to insert document.", slog.Any("error", err))
		if !*watch {
			return 1
		}
	}
	if *watch {
		if err := cmd.watch(ctx); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "Fail to watch documents.", slog.Any("error", err))

			return 1
		}
	}

	return 0
}

// apply loads both documents, inserts and writes the result.
func (c command) apply(ctx context.Context) error {
	var doc, value *document.Value
	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		doc, err = load(gctx, c.main)

		return err
	})
	group.Go(func() error {
		var err error
		value, err = load(gctx, c.insert)

		return err
	})
	if err := group.Wait(); err != nil {
		return err //nolint:wrapcheck
	}

	count, err := document.Insert(doc, value, c.key, c.opts...)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", c.main, err)
	}
	if count == 0 {
		c.logger.LogAttrs(ctx, slog.LevelWarn,
			"Insertion key not found, document is unchanged.",
			slog.String("key", c.key),
			slog.String("document", c.main.String()),
		)
	} else {
		c.logger.LogAttrs(ctx, slog.LevelDebug,
			"Document has been inserted.",
			slog.String("key", c.key),
			slog.Int("count", count),
		)
	}

	var buf bytes.Buffer
	if err := document.Encode(&buf, doc, c.format); err != nil {
		return err //nolint:wrapcheck
	}
	if c.output == "" {
		_, err = c.stdout.Write(buf.Bytes())

		return err //nolint:wrapcheck
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0o644); err != nil { //nolint:gosec,mnd
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// watch applies again whenever either input changes. It blocks until ctx is done.
func (c command) watch(ctx context.Context) error {
	var mutex sync.Mutex
	onChange := func([]byte) {
		mutex.Lock()
		defer mutex.Unlock()

		if err := c.apply(ctx); err != nil {
			c.logger.LogAttrs(ctx, slog.LevelError, "Fail to insert document.", slog.Any("error", err))
		}
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error { return c.main.Watch(gctx, onChange) })
	group.Go(func() error { return c.insert.Watch(gctx, onChange) })

	return group.Wait() //nolint:wrapcheck
}

func load(ctx context.Context, src source.Source) (*document.Value, error) {
	data, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	value, err := document.Decode(data, document.FormatOf(src.String()))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}

	return value, nil
}
