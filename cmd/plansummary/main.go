// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Command plansummary summarizes a Terraform plan with a model on AWS Bedrock,
// and prints a six-line drift report.
//
// Usage:
//
//	plansummary [flags] <plan_file> [domain]
//
// The plan file can be a local path or an s3://bucket/key URI.
// Settings can also be provided by environment variables,
// e.g. BEDROCK_MODEL_ID and AWS_REGION, see --help for the flags.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"reflect"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/pflag"

	"github.com/nil-go/opskit/internal/settings"
	"github.com/nil-go/opskit/internal/source"
	"github.com/nil-go/opskit/notifier/sns"
	"github.com/nil-go/opskit/provider/bedrock"
	"github.com/nil-go/opskit/provider/file"
	"github.com/nil-go/opskit/summary"
)

const usage = "Usage: plansummary [flags] <plan_file> [domain]"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, aws.Config{})
	stop()
	os.Exit(code)
}

// run runs the command with the given AWS Config,
// or the default AWS Config in the configured region if it's zero.
//
//nolint:cyclop,funlen
func run(ctx context.Context, args []string, stdout, stderr io.Writer, awsConfig aws.Config) int {
	set := pflag.NewFlagSet("plansummary", pflag.ContinueOnError)
	set.SetOutput(stderr)
	set.Usage = func() {
		_, _ = fmt.Fprintln(stderr, usage)
		set.PrintDefaults()
	}
	configFile := set.String("config", "", "YAML config `file`")
	explain := set.Bool("explain", false, "print where each setting is loaded from and exit")
	strict := set.Bool("strict", false, "fail if the summary is not a well-formed report")
	set.String("aws-region", "", "AWS `region` (default us-east-1)")
	set.String("bedrock-model-id", "", "Bedrock model `id` (default "+bedrock.DefaultModelID+")")
	set.Int("bedrock-maxtokens", 0, "maximum number of tokens to generate (default 384)")
	set.Float64("bedrock-temperature", 0, "sampling temperature")
	set.String("sns-topic", "", "SNS topic `arn` to publish the summary to")
	set.String("ssm-path", "", "Parameter Store `path` to load settings from")
	set.String("prompt-template", "", "prompt template `file` with {{.Plan}} and {{.Domain}}")
	set.String("log-level", "", "log `level`, one of debug, info, warn and error (default info)")
	if err := set.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}

		return 1
	}

	logger := slog.New(slog.NewTextHandler(stderr, nil))
	options := []settings.Option{settings.WithLogger(logger)}
	if !reflect.ValueOf(awsConfig).IsZero() {
		options = append(options, settings.WithAWSConfig(awsConfig))
	}
	cfg, loaded, err := settings.Load(ctx, set, *configFile, options...)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Fail to load settings.", slog.Any("error", err))

		return 1
	}
	if *explain {
		_, _ = fmt.Fprint(stdout, settings.Explain(cfg))

		return 0
	}
	if set.NArg() < 1 || set.NArg() > 2 { //nolint:mnd
		_, _ = fmt.Fprintln(stderr, usage)

		return 1
	}
	logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: loaded.Log.Level}))

	if reflect.ValueOf(awsConfig).IsZero() {
		if awsConfig, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(loaded.AWS.Region)); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "Fail to load AWS config.", slog.Any("error", err))

			return 1
		}
	}

	plan, err := source.New(
		set.Arg(0),
		source.WithLogger(logger),
		source.WithAWSConfig(awsConfig),
		source.WithRegion(loaded.AWS.Region),
	).Load(ctx)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Fail to read plan.", slog.Any("error", err))

		return 1
	}
	domain := set.Arg(1)

	opts := []summary.Option{summary.WithLogger(logger)}
	if loaded.Prompt.Template != "" {
		text, err := file.New(loaded.Prompt.Template).Load(ctx)
		if err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "Fail to read prompt template.", slog.Any("error", err))

			return 1
		}
		tmpl, err := summary.ParseTemplate(string(text))
		if err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "Invalid prompt template.", slog.Any("error", err))

			return 1
		}
		opts = append(opts, summary.WithTemplate(tmpl))
	}
	model := bedrock.New(
		bedrock.WithAWSConfig(awsConfig),
		bedrock.WithRegion(loaded.AWS.Region),
		bedrock.WithModelID(loaded.Bedrock.Model.ID),
		bedrock.WithMaxTokens(loaded.Bedrock.MaxTokens),
		bedrock.WithTemperature(loaded.Bedrock.Temperature),
		bedrock.WithLogger(logger),
	)
	text, err := summary.New(model, opts...).Summarize(ctx, string(plan), domain)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "Fail to summarize plan.", slog.Any("error", err))

		return 1
	}

	subject := summary.Title
	report, err := summary.Parse(text)
	switch {
	case err != nil && *strict:
		logger.LogAttrs(ctx, slog.LevelError, "Summary is not a well-formed report.", slog.Any("error", err))

		return 1
	case err != nil:
		logger.LogAttrs(ctx, slog.LevelWarn, "Summary is not a well-formed report.", slog.Any("error", err))
	default:
		subject = report.Subject()
		if counts, ok := summary.CountPlan(string(plan)); ok && counts != report.Counts {
			logger.LogAttrs(ctx, slog.LevelWarn,
				"Summary counts do not match the plan.",
				slog.Any("summary", report.Counts),
				slog.Any("plan", counts),
			)
		}
	}
	_, _ = fmt.Fprintln(stdout, text)

	if loaded.SNS.Topic != "" {
		notifier := sns.New(loaded.SNS.Topic, sns.WithAWSConfig(awsConfig), sns.WithLogger(logger))
		if _, err := notifier.Notify(ctx, subject, text); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "Fail to publish summary.", slog.Any("error", err))

			return 1
		}
	}

	return 0
}
