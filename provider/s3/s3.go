// Copyright (c) 2026 The opskit authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package s3 reads documents from AWS [S3].
//
// It requires following permissions to access object from AWS S3:
//   - s3:GetObject
//
// Watch periodically polls the object, and only calls onChange
// when its ETag has changed since the last read.
//
// [S3]: https://aws.amazon.com/s3/
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3 is a source that reads content from an AWS S3 object.
//
// To create a new S3, call [New].
type S3 struct {
	logger       *slog.Logger
	pollInterval time.Duration
	client       *clientProxy
}

// New creates an S3 with the given uri and Option(s).
// The uri is in the form of `s3://bucket/key`.
//
// It panics if the uri has no bucket or key.
func New(uri string, opts ...Option) *S3 {
	uri = strings.TrimPrefix(uri, "s3:")
	uri = strings.TrimLeft(uri, "/")
	bucket, key, _ := strings.Cut(uri, "/")
	if bucket == "" || key == "" {
		panic("cannot create S3 without bucket and key")
	}

	option := &options{
		client: &clientProxy{
			bucket: bucket,
			key:    key,
		},
	}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("opskit.s3")

	return (*S3)(option)
}

var errNil = errors.New("nil S3")

func (a *S3) Load(ctx context.Context) ([]byte, error) {
	if a == nil {
		return nil, errNil
	}

	bytes, _, err := a.client.load(ctx, false)

	return bytes, err
}

// Watch polls the object and calls onChange with the new content
// when the object has changed. It blocks until ctx is done.
func (a *S3) Watch(ctx context.Context, onChange func([]byte)) error {
	if a == nil {
		return errNil
	}

	pollInterval := time.Minute
	if a.pollInterval > 0 {
		pollInterval = a.pollInterval
	}
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			bytes, changed, err := a.client.load(ctx, true)
			if err != nil {
				a.logger.LogAttrs(
					ctx, slog.LevelWarn,
					"Error when polling S3 object.",
					slog.String("uri", a.String()),
					slog.Any("error", err),
				)

				continue
			}
			if changed {
				onChange(bytes)
			}
		}
	}
}

func (a *S3) String() string {
	return "s3://" + path.Join(a.client.bucket, a.client.key)
}

type clientProxy struct {
	config aws.Config
	region string
	bucket string
	key    string

	once    sync.Once
	client  *s3.Client
	initErr error

	eTagMutex sync.Mutex
	eTag      *string
}

func (p *clientProxy) init(ctx context.Context) error {
	p.once.Do(func() {
		if reflect.ValueOf(p.config).IsZero() {
			p.config, p.initErr = config.LoadDefaultConfig(ctx)
			if p.initErr != nil {
				p.initErr = fmt.Errorf("load default AWS config: %w", p.initErr)

				return
			}
		}
		p.client = s3.NewFromConfig(p.config, func(options *s3.Options) {
			if p.region != "" {
				options.Region = p.region
			}
		})
	})

	return p.initErr
}

// load gets the object. With conditional, it skips the content
// if the object has not been changed since the last load.
func (p *clientProxy) load(ctx context.Context, conditional bool) ([]byte, bool, error) {
	if err := p.init(ctx); err != nil {
		return nil, false, err
	}

	p.eTagMutex.Lock()
	defer p.eTagMutex.Unlock()

	input := &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	}
	if conditional {
		input.IfNoneMatch = p.eTag
	}
	resp, err := p.client.GetObject(ctx, input)
	if err != nil {
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "NotModified" {
			return nil, false, nil
		}

		return nil, false, fmt.Errorf("get object: %w", err)
	}
	defer func() {
		// Ignore error: it could do nothing on this error.
		_ = resp.Body.Close()
	}()

	if conditional && p.eTag != nil && resp.ETag != nil && *resp.ETag == *p.eTag {
		return nil, false, nil
	}
	p.eTag = resp.ETag

	bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read object: %w", err)
	}

	return bytes, true, nil
}
