package zipcode

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reference tables stored in AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Loader creates a loader that reads prefix+name from bucket.
func NewS3Loader(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-zipcode-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Str("prefix", prefix).
		Msg("S3 loader initialised")

	return &s3Loader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// Load downloads and parses the object prefix+name.
func (l *s3Loader) Load(ctx context.Context, name string) (*Dataset, error) {
	key := l.prefix + name

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading zip code dataset from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	dataset, err := ParseDataset(ctx, result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to parse zip code dataset from S3")
		return nil, fmt.Errorf("failed to parse zip code dataset from S3 %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("zip_codes_loaded", dataset.Size()).
		Msg("zip code dataset loaded successfully from S3")

	return dataset, nil
}

// fallbackLoader tries a remote loader first, then a local one.
type fallbackLoader struct {
	remote Loader
	local  Loader
	logger zerolog.Logger
}

// NewFallbackLoader creates a loader that tries remote first and falls back
// to local. A nil remote means local only.
func NewFallbackLoader(remote, local Loader, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		remote: remote,
		local:  local,
		logger: logger.With().Str("component", "fallback-zipcode-loader").Logger(),
	}
}

// Load attempts the remote loader, then the local loader.
func (l *fallbackLoader) Load(ctx context.Context, name string) (*Dataset, error) {
	if l.remote != nil {
		dataset, err := l.remote.Load(ctx, name)
		if err == nil {
			return dataset, nil
		}

		l.logger.Warn().
			Err(err).
			Str("resource", name).
			Msg("failed to load from remote source, falling back to bundled dataset")
	}

	return l.local.Load(ctx, name)
}
