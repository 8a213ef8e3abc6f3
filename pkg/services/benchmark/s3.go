package benchmark

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

// ObjectGetter is the part of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Settings struct {
	Bucket string
	Key    string
	Region string
}

type s3Loader struct {
	client   ObjectGetter
	settings S3Settings
}

func NewS3Loader(client ObjectGetter, settings S3Settings) Loader {
	return &s3Loader{client: client, settings: settings}
}

// NewS3LoaderFromEnv builds an S3 client from the default AWS credential chain.
func NewS3LoaderFromEnv(ctx context.Context, settings S3Settings) (Loader, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if settings.Region != "" {
		opts = append(opts, awsconfig.WithRegion(settings.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3Loader(s3.NewFromConfig(cfg), settings), nil
}

func (l *s3Loader) Load(ctx context.Context) (domain.BenchmarkDataset, error) {
	logger := zerolog.Ctx(ctx)
	if l.settings.Bucket == "" || l.settings.Key == "" {
		return domain.BenchmarkDataset{}, fmt.Errorf("s3 bucket and key are required")
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.settings.Bucket),
		Key:    aws.String(l.settings.Key),
	})
	if err != nil {
		return domain.BenchmarkDataset{}, fmt.Errorf("get s3://%s/%s: %w", l.settings.Bucket, l.settings.Key, err)
	}
	defer func() {
		if err := out.Body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close s3 object body")
		}
	}()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return domain.BenchmarkDataset{}, fmt.Errorf("read s3 object: %w", err)
	}
	logger.Debug().
		Str("bucket", l.settings.Bucket).
		Str("key", l.settings.Key).
		Int("bytes", len(data)).
		Msg("loaded benchmark dataset from s3")

	return ParseDataset(data, FormatFromPath(l.settings.Key))
}
