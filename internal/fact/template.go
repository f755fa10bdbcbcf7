package fact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the part of the S3 client used to fetch prompt overrides
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadTemplate reads the prompt override named by source: "s3://bucket/key",
// "file://path" or a plain path. Any failure, or a template without the
// {location} placeholder, yields DefaultTemplate. objects may be nil when no
// S3 source is configured.
func LoadTemplate(ctx context.Context, source string, objects ObjectGetter, logger *slog.Logger) string {
	source = strings.TrimSpace(source)
	if source == "" {
		return DefaultTemplate
	}

	template, err := readSource(ctx, source, objects)
	if err != nil {
		logger.Info("failed to load prompt override, using default", "source", source, "error", err)
		return DefaultTemplate
	}
	if !ValidTemplate(template) {
		logger.Info("prompt override is empty or lacks {location}, using default", "source", source)
		return DefaultTemplate
	}

	logger.Info("loaded prompt override", "source", source)
	return strings.TrimSpace(template)
}

func readSource(ctx context.Context, source string, objects ObjectGetter) (string, error) {
	if rest, ok := strings.CutPrefix(source, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return "", fmt.Errorf("invalid S3 source %q: expected s3://bucket/key", source)
		}
		if objects == nil {
			return "", fmt.Errorf("no S3 client configured")
		}

		out, err := objects.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return "", fmt.Errorf("failed to get object: %w", err)
		}
		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(out.Body)

		data, err := io.ReadAll(out.Body)
		if err != nil {
			return "", fmt.Errorf("failed to read object: %w", err)
		}
		return string(data), nil
	}

	path := strings.TrimPrefix(source, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
