package storage

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"heavytime-server/internal/config"
	"heavytime-server/internal/models"
)

// imageKeyPattern matches object keys with a known image extension.
var imageKeyPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// ImageLister lists the public URLs of the photos stored under a date prefix.
//
//go:generate mockery --name ImageLister --output ../mocks --outpkg mocks --case=underscore
type ImageLister interface {
	// ListImages returns the public URLs of all image objects under the
	// dateKey ("YYYY-MM-DD") prefix. A reachable bucket with no matching
	// objects yields an empty, non-nil slice.
	ListImages(ctx context.Context, dateKey string) ([]string, error)
}

// s3ImageLister implements ImageLister against an S3-compatible bucket.
type s3ImageLister struct {
	client     s3.ListObjectsV2APIClient
	logger     *zap.Logger
	bucket     string
	prefixRoot string
	publicHost string
	pageSize   int32
}

// Compile-time check
var _ ImageLister = (*s3ImageLister)(nil)

// NewS3ImageLister builds an ImageLister backed by the configured bucket.
func NewS3ImageLister(ctx context.Context, cfg config.StorageConfig, logger *zap.Logger) (ImageLister, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return newS3ImageLister(client, cfg, logger), nil
}

// newS3ImageLister wires an already-built client; used by tests.
func newS3ImageLister(client s3.ListObjectsV2APIClient, cfg config.StorageConfig, logger *zap.Logger) *s3ImageLister {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	return &s3ImageLister{
		client:     client,
		logger:     logger.Named("S3ImageLister"),
		bucket:     cfg.Bucket,
		prefixRoot: cfg.PrefixRoot,
		publicHost: cfg.PublicHost,
		pageSize:   pageSize,
	}
}

// ListImages pages through the date prefix and keeps image-suffixed keys.
func (l *s3ImageLister) ListImages(ctx context.Context, dateKey string) ([]string, error) {
	prefix := fmt.Sprintf("%s/%s/", l.prefixRoot, dateKey)
	log := l.logger.With(zap.String("bucket", l.bucket), zap.String("prefix", prefix))
	log.Debug("Listing images")

	paginator := s3.NewListObjectsV2Paginator(l.client, &s3.ListObjectsV2Input{
		Bucket:  aws.String(l.bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(l.pageSize),
	})

	imageURLs := make([]string, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			log.Error("Failed to list bucket objects", zap.Error(err))
			return nil, fmt.Errorf("%w: objects under %q: %v", models.ErrImageListingFailed, prefix, err)
		}
		for _, obj := range page.Contents {
			if obj.Key == nil {
				continue
			}
			if imageKeyPattern.MatchString(*obj.Key) {
				imageURLs = append(imageURLs, l.publicURL(*obj.Key))
			}
		}
	}

	log.Info("Images listed", zap.Int("count", len(imageURLs)))
	return imageURLs, nil
}

func (l *s3ImageLister) publicURL(key string) string {
	return fmt.Sprintf("https://%s.%s/%s", l.bucket, l.publicHost, key)
}
