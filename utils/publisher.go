package utils

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Publisher uploads rendered page documents to static hosting.
type Publisher interface {
	Publish(ctx context.Context, slug string, document string) (string, error)
}

type S3Publisher struct {
	uploader *manager.Uploader
	bucket   string
	prefix   string
}

func NewS3Publisher(ctx context.Context, bucket, prefix string) (*S3Publisher, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &S3Publisher{
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		prefix:   prefix,
	}, nil
}

func PublishKey(prefix, slug string) string {
	return path.Join(prefix, slug, "index.html")
}

func (p *S3Publisher) Publish(ctx context.Context, slug string, document string) (string, error) {
	result, err := p.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(p.bucket),
		Key:          aws.String(PublishKey(p.prefix, slug)),
		Body:         strings.NewReader(document),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", slug, err)
	}
	return result.Location, nil
}
