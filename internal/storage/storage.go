// AngelaMos | 2026
// storage.go

package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/mpke-dev/beatstore/internal/config"
)

// Client wraps the S3 client and its presigner. Media rows store permanent
// object URLs; everything a caller downloads goes through a time-limited
// signed URL minted per response.
type Client struct {
	s3      *s3.Client
	presign *s3.PresignClient
	cfg     config.StorageConfig
}

func NewClient(ctx context.Context, cfg config.StorageConfig) (*Client, error) {
	awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.EndpointURL != "" {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
			o.UsePathStyle = true
		}
	})

	return &Client{
		s3:      s3Client,
		presign: s3.NewPresignClient(s3Client),
		cfg:     cfg,
	}, nil
}

// PresignURL signs a GET for the object a stored URL points at. The key is
// the prefix plus the URL's last path segment, matching how uploads are
// keyed.
func (c *Client) PresignURL(
	ctx context.Context,
	prefix, storedURL string,
) (string, error) {
	key, err := ObjectKey(prefix, storedURL)
	if err != nil {
		return "", err
	}

	signed, err := c.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.cfg.Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(c.cfg.PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}

	return signed.URL, nil
}

// Upload stores an object under prefix and returns its permanent URL. Keys
// carry an upload timestamp so re-uploads of the same filename never
// collide.
func (c *Client) Upload(
	ctx context.Context,
	prefix, filename, contentType string,
	body io.Reader,
) (string, error) {
	key := prefix + fmt.Sprintf(
		"%d-%s",
		time.Now().UnixMilli(),
		sanitizeFilename(filename),
	)

	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.cfg.Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return c.objectURL(key), nil
}

// Ping verifies bucket access for readiness checks.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.s3.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.cfg.Bucket),
	})
	if err != nil {
		return fmt.Errorf("head bucket %s: %w", c.cfg.Bucket, err)
	}

	return nil
}

func (c *Client) objectURL(key string) string {
	if c.cfg.EndpointURL != "" {
		return fmt.Sprintf(
			"%s/%s/%s",
			strings.TrimRight(c.cfg.EndpointURL, "/"),
			c.cfg.Bucket,
			key,
		)
	}

	return fmt.Sprintf(
		"https://%s.s3.%s.amazonaws.com/%s",
		c.cfg.Bucket,
		c.cfg.Region,
		key,
	)
}

// ObjectKey derives the bucket key for a stored URL: the prefix plus the
// URL's last path segment, percent-decoding survivors of earlier encodes.
func ObjectKey(prefix, storedURL string) (string, error) {
	trimmed := strings.TrimRight(storedURL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 || idx == len(trimmed)-1 {
		return "", fmt.Errorf("no object name in url %q", storedURL)
	}

	segment := trimmed[idx+1:]
	if decoded, err := url.PathUnescape(segment); err == nil {
		segment = decoded
	}

	return prefix + segment, nil
}

var unsafeFilenameChars = regexp.MustCompile(`\s+`)

func sanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(name), "_")
}
