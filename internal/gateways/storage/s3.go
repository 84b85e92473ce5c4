package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arcana-cards/arcana/internal/domain/accounts"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disgoorg/snowflake/v2"
)

var ErrNotConfigured = errors.New("object storage is not configured")

type Config struct {
	// Endpoint of an S3 compatible service. Empty uses AWS.
	Endpoint     string `toml:"endpoint" env:"ENDPOINT"`
	Region       string `toml:"region" env:"REGION"`
	Bucket       string `toml:"bucket" env:"BUCKET"`
	AccessKey    string `toml:"access_key" env:"ACCESS_KEY"`
	SecretKey    string `toml:"secret_key" env:"SECRET_KEY"`
	KeyPrefix    string `toml:"key_prefix" env:"KEY_PREFIX"`
	UsePathStyle bool   `toml:"use_path_style" env:"USE_PATH_STYLE"`
}

// objectAPI is the subset of *s3.Client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Store struct {
	client    objectAPI
	bucket    string
	keyPrefix string
	seq       atomic.Uint64
	now       func() time.Time
}

var _ accounts.ObjectStore = (*S3Store)(nil)

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3Store(client, cfg.Bucket, cfg.KeyPrefix), nil
}

func newS3Store(client objectAPI, bucket, keyPrefix string) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		now:       time.Now,
	}
}

// Put uploads body under <prefix>/<userID>/<snowflake><ext> and returns the key.
func (s *S3Store) Put(ctx context.Context, userID, contentType string, body []byte) (string, error) {
	key := s.objectKey(userID, contentType)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}

	slog.Debug("Object stored",
		slog.String("type", "sys"),
		slog.String("key", key),
		slog.Int("bytes", len(body)))
	return key, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", ref, err)
	}
	return nil
}

func (s *S3Store) objectKey(userID, contentType string) string {
	// low 12 bits hold a per-process sequence so keys made in the same
	// millisecond differ
	id := snowflake.ID(uint64(snowflake.New(s.now())) | (s.seq.Add(1) & 0xFFF))

	name := id.String() + extensionFor(contentType)
	if s.keyPrefix == "" {
		return path.Join(userID, name)
	}
	return path.Join(s.keyPrefix, userID, name)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

// Disabled stands in when no bucket is configured. Uploads fail with
// ErrNotConfigured and deletes are no-ops.
type Disabled struct{}

var _ accounts.ObjectStore = Disabled{}

func (Disabled) Put(context.Context, string, string, []byte) (string, error) {
	return "", ErrNotConfigured
}

func (Disabled) Delete(context.Context, string) error {
	return nil
}
