package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jhoicas/gestor-notas-api/internal/application/ports"
	"github.com/jhoicas/gestor-notas-api/pkg/config"
)

var _ ports.ImageStorage = (*S3ImageStorage)(nil)

// S3ImageStorage guarda las fotos de las notas en un bucket privado; solo se leen con URL firmada.
type S3ImageStorage struct {
	client        *s3.Client
	presigner     *s3.PresignClient
	bucket        string
	presignExpiry time.Duration
}

// NewS3ImageStorage carga la configuración AWS, crea el cliente y comprueba el bucket.
func NewS3ImageStorage(ctx context.Context, c config.StorageConfig) (*S3ImageStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	st := newS3ImageStorage(awsCfg, c)
	if err := st.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return st, nil
}

func newS3ImageStorage(awsCfg aws.Config, c config.StorageConfig) *S3ImageStorage {
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		// override para MinIO/LocalStack
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
			o.UsePathStyle = true
		}
	})
	expiry := time.Duration(c.PresignMinutes) * time.Minute
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &S3ImageStorage{
		client:        client,
		presigner:     s3.NewPresignClient(client),
		bucket:        c.Bucket,
		presignExpiry: expiry,
	}
}

// ensureBucket crea el bucket si no existe (sin política pública).
func (s *S3ImageStorage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3ImageStorage) Put(ctx context.Context, key, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	return nil
}

// PresignGet URL de lectura temporal (S3_PRESIGN_MINUTES).
func (s *S3ImageStorage) PresignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.presignExpiry))
	if err != nil {
		return "", fmt.Errorf("presign object: %w", err)
	}
	return req.URL, nil
}

func (s *S3ImageStorage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}
