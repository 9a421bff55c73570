package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
	"github.com/yukikurage/apqp-tracker/internal/config"
	"github.com/yukikurage/apqp-tracker/internal/models"
)

// FileStorage keeps the bytes of uploaded documents. References returned
// by Put are what documents store in their File column.
type FileStorage interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string, expiry time.Duration) (string, error)
}

// ErrNoBucket is returned when storage is requested without a bucket configured.
var ErrNoBucket = errors.New("storage: no bucket configured")

// S3Storage stores documents in an S3 bucket.
type S3Storage struct {
	bucket   string
	svc      *s3.S3
	uploader *s3manager.Uploader
}

// NewS3Storage creates an S3Storage from the S3_* settings. A custom
// endpoint switches to path-style addressing for S3-compatible servers.
func NewS3Storage(cfg *config.Config) (*S3Storage, error) {
	if cfg.S3Bucket == "" {
		return nil, ErrNoBucket
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.S3Region),
	}
	if cfg.S3AccessKeyID != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3AccessKeyID, cfg.S3SecretAccessKey, "")
	}
	if cfg.S3Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.S3Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, err
	}

	return &S3Storage{
		bucket:   cfg.S3Bucket,
		svc:      s3.New(sess),
		uploader: s3manager.NewUploader(sess),
	}, nil
}

// Put uploads body under key and returns key as the reference.
func (s *S3Storage) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	input := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.uploader.UploadWithContext(ctx, input); err != nil {
		return "", err
	}
	return key, nil
}

// Delete removes the object behind ref. Deleting a missing object succeeds.
func (s *S3Storage) Delete(ctx context.Context, ref string) error {
	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	return err
}

// URL returns a presigned download link for ref.
func (s *S3Storage) URL(ref string, expiry time.Duration) (string, error) {
	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	return req.Presign(expiry)
}

// DocumentKey builds the object key of a document uploaded to a phase.
// The original file name is kept as the last path element so that the
// document name can be taken from the reference.
func DocumentKey(prefix string, phaseID uuid.UUID, filename string) string {
	name := models.BaseName(filename)
	if name == "" {
		name = "file"
	}
	return path.Join(strings.Trim(prefix, "/"), phaseID.String(), uuid.NewString(), name)
}
