package utils

import (
	"bytes"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"clinicBack/internal/config"
)

// Storage wraps an S3-compatible object store. Objects are uploaded
// public-read; the store does not version URLs, so callers append a
// timestamp query parameter when they need cache busting.
type Storage struct {
	bucket   string
	endpoint string
	client   *s3.S3
}

func NewStorage(cfg config.Config) (*Storage, error) {
	st := cfg.Storage
	if st.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(st.Region),
		Endpoint:    aws.String(st.Endpoint),
		Credentials: credentials.NewStaticCredentials(st.AccessKey, st.SecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: create session: %w", err)
	}

	return &Storage{
		bucket:   st.Bucket,
		endpoint: st.Endpoint,
		client:   s3.New(sess),
	}, nil
}

// Upload stores the file under folder/fileName and returns its public URL.
func (s *Storage) Upload(file []byte, fileName, folder, contentType string) (string, error) {
	filePath := fmt.Sprintf("%s/%s", folder, fileName)

	_, err := s.client.PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(file),
		ContentLength: aws.Int64(int64(len(file))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}

	return s.PublicURL(filePath), nil
}

// Remove deletes the given object paths. Best-effort: the first failure is
// returned but earlier deletions stand.
func (s *Storage) Remove(paths ...string) error {
	for _, p := range paths {
		_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(p),
		})
		if err != nil {
			return fmt.Errorf("unable to delete %s: %w", p, err)
		}
	}
	return nil
}

func (s *Storage) PublicURL(path string) string {
	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, path)
}
