package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"sigorta_portal/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const defaultDocumentsBucketName = "documents"

// S3DocumentStore keeps quote documents in an S3 bucket under the
// "<quote_id>/<filename>" key layout. The retention sweep relies on that
// layout: it lists and deletes by quote prefix without knowing filenames.

type S3DocumentStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

var _ interfaces.IDocumentStore = (*S3DocumentStore)(nil)

func NewS3DocumentStore(client *s3.Client) *S3DocumentStore {
	return &S3DocumentStore{
		client:        client,
		bucket:        getenvDefault("DOCUMENTS_BUCKET", defaultDocumentsBucketName),
		publicBaseURL: strings.TrimRight(os.Getenv("DOCUMENTS_PUBLIC_URL"), "/"),
	}
}

func (s *S3DocumentStore) Upload(ctx context.Context, quoteID, filename string, body io.Reader, contentType string) (string, error) {
	key := quoteID + "/" + filename

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", err
	}
	return s.objectURL(key), nil
}

func (s *S3DocumentStore) ListKeys(ctx context.Context, quoteID string) ([]string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(quoteID + "/"),
	}

	var keys []string
	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, err
		}
		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}
	return keys, nil
}

func (s *S3DocumentStore) DeleteKeys(ctx context.Context, keys []string) error {
	// DeleteObjects caps at 1000 keys per call.
	for len(keys) > 0 {
		batch := keys
		if len(batch) > 1000 {
			batch = batch[:1000]
		}
		keys = keys[len(batch):]

		objects := make([]types.ObjectIdentifier, 0, len(batch))
		for _, key := range batch {
			objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
		}

		out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
		})
		if err != nil {
			return err
		}
		if len(out.Errors) > 0 {
			first := out.Errors[0]
			return fmt.Errorf("deleting %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
		}
	}
	return nil
}

func (s *S3DocumentStore) objectURL(key string) string {
	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key
	}
	region := getenvDefault("AWS_REGION", "us-east-1")
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, region, key)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
