package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"

	"bnbBack/internal/models"
)

// NewAttachmentName returns a random file name that keeps the original
// extension, e.g. "3f1c...e9.jpg".
func NewAttachmentName(original string) string {
	return uuid.NewString() + filepath.Ext(original)
}

// LocalAttachmentStore writes attachments to a directory served under
// PublicPrefix.
type LocalAttachmentStore struct {
	Dir          string
	PublicPrefix string
}

func (s *LocalAttachmentStore) Save(ctx context.Context, attachment models.Attachment) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := NewAttachmentName(attachment.Filename)
	dst, err := os.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create attachment: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, attachment.Body); err != nil {
		return "", fmt.Errorf("write attachment: %w", err)
	}
	return path.Join(s.PublicPrefix, name), nil
}

type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	Folder    string
	AccessKey string
	SecretKey string
	PublicURL string
}

// S3AttachmentStore uploads attachments to an S3 compatible bucket.
type S3AttachmentStore struct {
	client    s3iface.S3API
	bucket    string
	folder    string
	publicURL string
}

func NewS3AttachmentStore(cfg S3Config) (*S3AttachmentStore, error) {
	awsCfg := &aws.Config{
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	if cfg.AccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create s3 session: %w", err)
	}
	return newS3AttachmentStore(s3.New(sess), cfg), nil
}

func newS3AttachmentStore(client s3iface.S3API, cfg S3Config) *S3AttachmentStore {
	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return &S3AttachmentStore{
		client:    client,
		bucket:    cfg.Bucket,
		folder:    cfg.Folder,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *S3AttachmentStore) Save(ctx context.Context, attachment models.Attachment) (string, error) {
	key := path.Join(s.folder, NewAttachmentName(attachment.Filename))

	body, ok := attachment.Body.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(attachment.Body)
		if err != nil {
			return "", fmt.Errorf("read attachment: %w", err)
		}
		body = bytes.NewReader(data)
	}

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return s.publicURL + "/" + key, nil
}
