package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/campusmarket/internal/logging"
	"github.com/dmitrijs2005/campusmarket/internal/server/config"
	"github.com/dmitrijs2005/campusmarket/internal/server/imaging"
)

const maxUploadSize = 5 << 20 // 5 MiB per file

// FileUpload is one multipart part handed to the upload service.
type FileUpload struct {
	Name string
	Data []byte
}

// UploadService normalizes listing photos and stores them in an
// S3-compatible backend (MinIO in development).
type UploadService struct {
	config *config.Config
	logger logging.Logger
}

func NewUploadService(cfg *config.Config, logger logging.Logger) *UploadService {
	return &UploadService{config: cfg, logger: logger}
}

func (s *UploadService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

func storageKey() string {
	d := time.Now()
	return fmt.Sprintf("items/%d/%02d/%02d/%v.jpg", d.Year(), d.Month(), d.Day(), uuid.New())
}

// Store validates, re-encodes, and uploads the given files, returning their
// public URLs in input order. Validation failures surface as ValidationError
// before anything is written.
func (s *UploadService) Store(ctx context.Context, files []FileUpload) ([]string, error) {
	if len(files) == 0 {
		return nil, validationErr("At least one image is required")
	}
	if len(files) > maxImagesPerItem {
		return nil, validationErr(fmt.Sprintf("Maximum %d images allowed per item", maxImagesPerItem))
	}

	processed := make([][]byte, 0, len(files))
	for _, f := range files {
		if len(f.Data) > maxUploadSize {
			return nil, validationErr("Each image must be smaller than 5MB")
		}
		data, err := imaging.Process(f.Data)
		if errors.Is(err, imaging.ErrUnsupportedType) {
			return nil, validationErr("Only JPEG, PNG, and WebP images are allowed")
		}
		if err != nil {
			return nil, validationErr("Only JPEG, PNG, and WebP images are allowed")
		}
		processed = append(processed, data)
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}

	urls := make([]string, 0, len(processed))
	for _, data := range processed {
		key := storageKey()
		_, err := client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(s.config.S3Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String("image/jpeg"),
		})
		if err != nil {
			return nil, fmt.Errorf("error storing image: %w", err)
		}
		urls = append(urls, s.publicURL(key))
	}

	s.logger.Info(ctx, "images stored", "count", len(urls))
	return urls, nil
}

func (s *UploadService) publicURL(key string) string {
	return strings.TrimSuffix(s.config.PublicBaseURL, "/") + "/" + key
}
