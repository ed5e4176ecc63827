package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// S3-compatible object storage settings, read from the environment.
var (
	s3AccessKey = os.Getenv("S3_ACCESS_KEY")
	s3SecretKey = os.Getenv("S3_SECRET_KEY")
	s3Bucket    = envOr("S3_BUCKET", "khstay-media")
	s3Region    = envOr("S3_REGION", "us-east-1")
	s3Endpoint  = envOr("S3_ENDPOINT", "https://object.pscloud.io")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getS3Client() *s3.S3 {
	sess := session.Must(session.NewSession(&aws.Config{
		Region:   aws.String(s3Region),
		Endpoint: aws.String(s3Endpoint),
		Credentials: credentials.NewStaticCredentials(
			s3AccessKey, s3SecretKey, "",
		),
	}))
	return s3.New(sess)
}

// UploadFileToS3 stores the uploaded file under folder/ with a random
// name and returns the public URL.
func UploadFileToS3(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("unable to read uploaded file: %v", err)
	}

	ext := filepath.Ext(header.Filename)
	filePath := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	_, err = getS3Client().PutObject(&s3.PutObjectInput{
		Bucket:        aws.String(s3Bucket),
		Key:           aws.String(filePath),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %v", err)
	}

	return fmt.Sprintf("https://%s.object.pscloud.io/%s", s3Bucket, filePath), nil
}
