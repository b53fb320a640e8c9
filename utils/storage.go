package utils

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"interviewportal/models"
)

const maxResumeSize = 10 << 20 // 10MB

func NewGCSClient(ctx context.Context, credentialsFile string) (*storage.Client, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return storage.NewClient(ctx, option.WithAuthCredentialsFile(option.ServiceAccount, filepath.Join(wd, credentialsFile)))
}

// UploadResumeToGCS validates and stores a candidate resume PDF, returning
// the attachment metadata persisted on the interview.
func UploadResumeToGCS(
	ctx context.Context,
	client *storage.Client,
	bucketName string,
	interviewID string,
	candidateName string,
	fileHeader *multipart.FileHeader,
) (*models.ResumeAttachment, error) {

	if fileHeader.Size > maxResumeSize {
		return nil, fmt.Errorf("resume too large (max %d MB)", maxResumeSize>>20)
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return nil, fmt.Errorf("only PDF files are allowed")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buffer := make([]byte, 512)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header")
	}
	if detected := http.DetectContentType(buffer[:n]); detected != "application/pdf" {
		return nil, fmt.Errorf("file content is not a PDF")
	}
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("failed to reset file reader")
	}

	objectName := fmt.Sprintf(
		"resumes/%s/%s-%d-%s.pdf",
		interviewID,
		GenerateSlug(candidateName),
		time.Now().UTC().Unix(),
		uuid.New().String(),
	)

	obj := client.Bucket(bucketName).Object(objectName)
	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/pdf"
	writer.CacheControl = "no-cache"

	if _, err := io.Copy(writer, file); err != nil {
		_ = writer.Close()
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	publicURL := fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucketName, objectName)

	return &models.ResumeAttachment{
		PublicURL:  publicURL,
		ObjectName: objectName,
		MimeType:   "application/pdf",
		SizeBytes:  fileHeader.Size,
		FileName:   fileHeader.Filename,
		UploadedAt: time.Now().UTC(),
	}, nil
}

func DeleteGCSObjects(ctx context.Context, client *storage.Client, bucket string, objectNames []string) error {
	var firstErr error

	for _, obj := range objectNames {
		if obj == "" {
			continue
		}
		err := client.Bucket(bucket).Object(obj).Delete(ctx)
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("delete %s: %w", obj, err)
		}
	}

	return firstErr
}
