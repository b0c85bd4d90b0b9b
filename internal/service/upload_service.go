package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
)

type UploadService struct {
	s3Endpoint string
	s3Bucket   string
}

func NewUploadService(s3Endpoint, s3Bucket string) *UploadService {
	return &UploadService{s3Endpoint: s3Endpoint, s3Bucket: s3Bucket}
}

type PresignInput struct {
	Filename    string `json:"filename" binding:"required,max=255"`
	ContentType string `json:"contentType" binding:"required,max=100"`
}

type PresignResult struct {
	UploadURL string `json:"uploadUrl"`
	FileURL   string `json:"fileUrl"`
}

// Presign 对象键为 uploads/{userId}/{uuid}.{ext}
func (s *UploadService) Presign(ctx context.Context, in PresignInput, userID string) *PresignResult {
	ext := "bin"
	if i := strings.LastIndex(in.Filename, "."); i >= 0 && i < len(in.Filename)-1 {
		ext = in.Filename[i+1:]
	}
	key := fmt.Sprintf("uploads/%s/%s.%s", userID, uuid.NewString(), ext)

	uploadURL := fmt.Sprintf("%s/%s/%s?presigned=true", s.s3Endpoint, s.s3Bucket, key)
	fileURL := fmt.Sprintf("%s/%s/%s", s.s3Endpoint, s.s3Bucket, key)

	log.Printf("presign url generated: userId=%s key=%s contentType=%s", userID, key, in.ContentType)
	return &PresignResult{UploadURL: uploadURL, FileURL: fileURL}
}
