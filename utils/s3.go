package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client

func InitS3() {
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
}

// UploadScanPhoto stores a meal photo under scan-photos/ and returns its key.
// Accepts either a bare base64 string or a "data:<mime>;base64,<data>" URI.
func UploadScanPhoto(base64Data string, userID uint) (string, error) {
	data := base64Data
	contentType := "image/jpeg"
	if strings.HasPrefix(base64Data, "data:") {
		parts := strings.SplitN(base64Data, ",", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("invalid base64 image")
		}
		mediaType := strings.SplitN(parts[0], ":", 2)[1] // "image/jpeg;base64"
		contentType = strings.SplitN(mediaType, ";", 2)[0]
		data = parts[1]
	}

	imageData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %v", err)
	}

	key := fmt.Sprintf("scan-photos/scan-%d-%d.jpg", userID, time.Now().UnixNano())

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	return key, nil
}
