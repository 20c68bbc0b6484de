package s3

import (
	"io"
	"mime"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/sirupsen/logrus"

	"vidshare/cmd/config"
)

// Enabled reports whether an S3 bucket is configured for asset storage.
// When it is not, the uploads handler falls back to local disk.
func Enabled() bool {
	return config.S3Bucket != ""
}

// UploadFile stores the object under key and returns its public URL.
func UploadFile(body io.Reader, key string) (string, error) {
	sess := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(config.AWSRegion),
	}))
	uploader := s3manager.NewUploader(sess)

	contentType := mime.TypeByExtension(filepath.Ext(key))

	result, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(config.S3Bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		logrus.Errorf("failed to upload %s to S3: %v", key, err)
		return "", err
	}
	return result.Location, nil
}
