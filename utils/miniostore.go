package utils

import (
	"context"
	"fmt"
	"io"
	"strings"

	minioSDK "github.com/minio/minio-go/v7"
	"github.com/ticketflowai/ticketflow/minio"
)

// UploadObject stores content as an object in the document bucket.
var UploadObject = func(ctx context.Context, objectName string, contentType string, contentReader io.Reader, contentSize int64) error {
	if strings.TrimSpace(objectName) == "" {
		return fmt.Errorf("object name cannot be empty")
	}

	_, err := minio.Client.PutObject(ctx, minio.BucketName, objectName, contentReader, contentSize, minioSDK.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

// DownloadObject returns the full object content.
var DownloadObject = func(ctx context.Context, objectName string) ([]byte, error) {
	obj, err := minio.Client.GetObject(ctx, minio.BucketName, objectName, minioSDK.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	return io.ReadAll(obj)
}

// OpenObject returns a reader for streaming the object to a response body.
// The caller closes it.
var OpenObject = func(ctx context.Context, objectName string) (io.ReadCloser, int64, error) {
	obj, err := minio.Client.GetObject(ctx, minio.BucketName, objectName, minioSDK.GetObjectOptions{})
	if err != nil {
		return nil, 0, err
	}
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		return nil, 0, err
	}
	return obj, stat.Size, nil
}

// DeleteObject removes the object from the bucket.
var DeleteObject = func(ctx context.Context, objectName string) error {
	return minio.Client.RemoveObject(ctx, minio.BucketName, objectName, minioSDK.RemoveObjectOptions{})
}
