package models

import (
	"strings"

	"github.com/pkg/errors"
)

// S3Object indicates an object on S3 bucket.
type S3Object struct {
	Region string `json:"region"`
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// NewS3Object is constructor of S3Object
func NewS3Object(region, bucket, key string) S3Object {
	return S3Object{
		Region: region,
		Bucket: bucket,
		Key:    key,
	}
}

// IsS3Path returns true if path has s3:// scheme.
func IsS3Path(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// ParseS3Path parses "s3://bucket/key" form.
func ParseS3Path(region, path string) (*S3Object, error) {
	if !IsS3Path(path) {
		return nil, errors.Errorf("Not S3 path: %s", path)
	}

	arr := strings.SplitN(strings.TrimPrefix(path, "s3://"), "/", 2)
	if len(arr) != 2 || arr[0] == "" || arr[1] == "" {
		return nil, errors.Errorf("Invalid S3 path, bucket and key are required: %s", path)
	}

	obj := NewS3Object(region, arr[0], arr[1])
	return &obj, nil
}

// Path returns s3:// form of the object.
func (x *S3Object) Path() string {
	return "s3://" + x.Bucket + "/" + x.Key
}
