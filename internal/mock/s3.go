package mock

import (
	"bytes"
	"io/ioutil"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/lsftools/lsbacct/internal/adaptor"
)

// NewS3Client is constructor of S3 Mock. All clients share one data store.
func NewS3Client(region string) adaptor.S3Client {
	return &S3Client{
		Region: region,
		data:   mockS3ClientDataStore,
	}
}

// S3Client is on memory S3Client mock
type S3Client struct {
	Region string
	data   map[string]map[string][]byte
}

var mockS3ClientDataStore = map[string]map[string][]byte{}
var mockS3ClientFailures = map[string]int{}

// FailS3Object makes next count GetObject calls of the object fail with a
// transient InternalError.
func FailS3Object(bucket, key string, count int) {
	mockS3ClientFailures[bucket+"/"+key] = count
}

// PutS3Object saves data to the shared mock store.
func PutS3Object(bucket, key string, data []byte) {
	bkt, ok := mockS3ClientDataStore[bucket]
	if !ok {
		bkt = map[string][]byte{}
		mockS3ClientDataStore[bucket] = bkt
	}
	bkt[key] = data
}

// GetObject of S3Client loads []bytes from memory
func (x *S3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	failKey := *input.Bucket + "/" + *input.Key
	if mockS3ClientFailures[failKey] > 0 {
		mockS3ClientFailures[failKey]--
		return nil, awserr.New("InternalError", "mock internal error", nil)
	}

	bucket, ok := x.data[*input.Bucket]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchBucket, "no such bucket", nil)
	}
	obj, ok := bucket[*input.Key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "no such key", nil)
	}

	return &s3.GetObjectOutput{
		Body: ioutil.NopCloser(bytes.NewReader(obj)),
	}, nil
}
