package source

import (
	"compress/gzip"
	"context"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/lsftools/lsbacct/internal"
	"github.com/lsftools/lsbacct/internal/adaptor"
	"github.com/lsftools/lsbacct/internal/util"
	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/pkg/errors"
)

var logger = internal.Logger

// Stdin is path name that means standard input.
const Stdin = "-"

// S3RetryLimit is max number of GetObject attempts for transient errors.
const S3RetryLimit = 5

// Options controls Open.
type Options struct {
	// Region of S3 bucket
	Region string
	// Follow keeps reading a local file after EOF until the context is done.
	Follow bool

	NewS3    adaptor.S3ClientFactory
	NewRetry util.RetryTimerFactory
}

func (x Options) newRetry() util.RetryTimerFactory {
	if x.NewRetry != nil {
		return x.NewRetry
	}
	return util.NewExpRetryTimer
}

func (x Options) newS3() adaptor.S3ClientFactory {
	if x.NewS3 != nil {
		return x.NewS3
	}
	return adaptor.NewS3Client
}

// Open returns a reader of log data at path. path is a local file path,
// "-" (or empty) for standard input, or s3://bucket/key. Data of a path with
// ".gz" suffix is decompressed.
func Open(ctx context.Context, path string, opts Options) (io.ReadCloser, error) {
	if opts.Follow {
		if path == "" || path == Stdin || models.IsS3Path(path) || isGzip(path) {
			return nil, errors.Errorf("Follow mode supports only local plain file: %s", path)
		}
		return openFollow(ctx, path)
	}

	var rc io.ReadCloser
	switch {
	case path == "" || path == Stdin:
		rc = ioutil.NopCloser(os.Stdin)

	case models.IsS3Path(path):
		obj, err := models.ParseS3Path(opts.Region, path)
		if err != nil {
			return nil, err
		}
		body, err := openS3(obj, opts.newS3(), opts.newRetry())
		if err != nil {
			return nil, err
		}
		rc = body

	default:
		fd, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "Fail to open log file: %s", path)
		}
		rc = fd
	}

	logger.WithField("path", path).Debug("Opened log source")

	if isGzip(path) {
		return newGzipReader(rc)
	}
	return rc, nil
}

func isGzip(path string) bool {
	return strings.HasSuffix(path, ".gz")
}

func openS3(obj *models.S3Object, newS3 adaptor.S3ClientFactory, newRetry util.RetryTimerFactory) (io.ReadCloser, error) {
	client := newS3(obj.Region)
	input := &s3.GetObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
	}

	var output *s3.GetObjectOutput
	var lastErr error
	err := newRetry(S3RetryLimit).Run(func(seq int) (bool, error) {
		out, err := client.GetObject(input)
		if err == nil {
			output = out
			return true, nil
		}
		if !isRetryable(err) {
			return false, err
		}

		logger.WithError(err).WithField("seq", seq).Warn("Retry GetObject")
		lastErr = err
		return false, nil
	})
	if err == util.ErrRetryLimitExceeded {
		err = lastErr
	}
	if err != nil {
		return nil, errors.Wrapf(err, "Fail to get S3 object: %s", obj.Path())
	}

	return output.Body, nil
}

func isRetryable(err error) bool {
	aerr, ok := err.(awserr.Error)
	if !ok {
		return false
	}

	switch aerr.Code() {
	case s3.ErrCodeNoSuchBucket, s3.ErrCodeNoSuchKey, "AccessDenied":
		return false
	}
	return true
}

type gzipReader struct {
	gz  *gzip.Reader
	src io.ReadCloser
}

func newGzipReader(src io.ReadCloser) (io.ReadCloser, error) {
	gz, err := gzip.NewReader(src)
	if err != nil {
		src.Close()
		return nil, errors.Wrap(err, "Fail to open gzip stream")
	}
	return &gzipReader{gz: gz, src: src}, nil
}

func (x *gzipReader) Read(p []byte) (int, error) { return x.gz.Read(p) }

func (x *gzipReader) Close() error {
	if err := x.gz.Close(); err != nil {
		x.src.Close()
		return err
	}
	return x.src.Close()
}
