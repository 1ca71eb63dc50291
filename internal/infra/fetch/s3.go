// Where: internal/infra/fetch/s3.go
// What: S3 snapshot source.
// Why: Allow refreshing from a private bucket mirror.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/antipatico/portid/internal/domain/portdb"
	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the subset of the S3 client used to fetch a snapshot.
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads a snapshot object from a bucket.
type S3Source struct {
	bucket string
	key    string
	client S3API
}

// NewS3Source builds a source for s3://bucket/key. Credentials come from
// the default AWS chain; opts.S3Endpoint targets S3-compatible stores.
func NewS3Source(ctx context.Context, u *url.URL, opts Options) (*S3Source, error) {
	bucket := u.Host
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: %q", errInvalidS3URL, u.String())
	}

	client := opts.S3Client
	if client == nil {
		var err error
		client, err = newS3Client(ctx, opts)
		if err != nil {
			return nil, err
		}
	}
	return &S3Source{bucket: bucket, key: key, client: client}, nil
}

func newS3Client(ctx context.Context, opts Options) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.S3Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.S3Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(options *s3.Options) {
		if opts.S3Endpoint != "" {
			options.BaseEndpoint = aws.String(opts.S3Endpoint)
			options.UsePathStyle = true
		}
	}), nil
}

func (s *S3Source) Location() string {
	return "s3://" + s.bucket + "/" + s.key
}

func (s *S3Source) Size(ctx context.Context) (int64, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if _, ok := responseStatus(err); ok {
			return -1, nil
		}
		return -1, fmt.Errorf("%w: head %s: %w", portdb.ErrNetwork, s.Location(), err)
	}
	if out.ContentLength == nil {
		return -1, nil
	}
	return aws.ToInt64(out.ContentLength), nil
}

func (s *S3Source) Open(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if status, ok := responseStatus(err); ok && status != http.StatusOK {
			return nil, &portdb.HTTPError{URL: s.Location(), StatusCode: status}
		}
		return nil, fmt.Errorf("%w: get %s: %w", portdb.ErrNetwork, s.Location(), err)
	}
	return out.Body, nil
}

func responseStatus(err error) (int, bool) {
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode(), true
	}
	return 0, false
}
