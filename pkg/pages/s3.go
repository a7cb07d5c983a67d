package pages

import (
	"context"
	stderrors "errors"
	"io"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store reads pages from an S3 bucket.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := pages.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "site/")
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates an S3Store reading keys under prefix in bucket.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Get returns the document for name.
func (s *S3Store) Get(ctx context.Context, name string) ([]byte, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	for _, ext := range Extensions {
		out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(s.prefix + name + ext),
		})
		if err != nil {
			if isNoSuchKey(err) {
				continue
			}
			return nil, storeFailure(name, err)
		}

		data, err := io.ReadAll(out.Body)
		out.Body.Close()
		if err != nil {
			return nil, storeFailure(name, err)
		}
		return data, nil
	}
	return nil, notFound(name)
}

// List returns every page name under the prefix.
func (s *S3Store) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	}

	for {
		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, storeFailure(s.bucket, err)
		}
		for _, obj := range out.Contents {
			key := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			if name, ok := TrimExtension(key); ok {
				seen[name] = true
			}
		}
		if !aws.ToBool(out.IsTruncated) {
			break
		}
		input.ContinuationToken = out.NextContinuationToken
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if stderrors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	return stderrors.As(err, &nf)
}
