// Package s3backend stores each collection as one object in an S3 compatible
// bucket (AWS S3, MinIO). Read-modify-write cycles use conditional puts on the
// object's ETag and retry when another writer got there first.
package s3backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var loadDefaultAWSConfig = config.LoadDefaultConfig

// maxAttempts bounds Transact retries on conflicting writers.
const maxAttempts = 5

var ErrTooManyConflicts = errors.New("s3backend: too many concurrent writers")

// objectAPI is the part of *s3.Client used here.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Options struct {
	Bucket       string
	Prefix       string
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
}

type Backend struct {
	client objectAPI
	bucket string
	prefix string
}

// Open builds an S3 client from opts. Static credentials are used when
// AccessKey is set, the default AWS chain otherwise.
func Open(ctx context.Context, opts Options) (*Backend, error) {
	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := loadDefaultAWSConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	return New(client, opts.Bucket, opts.Prefix), nil
}

func New(client objectAPI, bucket, prefix string) *Backend {
	return &Backend{client: client, bucket: bucket, prefix: prefix}
}

func (b *Backend) key(collection string) string {
	return b.prefix + collection + ".json"
}

func (b *Backend) Read(ctx context.Context, collection string) ([]byte, error) {
	doc, _, err := b.get(ctx, collection)
	return doc, err
}

func (b *Backend) Write(ctx context.Context, collection string, doc []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key(collection)),
		Body:        bytes.NewReader(doc),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", b.key(collection), err)
	}
	return nil
}

// Transact puts the new document only if the object is unchanged since it
// was read (If-Match on its ETag, or If-None-Match when it did not exist).
func (b *Backend) Transact(ctx context.Context, collection string, fn func(doc []byte) ([]byte, error)) error {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		doc, etag, err := b.get(ctx, collection)
		if err != nil {
			return err
		}
		out, err := fn(doc)
		if err != nil {
			return err
		}

		in := &s3.PutObjectInput{
			Bucket:      aws.String(b.bucket),
			Key:         aws.String(b.key(collection)),
			Body:        bytes.NewReader(out),
			ContentType: aws.String("application/json"),
		}
		if etag == "" {
			in.IfNoneMatch = aws.String("*")
		} else {
			in.IfMatch = aws.String(etag)
		}

		_, err = b.client.PutObject(ctx, in)
		if err == nil {
			return nil
		}
		if !isConflict(err) {
			return fmt.Errorf("put object %s: %w", b.key(collection), err)
		}
	}
	return ErrTooManyConflicts
}

func (b *Backend) get(ctx context.Context, collection string) ([]byte, string, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(collection)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("get object %s: %w", b.key(collection), err)
	}
	defer out.Body.Close()

	doc, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read object %s: %w", b.key(collection), err)
	}
	return doc, aws.ToString(out.ETag), nil
}

type statusCoder interface {
	HTTPStatusCode() int
}

func isConflict(err error) bool {
	var sc statusCoder
	if !errors.As(err, &sc) {
		return false
	}
	return sc.HTTPStatusCode() == http.StatusPreconditionFailed || sc.HTTPStatusCode() == http.StatusConflict
}
