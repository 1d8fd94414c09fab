package state

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vpcforge/vpcforge/internal/config"
)

// s3Ref prefixes references that the S3 store resolves.
const s3RefScheme = "s3://"

// S3API is the subset of the S3 client used by the state store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Store mirrors state documents to an S3 bucket. Custom endpoints with
// path-style addressing are supported for S3-compatible stores.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store builds an S3Store from the optional state_backend config block.
// An empty region falls back to the default resolution chain (environment,
// shared config).
func NewS3Store(ctx context.Context, backend *config.StateBackendConfig) (*S3Store, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if backend.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(backend.Region))
	}
	if backend.AccessKey != "" && backend.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(backend.AccessKey, backend.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if backend.Endpoint != "" {
			o.BaseEndpoint = aws.String(backend.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: backend.Bucket, prefix: backend.Prefix}, nil
}

// NewS3StoreWithClient creates an S3Store around an existing client.
func NewS3StoreWithClient(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// Save uploads the state document and returns its s3:// URI.
func (s *S3Store) Save(ctx context.Context, st *DeploymentState, vpcName string) (string, error) {
	data, err := Marshal(st)
	if err != nil {
		return "", err
	}

	key := path.Join(s.prefix, StateFileName(vpcName))
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload state to s3: %w", err)
	}

	return s3RefScheme + s.bucket + "/" + key, nil
}

// Load fetches a state document from an s3://bucket/key reference.
func (s *S3Store) Load(ctx context.Context, ref string) (*DeploymentState, error) {
	bucket, key, err := ParseS3Ref(ref)
	if err != nil {
		return nil, err
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch state from s3: %w", err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read state object: %w", err)
	}
	return Unmarshal(data)
}

// IsS3Ref reports whether ref names an S3 object rather than a local file.
func IsS3Ref(ref string) bool {
	return strings.HasPrefix(ref, s3RefScheme)
}

// ParseS3Ref splits an s3://bucket/key reference.
func ParseS3Ref(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, s3RefScheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 reference: %q", ref)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 reference %q: expected s3://bucket/key", ref)
	}
	return bucket, key, nil
}
