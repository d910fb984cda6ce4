// Package presign issues time-limited S3 capabilities. The gateway never
// proxies media bytes; clients talk to the object store directly using the
// URLs minted here.
package presign

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/famvault/media-gateway/internal/server/config"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	timeNow = time.Now
)

// UploadGrant is a presigned PUT capability. The client must send exactly
// RequiredHeaders with the upload; the signature binds to them.
type UploadGrant struct {
	URL             string
	RequiredHeaders map[string]string
	ExpiresAt       time.Time
}

// ReadGrant is a presigned GET capability.
type ReadGrant struct {
	URL       string
	ExpiresAt time.Time
}

// Presigner wraps the S3 presign client with the gateway's purpose-specific
// expiries. It is stateless apart from the lazily built client handle, so a
// single instance serves concurrent requests.
type Presigner struct {
	config *sc.Config

	once    sync.Once
	client  *s3.PresignClient
	initErr error
}

func New(config *sc.Config) *Presigner {
	return &Presigner{config: config}
}

// presignClient builds the S3 presign client on first use. Initialization is
// idempotent: the first caller wins and later callers receive the same
// handle (or the same error).
func (p *Presigner) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	p.once.Do(func() {
		cfg, err := loadDefaultAWSConfig(ctx,
			config.WithRegion(p.config.S3Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				p.config.S3RootUser,
				p.config.S3RootPassword,
				"",
			)))
		if err != nil {
			p.initErr = err
			return
		}

		client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(p.config.S3BaseEndpoint)
		})

		p.client = newS3PresignClient(client)
	})

	return p.client, p.initErr
}

// IssueUpload mints a presigned PUT for key. The signature binds the
// Content-Type, so an upload with a different one is rejected by the storage
// layer itself. Upload URLs stay short-lived; they are single-purpose
// credentials that should not linger.
func (p *Presigner) IssueUpload(ctx context.Context, key, contentType string) (*UploadGrant, error) {
	presignClient, err := p.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := p.config.S3Bucket
	ttl := p.config.UploadURLTTL

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(ttl))

	if err != nil {
		return nil, err
	}

	return &UploadGrant{
		URL:             req.URL,
		RequiredHeaders: map[string]string{"Content-Type": contentType},
		ExpiresAt:       timeNow().Add(ttl),
	}, nil
}

// IssueRead mints a presigned GET for key. Read URLs live longer than upload
// URLs so clients can cache and prefetch without constant re-issuance.
func (p *Presigner) IssueRead(ctx context.Context, key string) (*ReadGrant, error) {
	presignClient, err := p.presignClient(ctx)
	if err != nil {
		return nil, err
	}

	bucket := p.config.S3Bucket
	ttl := p.config.ReadURLTTL

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return nil, err
	}

	return &ReadGrant{
		URL:       req.URL,
		ExpiresAt: timeNow().Add(ttl),
	}, nil
}
