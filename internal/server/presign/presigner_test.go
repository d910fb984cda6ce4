package presign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	sc "github.com/famvault/media-gateway/internal/server/config"
)

func testConfig() *sc.Config {
	return &sc.Config{
		S3Region:       "us-east-1",
		S3RootUser:     "minioadmin",
		S3RootPassword: "minioadmin",
		S3BaseEndpoint: "http://127.0.0.1:9000",
		S3Bucket:       "media",
		UploadURLTTL:   15 * time.Minute,
		ReadURLTTL:     time.Hour,
	}
}

func restoreHooks(t *testing.T) {
	t.Helper()
	origLoad := loadDefaultAWSConfig
	origNewS3 := newS3ClientFromConfig
	origNewPre := newS3PresignClient
	origPut := presignPutObject
	origGet := presignGetObject
	origNow := timeNow
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNewS3
		newS3PresignClient = origNewPre
		presignPutObject = origPut
		presignGetObject = origGet
		timeNow = origNow
	})
}

func stubClientConstruction(t *testing.T) {
	t.Helper()
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return &s3.Client{}
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return &s3.PresignClient{}
	}
}

func Test_presignClient_AppliesConfig(t *testing.T) {
	restoreHooks(t)

	p := New(testConfig())

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		if len(optFns) == 0 {
			t.Fatalf("expected config options")
		}
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		return aws.Config{}, nil
	}

	var capturedBaseEndpoint string
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		var opts s3.Options
		for _, fn := range optFns {
			fn(&opts)
		}
		if opts.BaseEndpoint == nil {
			t.Fatalf("BaseEndpoint not set")
		}
		capturedBaseEndpoint = *opts.BaseEndpoint
		return &s3.Client{}
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		if c == nil {
			t.Fatalf("nil client passed to presign")
		}
		return &s3.PresignClient{}
	}

	pc, err := p.presignClient(context.Background())
	if err != nil {
		t.Fatalf("presignClient err: %v", err)
	}
	if pc == nil {
		t.Fatalf("nil presign client")
	}
	if capturedBaseEndpoint != "http://127.0.0.1:9000" {
		t.Fatalf("BaseEndpoint mismatch: %q", capturedBaseEndpoint)
	}
}

func Test_presignClient_InitOnce(t *testing.T) {
	restoreHooks(t)
	stubClientConstruction(t)

	loads := 0
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		loads++
		return aws.Config{}, nil
	}

	p := New(testConfig())
	for i := 0; i < 3; i++ {
		if _, err := p.presignClient(context.Background()); err != nil {
			t.Fatalf("presignClient err: %v", err)
		}
	}
	if loads != 1 {
		t.Fatalf("client built %d times, want 1", loads)
	}
}

func Test_presignClient_InitError(t *testing.T) {
	restoreHooks(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("load-fail")
	}

	p := New(testConfig())
	if _, err := p.presignClient(context.Background()); err == nil {
		t.Fatalf("expected init error")
	}
	// The error sticks for later callers too.
	if _, err := p.presignClient(context.Background()); err == nil {
		t.Fatalf("expected cached init error")
	}
}

func TestIssueUpload(t *testing.T) {
	restoreHooks(t)
	stubClientConstruction(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }

	var gotKey, gotContentType string
	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey = *in.Key
		gotContentType = *in.ContentType
		if *in.Bucket != "media" {
			t.Fatalf("bucket mismatch: %q", *in.Bucket)
		}
		return &v4.PresignedHTTPRequest{URL: "https://s3.example/put"}, nil
	}

	p := New(testConfig())
	grant, err := p.IssueUpload(context.Background(), "families/f/babies/b/moments/m/original", "image/jpeg")
	if err != nil {
		t.Fatalf("IssueUpload error: %v", err)
	}

	if gotKey != "families/f/babies/b/moments/m/original" {
		t.Fatalf("key mismatch: %q", gotKey)
	}
	if gotContentType != "image/jpeg" {
		t.Fatalf("content type mismatch: %q", gotContentType)
	}
	if grant.URL != "https://s3.example/put" {
		t.Fatalf("url mismatch: %q", grant.URL)
	}
	if grant.RequiredHeaders["Content-Type"] != "image/jpeg" {
		t.Fatalf("required headers mismatch: %+v", grant.RequiredHeaders)
	}
	if !grant.ExpiresAt.Equal(now.Add(15 * time.Minute)) {
		t.Fatalf("expiry mismatch: %v", grant.ExpiresAt)
	}
}

func TestIssueRead(t *testing.T) {
	restoreHooks(t)
	stubClientConstruction(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }

	var gotKey string
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		gotKey = *in.Key
		return &v4.PresignedHTTPRequest{URL: "https://s3.example/get"}, nil
	}

	p := New(testConfig())
	grant, err := p.IssueRead(context.Background(), "families/f/babies/b/moments/m/original")
	if err != nil {
		t.Fatalf("IssueRead error: %v", err)
	}

	if gotKey != "families/f/babies/b/moments/m/original" {
		t.Fatalf("key mismatch: %q", gotKey)
	}
	if grant.URL != "https://s3.example/get" {
		t.Fatalf("url mismatch: %q", grant.URL)
	}
	if !grant.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expiry mismatch: %v", grant.ExpiresAt)
	}
}

func TestIssue_SignerErrorsPropagate(t *testing.T) {
	restoreHooks(t)
	stubClientConstruction(t)

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("sign-fail")
	}

	p := New(testConfig())
	if _, err := p.IssueUpload(context.Background(), "k", "image/jpeg"); err == nil {
		t.Fatalf("expected upload error")
	}
	if _, err := p.IssueRead(context.Background(), "k"); err == nil {
		t.Fatalf("expected read error")
	}
}
