package media

import (
	"context"
	"fmt"

	"github.com/famvault/media-gateway/internal/common"
	"github.com/famvault/media-gateway/internal/logging"
	sc "github.com/famvault/media-gateway/internal/server/config"
	"github.com/famvault/media-gateway/internal/server/models"
	"github.com/famvault/media-gateway/internal/server/objectkey"
	"github.com/famvault/media-gateway/internal/server/presign"
)

// Authorizer makes the allow/deny decision for a (token, family) pair.
// Satisfied by guard.Guard.
type Authorizer interface {
	Authorize(ctx context.Context, bearerToken, familyID string) (*models.Principal, error)
}

// Signer issues presigned capabilities. Satisfied by presign.Presigner.
type Signer interface {
	IssueUpload(ctx context.Context, key, contentType string) (*presign.UploadGrant, error)
	IssueRead(ctx context.Context, key string) (*presign.ReadGrant, error)
}

// Service orchestrates both presign flows. It is stateless per request;
// a single instance serves concurrent requests without locking.
type Service struct {
	guard  Authorizer
	signer Signer
	logger logging.Logger

	maxPhotoBytes int64
	maxVideoBytes int64
}

func NewService(guard Authorizer, signer Signer, logger logging.Logger, config *sc.Config) *Service {
	return &Service{
		guard:         guard,
		signer:        signer,
		logger:        logger.With("module", "media_service"),
		maxPhotoBytes: config.MaxPhotoBytes,
		maxVideoBytes: config.MaxVideoBytes,
	}
}

// PresignUpload validates the upload intent, authorizes the caller for the
// family, generates the object key and issues a presigned PUT. No storage
// write happens here; the byte transfer runs directly between client and
// object store.
func (s *Service) PresignUpload(ctx context.Context, bearerToken string, req *UploadRequest) (*UploadResponse, error) {
	if err := s.validateUpload(req); err != nil {
		return nil, err
	}

	principal, err := s.guard.Authorize(ctx, bearerToken, req.FamilyID)
	if err != nil {
		return nil, err
	}

	key := objectkey.Generate(req.FamilyID, req.BabyID, req.UploadID)

	grant, err := s.signer.IssueUpload(ctx, key, req.ContentType)
	if err != nil {
		s.logger.Error(ctx, "upload presign failed", "family_id", req.FamilyID, "error", err.Error())
		return nil, fmt.Errorf("%w: presign upload", common.ErrorInternal)
	}

	s.logger.Info(ctx, "issued upload capability",
		"user_id", principal.UserID, "family_id", req.FamilyID, "object_key", key, "media_type", req.MediaType)

	return &UploadResponse{
		ObjectKey:       key,
		SignedPutURL:    grant.URL,
		RequiredHeaders: grant.RequiredHeaders,
		ExpiresAt:       grant.ExpiresAt,
	}, nil
}

// SignedRead authorizes the caller for the family, re-checks that the
// requested key belongs to that family and issues a presigned GET. The key
// check runs even for authorized members: a member of family A must never
// read a key generated for family B, however the key was obtained.
func (s *Service) SignedRead(ctx context.Context, bearerToken string, req *ReadRequest) (*ReadResponse, error) {
	if err := s.validateRead(req); err != nil {
		return nil, err
	}

	principal, err := s.guard.Authorize(ctx, bearerToken, req.FamilyID)
	if err != nil {
		return nil, err
	}

	if !objectkey.Validate(req.ObjectKey, req.FamilyID) {
		s.logger.Warn(ctx, "object key rejected",
			"user_id", principal.UserID, "family_id", req.FamilyID)
		return nil, common.ErrorForbidden
	}

	grant, err := s.signer.IssueRead(ctx, req.ObjectKey)
	if err != nil {
		s.logger.Error(ctx, "read presign failed", "family_id", req.FamilyID, "error", err.Error())
		return nil, fmt.Errorf("%w: presign read", common.ErrorInternal)
	}

	return &ReadResponse{
		SignedGetURL: grant.URL,
		ExpiresAt:    grant.ExpiresAt,
	}, nil
}
