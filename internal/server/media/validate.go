package media

import (
	"fmt"

	"github.com/famvault/media-gateway/internal/common"
	"github.com/famvault/media-gateway/internal/server/objectkey"
)

// Content types the gateway will presign, per media kind. The explicit
// allow-list keeps the bucket from hosting arbitrary content via a
// trusted-looking pipeline.
var allowedContentTypes = map[string]map[string]bool{
	MediaTypePhoto: {
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
		"image/heic": true,
		"image/heif": true,
	},
	MediaTypeVideo: {
		"video/mp4":       true,
		"video/quicktime": true,
		"video/webm":      true,
	},
}

func (s *Service) validateUpload(req *UploadRequest) error {
	if req.FamilyID == "" {
		return fmt.Errorf("%w: familyId is required", common.ErrorInvalidRequest)
	}
	if !objectkey.IsSafeSegment(req.FamilyID) {
		return fmt.Errorf("%w: familyId is not a valid identifier", common.ErrorInvalidRequest)
	}
	if req.BabyID == "" {
		return fmt.Errorf("%w: babyId is required", common.ErrorInvalidRequest)
	}
	if !objectkey.IsSafeSegment(req.BabyID) {
		return fmt.Errorf("%w: babyId is not a valid identifier", common.ErrorInvalidRequest)
	}

	allowed, ok := allowedContentTypes[req.MediaType]
	if !ok {
		return fmt.Errorf("%w: mediaType must be %q or %q", common.ErrorInvalidRequest, MediaTypePhoto, MediaTypeVideo)
	}

	if req.ContentType == "" {
		return fmt.Errorf("%w: contentType is required", common.ErrorInvalidRequest)
	}
	if !allowed[req.ContentType] {
		return fmt.Errorf("%w: contentType %q is not allowed for mediaType %q", common.ErrorInvalidRequest, req.ContentType, req.MediaType)
	}

	if req.FileSizeBytes < 0 {
		return fmt.Errorf("%w: fileSizeBytes must not be negative", common.ErrorInvalidRequest)
	}
	if req.FileSizeBytes > 0 {
		ceiling := s.maxPhotoBytes
		if req.MediaType == MediaTypeVideo {
			ceiling = s.maxVideoBytes
		}
		if req.FileSizeBytes > ceiling {
			return fmt.Errorf("%w: fileSizeBytes exceeds the %s limit of %d bytes", common.ErrorInvalidRequest, req.MediaType, ceiling)
		}
	}

	return nil
}

func (s *Service) validateRead(req *ReadRequest) error {
	if req.FamilyID == "" {
		return fmt.Errorf("%w: familyId is required", common.ErrorInvalidRequest)
	}
	if req.ObjectKey == "" {
		return fmt.Errorf("%w: objectKey is required", common.ErrorInvalidRequest)
	}
	return nil
}
