// Package media is the host-agnostic core of the gateway: structural
// validation of inbound payloads and the parse → validate → authorize →
// issue orchestration for both presign flows. Transport adapters stay thin.
package media

import "time"

// Media kinds accepted by the gateway.
const (
	MediaTypePhoto = "photo"
	MediaTypeVideo = "video"
)

// UploadRequest describes a prospective upload. It exists only for the
// request lifetime.
type UploadRequest struct {
	FamilyID         string `json:"familyId"`
	BabyID           string `json:"babyId"`
	ContentType      string `json:"contentType"`
	FileSizeBytes    int64  `json:"fileSizeBytes,omitempty"`
	MediaType        string `json:"mediaType"`
	OriginalFilename string `json:"originalFilename,omitempty"`
	UploadID         string `json:"uploadId,omitempty"`
}

// UploadResponse carries the presigned PUT capability.
type UploadResponse struct {
	ObjectKey       string            `json:"objectKey"`
	SignedPutURL    string            `json:"signedPutUrl"`
	RequiredHeaders map[string]string `json:"requiredHeaders"`
	ExpiresAt       time.Time         `json:"expiresAt"`
}

// ReadRequest references an object key previously generated by the gateway.
type ReadRequest struct {
	FamilyID  string `json:"familyId"`
	ObjectKey string `json:"objectKey"`
}

// ReadResponse carries the presigned GET capability.
type ReadResponse struct {
	SignedGetURL string    `json:"signedGetUrl"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
