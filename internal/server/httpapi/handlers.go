package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/famvault/media-gateway/internal/common"
	"github.com/famvault/media-gateway/internal/server/media"
)

// maxBodyBytes caps inbound JSON payloads. The gateway never receives media
// bytes, only small manifests.
const maxBodyBytes = 1 << 20

// bearerToken extracts the token from the Authorization header. A missing or
// malformed header yields an empty token, which the guard rejects as
// unauthenticated.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, w http.ResponseWriter, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body", common.ErrorInvalidRequest)
	}
	return nil
}

func (s *Server) handlePresignUpload(w http.ResponseWriter, r *http.Request) {
	req := &media.UploadRequest{}
	if err := decodeJSON(r, w, req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.media.PresignUpload(r.Context(), bearerToken(r), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSignedRead(w http.ResponseWriter, r *http.Request) {
	req := &media.ReadRequest{}
	if err := decodeJSON(r, w, req); err != nil {
		writeError(w, err)
		return
	}

	resp, err := s.media.SignedRead(r.Context(), bearerToken(r), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, common.ErrorNotFound)
}
