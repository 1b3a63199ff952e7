package httpapi

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/photovault/internal/common"
)

// maxUploadSize bounds one multipart upload. Originals dominate; 256 MiB
// leaves room for large camera files.
const maxUploadSize = 256 << 20

// blobKey namespaces blob ids per user, mirroring the teacher's
// users/-prefixed object keys.
func blobKey(userID, id string) string {
	return fmt.Sprintf("users/%s/%s", userID, id)
}

// handleUploadFiles accepts a multipart form where each part's field name
// is the blob id and the part body is the encrypted blob.
func (s *Server) handleUploadFiles(w http.ResponseWriter, r *http.Request) {
	sess := userSession(r)
	if sess == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, r, common.ErrValidation)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File) == 0 {
		s.writeError(w, r, common.ErrValidation)
		return
	}

	for id, headers := range r.MultipartForm.File {
		for _, header := range headers {
			file, err := header.Open()
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			data, err := io.ReadAll(file)
			file.Close()
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if err := s.blobs.Put(r.Context(), blobKey(sess.UserID, id), data); err != nil {
				s.writeError(w, r, err)
				return
			}
			s.log.Debug(r.Context(), "blob stored", "id", id, "size", len(data))
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ownerID := ""
	if sess := userSession(r); sess != nil {
		ownerID = sess.UserID
	} else if owner := s.grantedOwner(r, session(r), id); owner != "" {
		ownerID = owner
	} else {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	data, err := s.blobs.Get(r.Context(), blobKey(ownerID, id))
	if err != nil {
		// Logged-in recipients read shared blobs from the owner's
		// namespace.
		if owner := s.grantedOwner(r, session(r), id); owner != "" && owner != ownerID {
			data, err = s.blobs.Get(r.Context(), blobKey(owner, id))
		}
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	sess := userSession(r)
	if sess == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	if err := s.blobs.Delete(r.Context(), blobKey(sess.UserID, chi.URLParam(r, "id"))); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
