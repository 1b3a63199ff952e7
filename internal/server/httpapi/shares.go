package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/dbx"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

type shareRequest struct {
	ID       string   `json:"id"`
	Password string   `json:"password"`
	Base64   string   `json:"base64"`
	Nonce    string   `json:"nonce"`
	Items    []string `json:"items"`
}

func (s *Server) handlePutShare(w http.ResponseWriter, r *http.Request) {
	sess := userSession(r)
	if sess == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	var req shareRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.ID == "" || req.Password == "" {
		s.writeError(w, r, common.ErrValidation)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// A password change invalidates existing grants; a refresh under the
	// same password keeps recipients connected. Only the owner gets this
	// far with an existing id.
	if existing, err := s.repos.Shares(s.db).Get(r.Context(), req.ID); err == nil {
		if existing.UserID != sess.UserID {
			s.writeError(w, r, common.ErrUnauthorized)
			return
		}
		if bcrypt.CompareHashAndPassword(existing.PasswordHash, []byte(req.Password)) != nil {
			s.sessions.RevokeShare(req.ID)
		}
	}

	share := &models.Share{
		ID:           req.ID,
		UserID:       sess.UserID,
		PasswordHash: hash,
		Nonce:        req.Nonce,
		Base64:       req.Base64,
		ItemIDs:      req.Items,
	}
	err = s.withTx(r.Context(), func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Shares(tx).Upsert(ctx, share)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info(r.Context(), "share upserted", "share_id", req.ID, "items", len(req.Items))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleGetShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	share, err := s.repos.Shares(s.db).Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	sess := session(r)
	owner := userSession(r) != nil && userSession(r).UserID == share.UserID
	if !owner && (sess == nil || !sess.Granted(id)) {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, itemRequest{Base64: share.Base64, Nonce: share.Nonce})
}

func (s *Server) handleDeleteShare(w http.ResponseWriter, r *http.Request) {
	sess := userSession(r)
	if sess == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")

	// Only the owner may revoke recipients.
	share, err := s.repos.Shares(s.db).Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if share.UserID != sess.UserID {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	if err := s.repos.Shares(s.db).Delete(r.Context(), sess.UserID, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.sessions.RevokeShare(id)
	w.WriteHeader(http.StatusOK)
}

type sharePasswordRequest struct {
	Password string `json:"password"`
}

// handleAuthorizeShare checks the share password and grants the session
// access. Anonymous callers get a fresh session cookie with the grant.
func (s *Server) handleAuthorizeShare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req sharePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	share, err := s.repos.Shares(s.db).Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if bcrypt.CompareHashAndPassword(share.PasswordHash, []byte(req.Password)) != nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	sess := session(r)
	if sess == nil {
		if sess, err = s.openSession(w, ""); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	s.sessions.Grant(sess.ID, id)
	s.log.Info(r.Context(), "share authorized", "share_id", id)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleShareAuthorized(w http.ResponseWriter, r *http.Request) {
	sess := session(r)
	if sess == nil || !sess.Granted(chi.URLParam(r, "id")) {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	w.WriteHeader(http.StatusOK)
}
