package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/server/auth"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

type itemResponse struct {
	ID     string `json:"id"`
	Base64 string `json:"base64"`
	Nonce  string `json:"nonce"`
}

type itemRequest struct {
	Base64 string `json:"base64"`
	Nonce  string `json:"nonce"`
}

// grantedOwner resolves which user's namespace the session may read id
// from via a share grant. Returns "" when no grant covers the id.
func (s *Server) grantedOwner(r *http.Request, sess *auth.Session, id string) string {
	if sess == nil {
		return ""
	}
	for _, shareID := range sess.GrantedShares() {
		share, err := s.repos.Shares(s.db).Get(r.Context(), shareID)
		if err != nil {
			continue
		}
		if share.Accessible(id) {
			return share.UserID
		}
	}
	return ""
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	sess := userSession(r)
	if sess == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	ids, err := s.repos.Items(s.db).ListIDs(r.Context(), sess.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, ids)
}

func (s *Server) handleGetItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Own namespace first, then any share grant covering the id.
	if sess := userSession(r); sess != nil {
		item, err := s.repos.Items(s.db).Get(r.Context(), sess.UserID, id)
		if err == nil {
			writeJSON(w, http.StatusOK, itemResponse{ID: item.ID, Base64: item.Base64, Nonce: item.Nonce})
			return
		}
		if !errors.Is(err, common.ErrNotFound) {
			s.writeError(w, r, err)
			return
		}
	}

	if owner := s.grantedOwner(r, session(r), id); owner != "" {
		item, err := s.repos.Items(s.db).Get(r.Context(), owner, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, itemResponse{ID: item.ID, Base64: item.Base64, Nonce: item.Nonce})
		return
	}

	if userSession(r) == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	s.writeError(w, r, common.ErrNotFound)
}

func (s *Server) handlePutItem(w http.ResponseWriter, r *http.Request) {
	sess := userSession(r)
	if sess == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	item := &models.Item{
		ID:     chi.URLParam(r, "id"),
		UserID: sess.UserID,
		Nonce:  req.Nonce,
		Base64: req.Base64,
	}
	if err := s.repos.Items(s.db).Upsert(r.Context(), item); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	sess := userSession(r)
	if sess == nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	if err := s.repos.Items(s.db).Delete(r.Context(), sess.UserID, chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
