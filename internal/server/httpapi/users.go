package httpapi

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/photovault/internal/common"
	"github.com/dmitrijs2005/photovault/internal/server/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		s.writeError(w, r, common.ErrValidation)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user := &models.User{UserName: req.Username, PasswordHash: hash}
	if _, err := s.repos.Users(s.db).Create(r.Context(), user); err != nil {
		s.writeError(w, r, err)
		return
	}

	if _, err := s.openSession(w, user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info(r.Context(), "user registered", "username", req.Username)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.repos.Users(s.db).GetByUserName(r.Context(), req.Username)
	if err != nil {
		// Unknown user and wrong password look identical to the caller.
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		s.writeError(w, r, common.ErrUnauthorized)
		return
	}

	if _, err := s.openSession(w, user.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log.Info(r.Context(), "user logged in", "username", req.Username)
	w.WriteHeader(http.StatusOK)
}
