package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/photovault/internal/server/auth"
)

// sessionCookie names the cookie carrying the signed session token.
const sessionCookie = "pv_session"

type contextKey struct{ name string }

var sessionKey = &contextKey{"session"}

// sessionMiddleware resolves the session cookie into a live session and
// stashes it in the request context. Requests without a valid session pass
// through anonymously; handlers decide what that means.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			if id, err := auth.SessionIDFromToken(cookie.Value, s.secret); err == nil {
				if session := s.sessions.Get(id); session != nil {
					r = r.WithContext(context.WithValue(r.Context(), sessionKey, session))
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// session returns the request's session, or nil for anonymous requests.
func session(r *http.Request) *auth.Session {
	s, _ := r.Context().Value(sessionKey).(*auth.Session)
	return s
}

// userSession returns the session only when it belongs to a logged-in user.
func userSession(r *http.Request) *auth.Session {
	s := session(r)
	if s == nil || s.UserID == "" {
		return nil
	}
	return s
}

// openSession creates a session for userID (empty for anonymous) and sets
// the signed cookie on the response.
func (s *Server) openSession(w http.ResponseWriter, userID string) (*auth.Session, error) {
	sess := s.sessions.Create(userID)
	token, err := auth.GenerateToken(sess.ID, s.secret, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.tokenTTL.Seconds()),
	})
	return sess, nil
}
