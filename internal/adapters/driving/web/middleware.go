package web

import (
	"net/http"

	"github.com/lawgic-labs/lawgic/internal/core/domain"
)

// authedHandler is a handler that runs with a resolved user.
type authedHandler func(w http.ResponseWriter, r *http.Request, user *domain.User)

// requireAuth resolves the session cookie to a user before calling next.
func (s *Server) requireAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			writeError(w, domain.ErrUnauthenticated)
			return
		}

		user, err := s.svc.auth.Authenticate(r.Context(), cookie.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		next(w, r, user)
	}
}
