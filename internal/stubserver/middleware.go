package stubserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/storyshare/storyshare/internal/utils"
	"github.com/storyshare/storyshare/models"
)

const msgMissingAuthentication = "Missing authentication"

// auth enforces bearer-token authentication the way the real service does:
// a missing or invalid token yields a 401 envelope with an error message the
// client adapter recognises as an authentication failure.
func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			utils.WriteJSON(w, models.APIResponse{Error: true, Message: msgMissingAuthentication}, http.StatusUnauthorized)
			return
		}

		if _, err := s.parseToken(tokenString); err != nil {
			s.logger.Warn().Err(err).Msg("rejected token")
			utils.WriteJSON(w, models.APIResponse{Error: true, Message: "invalid token signature"}, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
