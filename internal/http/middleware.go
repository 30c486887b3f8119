package http

import (
	"net/http"
	"strings"

	"github.com/Old-ch1ld/so-sach-happy-monkey/internal/auth"
)

// RequireSession rejects requests without a valid session token and stores
// the user id on the request context. The token rides in the Authorization
// header, or in a token query parameter for EventSource clients that cannot
// set headers.
func RequireSession(authSvc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = r.URL.Query().Get("token")
			}

			if token == "" {
				http.Error(w, "missing session token", http.StatusUnauthorized)
				return
			}

			userID, err := authSvc.Verify(token)
			if err != nil {
				http.Error(w, "invalid session token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(header[len(prefix):])
}
