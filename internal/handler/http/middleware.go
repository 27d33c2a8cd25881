package handler

import (
	"context"
	"net/http"

	"github.com/rookgm/cargolabel/internal/models"
	"github.com/rookgm/cargolabel/internal/service"
)

// sessionKey keys the verified operator session in a request context
type sessionKey struct{}

// authCookieName is the cookie carrying the operator session token
const authCookieName = "auth_token"

// AuthMiddleware admits requests carrying a valid operator session cookie.
// The verified session is available to handlers through operatorSession.
func AuthMiddleware(ts service.TokenService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(authCookieName)
			if err != nil || cookie.Value == "" {
				http.Error(w, "operator session required", http.StatusUnauthorized)
				return
			}

			session, err := ts.VerifyToken(cookie.Value)
			if err != nil {
				http.Error(w, "operator session is invalid or expired", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withOperatorSession(r.Context(), session)))
		})
	}
}

func withOperatorSession(ctx context.Context, session *models.TokenPayload) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// operatorSession returns the session of the operator making the request
func operatorSession(ctx context.Context) (*models.TokenPayload, bool) {
	session, ok := ctx.Value(sessionKey{}).(*models.TokenPayload)
	return session, ok && session != nil
}
