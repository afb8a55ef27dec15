package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ctxKey string

const userKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// RequireAuth verifies the bearer token and loads the account.
// Deactivated accounts are rejected even with a valid token.
func RequireAuth(jwtSvc *JWT, db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				denied(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			token := strings.TrimPrefix(h, "Bearer ")

			uid, err := jwtSvc.Verify(token)
			if err != nil {
				denied(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			var u User
			if err := db.First(&u, uid).Error; err != nil {
				denied(w, http.StatusUnauthorized, "User not found")
				return
			}
			if !u.IsActive {
				denied(w, http.StatusUnauthorized, "User account is deactivated")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), &u)))
		})
	}
}

// RequireAdmin layers on RequireAuth; the handler is never reached
// for non-admin callers.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := UserFromContext(r.Context())
		if !ok || !u.IsAdmin() {
			denied(w, http.StatusForbidden, "Only admins can access this route")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func denied(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": msg,
	})
}
