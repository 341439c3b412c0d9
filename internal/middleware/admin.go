package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"artloop/internal/config"
	"artloop/internal/utils"

	"github.com/gorilla/sessions"
)

const adminSessionName = "artloop-admin"

// AdminMiddleware gates write operations behind the shared admin secret.
// A request is authorized either by presenting the key in the X-Admin-Key
// header or by carrying an admin session cookie obtained via Login.
type AdminMiddleware struct {
	config config.AdminConfig
	store  sessions.Store
}

// NewAdminMiddleware creates a new admin middleware
func NewAdminMiddleware(cfg config.AdminConfig, store sessions.Store) *AdminMiddleware {
	return &AdminMiddleware{config: cfg, store: store}
}

// VerifyKey checks a presented key against the configured secret. The hashed
// form takes precedence when both are set.
func (m *AdminMiddleware) VerifyKey(key string) bool {
	if key == "" {
		return false
	}
	if m.config.KeyHash != "" {
		ok, err := utils.VerifyKey(key, m.config.KeyHash)
		return err == nil && ok
	}
	if m.config.Key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(m.config.Key)) == 1
}

// RequireAdmin rejects requests that carry neither a valid key nor an admin
// session
func (m *AdminMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.VerifyKey(r.Header.Get("X-Admin-Key")) || m.hasSession(r) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"error":   "unauthorized",
		})
	})
}

// StartSession marks the request's session as admin-authenticated
func (m *AdminMiddleware) StartSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, adminSessionName)
	session.Values["admin"] = true
	session.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 24 hours
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return session.Save(r, w)
}

// EndSession clears the admin session
func (m *AdminMiddleware) EndSession(w http.ResponseWriter, r *http.Request) error {
	session, _ := m.store.Get(r, adminSessionName)
	session.Values = map[interface{}]interface{}{}
	session.Options.MaxAge = -1
	return session.Save(r, w)
}

func (m *AdminMiddleware) hasSession(r *http.Request) bool {
	session, err := m.store.Get(r, adminSessionName)
	if err != nil {
		return false
	}
	admin, ok := session.Values["admin"].(bool)
	return ok && admin
}
