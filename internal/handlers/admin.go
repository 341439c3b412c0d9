package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"artloop/internal/middleware"
)

// AdminHandler manages admin sessions
type AdminHandler struct {
	admin *middleware.AdminMiddleware
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admin *middleware.AdminMiddleware) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// Login handles POST /api/admin/login. Possession of the shared key grants
// an admin session cookie.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.admin.VerifyKey(req.Key) {
		respondError(w, http.StatusUnauthorized, "invalid admin key")
		return
	}

	if err := h.admin.StartSession(w, r); err != nil {
		log.Printf("could not start admin session: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true})
}

// Logout handles POST /api/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.admin.EndSession(w, r); err != nil {
		log.Printf("could not end admin session: %v", err)
	}
	respondJSON(w, http.StatusOK, Response{Success: true})
}
