// internal/app/features/adminauth/login.go
package adminauth

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/normalize"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HandleLogin handles POST /auth/login. Bad credentials always get the
// same 401, whether the email exists or not.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}
	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	if ok, reason := h.Limiter.Check(r, email); !ok {
		httpx.WriteError(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	admin, err := h.Admins.Authenticate(ctx, email, req.Password)
	if err != nil {
		if apperr.IsValidation(err) {
			h.AuditLog.LoginFailed(ctx, r, email, "invalid credentials")
			httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	token, expires, err := h.Tokens.Issue(admin.ID.Hex(), admin.Email, admin.Role)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	h.Limiter.ResetEmail(admin.Email)
	h.AuditLog.LoginSuccess(ctx, r, admin.ID, admin.Email)
	h.Log.Info("admin logged in", zap.String("email", admin.Email))
	httpx.WriteJSON(w, http.StatusOK, loginResponse{Token: token, ExpiresAt: expires})
}
