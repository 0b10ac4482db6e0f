// internal/app/features/registration/member.go
package registration

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/htmlsanitize"
	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/inputval"
	"github.com/mwsociety/memberhub/internal/app/system/normalize"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

type memberRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Address  string `json:"address"`
}

// HandleMember handles POST /register/member.
func (h *Handler) HandleMember(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	m := models.Member{
		FullName: normalize.Name(htmlsanitize.Strip(req.FullName)),
		Email:    normalize.Email(req.Email),
		Phone:    normalize.Phone(req.Phone),
		City:     htmlsanitize.Strip(req.City),
		Address:  htmlsanitize.Strip(req.Address),
	}
	if m.FullName == "" {
		httpx.WriteDomainError(w, h.Log, apperr.Validation("full_name is required"))
		return
	}
	if !inputval.IsValidEmail(m.Email) {
		httpx.WriteDomainError(w, h.Log, apperr.Validation("a valid email is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Members.Register(ctx, m)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	h.Log.Info("member registered",
		zap.String("member_id", created.ID.Hex()),
		zap.String("membership_number", created.MembershipNumber))

	httpx.WriteJSON(w, http.StatusCreated, created)
}
