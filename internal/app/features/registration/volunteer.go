// internal/app/features/registration/volunteer.go
package registration

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/mwsociety/memberhub/internal/app/system/htmlsanitize"
	"github.com/mwsociety/memberhub/internal/app/system/httpx"
	"github.com/mwsociety/memberhub/internal/app/system/normalize"
	"github.com/mwsociety/memberhub/internal/app/system/timeouts"
	"github.com/mwsociety/memberhub/internal/domain/apperr"
	"github.com/mwsociety/memberhub/internal/domain/models"
)

type volunteerRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Skills   string `json:"skills"`
}

// HandleVolunteer handles POST /register/volunteer.
func (h *Handler) HandleVolunteer(w http.ResponseWriter, r *http.Request) {
	var req volunteerRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	v := models.VolunteerAccount{
		FullName: normalize.Name(htmlsanitize.Strip(req.FullName)),
		Email:    normalize.Email(req.Email),
		Phone:    normalize.Phone(req.Phone),
		Skills:   htmlsanitize.Strip(req.Skills),
	}
	if v.FullName == "" {
		httpx.WriteDomainError(w, h.Log, apperr.Validation("full_name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Volunteers.Register(ctx, v)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	h.Log.Info("volunteer registered",
		zap.String("volunteer_id", created.ID.Hex()),
		zap.String("registration_number", created.RegistrationNumber))

	httpx.WriteJSON(w, http.StatusCreated, created)
}
