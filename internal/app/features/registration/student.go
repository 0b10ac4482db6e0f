// internal/app/features/registration/student.go
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

type studentRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Guardian string `json:"guardian"`
	School   string `json:"school"`
}

// HandleStudent handles POST /register/student.
func (h *Handler) HandleStudent(w http.ResponseWriter, r *http.Request) {
	var req studentRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	st := models.Student{
		FullName: normalize.Name(htmlsanitize.Strip(req.FullName)),
		Email:    normalize.Email(req.Email),
		Phone:    normalize.Phone(req.Phone),
		Guardian: normalize.Name(htmlsanitize.Strip(req.Guardian)),
		School:   htmlsanitize.Strip(req.School),
	}
	if st.FullName == "" {
		httpx.WriteDomainError(w, h.Log, apperr.Validation("full_name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Students.Register(ctx, st)
	if err != nil {
		httpx.WriteDomainError(w, h.Log, err)
		return
	}

	h.Log.Info("student registered",
		zap.String("student_id", created.ID.Hex()),
		zap.String("registration_number", created.RegistrationNumber))

	httpx.WriteJSON(w, http.StatusCreated, created)
}
