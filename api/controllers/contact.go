package controllers

import (
	"net/http"

	"github.com/gruppopolinex/polinex-backend/api/responses"
	"github.com/gruppopolinex/polinex-backend/api/validators"
	"github.com/gruppopolinex/polinex-backend/internal/contact"
	pkgerrors "github.com/gruppopolinex/polinex-backend/pkg/errors"
	"github.com/gruppopolinex/polinex-backend/pkg/logger"
)

type contactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
	Message string `json:"message" validate:"required,min=10"`
}

// ContactSubmit stores a contact form submission and acknowledges it.
func ContactSubmit(svc contact.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "contact service unavailable"))
			return
		}

		var req contactRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := svc.Submit(r.Context(), contact.Submission{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Company: req.Company,
			Message: req.Message,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"id": id.String()})
	}
}
