package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/akount/akount/internal/money"
)

// NewValidator returns a validator with the domain tags registered:
// "currency" accepts supported ISO codes only.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		return money.IsCurrency(fl.Field().String())
	})
	return v
}

// UUIDParam reads a UUID route parameter, answering 400 when malformed.
func UUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		Problem(w, http.StatusBadRequest, "Invalid Identifier", name+" must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}
