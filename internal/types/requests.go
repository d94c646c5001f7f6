//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// ResourcesRequest asks for learning resources for the selected skills.
type ResourcesRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,dive,required"`
}

// ProfilesRequest asks for professional profiles for a domain and location.
type ProfilesRequest struct {
	Domain   string `json:"domain" validate:"required"`
	Location string `json:"location" validate:"required"`
}

// ErrorResponse is the body returned with any non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Validate validates the ResourcesRequest using the validator.
func (r *ResourcesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ProfilesRequest using the validator.
func (r *ProfilesRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
