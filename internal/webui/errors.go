package webui

import (
	"errors"
	"net/http"

	"github.com/kayz/slidesmith/internal/assemble"
	"github.com/kayz/slidesmith/internal/engine"
	"github.com/kayz/slidesmith/internal/parse"
	"github.com/kayz/slidesmith/internal/template"
	"github.com/kayz/slidesmith/internal/variant"
)

// statusFor maps pipeline errors to HTTP statuses: missing assets are client
// errors, generator misbehavior is an upstream failure.
func statusFor(err error) int {
	var elementMissing *parse.ElementMissingError
	var fieldMissing *parse.FieldMissingError
	var placeholderMissing *assemble.MissingPlaceholderError

	switch {
	case errors.Is(err, variant.ErrNotFound), errors.Is(err, template.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, variant.ErrMalformed):
		return http.StatusUnprocessableEntity
	case errors.Is(err, engine.ErrGenerationFailed),
		errors.Is(err, parse.ErrUnparsable),
		errors.As(err, &elementMissing),
		errors.As(err, &fieldMissing),
		errors.As(err, &placeholderMissing):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
