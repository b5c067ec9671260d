package services

import (
	"github.com/cplatt-iso/axiom-admin/internal/rules"
)

// ValidationError carries the accumulated field errors of a rejected
// payload. Handlers map it to a 422 response.
type ValidationError struct {
	Result rules.Result
}

func (e *ValidationError) Error() string {
	return "payload failed validation"
}

// Fields returns the display-path keyed error messages.
func (e *ValidationError) Fields() map[string]string {
	return e.Result.PathErrors()
}
