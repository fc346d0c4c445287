package advisor

import "errors"

var (
	ErrAdvisorUnavailable = errors.New("AI advisor is not configured")
	ErrEmptyQuestion      = errors.New("question is required")
)
