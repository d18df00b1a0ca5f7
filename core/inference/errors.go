package inference

import (
	"errors"
)

var (
	ErrMissingInput = errors.New("missing input value")
	ErrNoRuleFired  = errors.New("no rule fired")
)
