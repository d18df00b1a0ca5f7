package fuzzy

import (
	"errors"
)

var (
	ErrInvalidDomain  = errors.New("invalid domain")
	ErrInvalidShape   = errors.New("invalid membership function shape")
	ErrDomainMismatch = errors.New("membership function support outside variable domain")
	ErrInvalidTerm    = errors.New("invalid term set")
)
