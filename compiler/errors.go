package compiler

import "tlog.app/go/errors"

// ErrContractViolation marks a caller bug or an IR shape these helpers do not
// handle. Every error returned by this package wraps it, so one errors.Is
// check separates it from ordinary control flow.
var ErrContractViolation = errors.New("contract violation")

var (
	ErrUnsupportedType   = errors.Wrap(ErrContractViolation, "unsupported type")
	ErrEmptyName         = errors.Wrap(ErrContractViolation, "empty name")
	ErrArgIndex          = errors.Wrap(ErrContractViolation, "out of range function argument")
	ErrSignatureMismatch = errors.Wrap(ErrContractViolation, "function redeclared with a different signature")
	ErrUnknownAttribute  = errors.Wrap(ErrContractViolation, "unknown attribute")
	ErrInsertPoint       = errors.Wrap(ErrContractViolation, "invalid insert point")
	ErrBadTypeName       = errors.Wrap(ErrContractViolation, "malformed type name")
)
