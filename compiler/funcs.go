package compiler

import (
	"tinygo.org/x/go-llvm"
	"tlog.app/go/errors"
)

// InvalidValue is the reserved "don't care" operand value.
const InvalidValue uint32 = 0xFFFFFFFF

// GetFunctionArgument returns parameter idx of fn. If the parameter has no
// name yet and name is not empty, it is named name; an existing name is
// never replaced.
func GetFunctionArgument(fn llvm.Value, idx int, name string) (llvm.Value, error) {
	if fn.IsNil() || fn.IsAFunction().IsNil() {
		return llvm.Value{}, errors.Wrap(ErrContractViolation, "not a function")
	}
	if idx < 0 || idx >= fn.ParamsCount() {
		return llvm.Value{}, errors.Wrap(ErrArgIndex, "%s: index %d, %d params", fn.Name(), idx, fn.ParamsCount())
	}

	arg := fn.Param(idx)
	if name != "" && arg.Name() == "" {
		arg.SetName(name)
	}
	return arg, nil
}

// IsDontCareValue reports whether v is an integer constant whose low 32 bits
// are InvalidValue. Integer constants wider than 64 bits are never don't-care.
func IsDontCareValue(v llvm.Value) bool {
	if v.IsNil() || v.IsAConstantInt().IsNil() {
		return false
	}
	if v.Type().IntTypeWidth() > 64 {
		return false
	}
	return uint32(v.ZExtValue()) == InvalidValue
}
