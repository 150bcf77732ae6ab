package compiler

import (
	"strings"

	"github.com/thiremani/lgc/types"
	"tinygo.org/x/go-llvm"
	"tlog.app/go/errors"
)

const SEP = "." // separates the base name and each type suffix

// Mangle appends the canonical names of ret and args to name, each after a
// ".". A nil or void ret adds nothing. A single trailing "." on name is
// dropped first, so "foo." and "foo" mangle the same.
func Mangle(name string, ret types.Type, args []types.Type) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimSuffix(name, SEP))
	if ret != nil && ret.Kind() != types.VoidKind {
		sb.WriteString(SEP)
		if err := writeTypeName(&sb, ret); err != nil {
			return "", errors.Wrap(err, "mangle %s: return type", name)
		}
	}
	for i, arg := range args {
		sb.WriteString(SEP)
		if err := writeTypeName(&sb, arg); err != nil {
			return "", errors.Wrap(err, "mangle %s: arg %d", name, i)
		}
	}
	return sb.String(), nil
}

// MangleCall mangles name for a call returning ret (nil for none) with args.
func MangleCall(name string, ret llvm.Type, args []llvm.Value) (string, error) {
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = types.FromLLVM(arg.Type())
	}
	return Mangle(name, types.FromLLVM(ret), argTypes)
}
