package compiler

import (
	"strconv"
	"strings"

	"github.com/thiremani/lgc/types"
	"tinygo.org/x/go-llvm"
	"tlog.app/go/errors"
)

// Canonical type name tokens.
const (
	PtrTag    = 'p'
	ArrayTag  = 'a'
	VectorTag = 'v'
	FloatTag  = 'f'
	IntTag    = 'i'
	VoidTag   = 'V'

	StructOpen  = "s["
	StructClose = ']'
	StructSep   = ','
)

// TypeName returns the canonical name of t, e.g. "p1a4f32" for a pointer in
// address space 1 to [4 x float]. The name is deterministic and only meant
// to tell signatures apart within one compilation.
func TypeName(t types.Type) (string, error) {
	var sb strings.Builder
	if err := writeTypeName(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// TypeNameLLVM is TypeName for a toolkit type.
func TypeNameLLVM(t llvm.Type) (string, error) {
	return TypeName(types.FromLLVM(t))
}

func writeTypeName(sb *strings.Builder, t types.Type) error {
	// peel pointer and array wrappers, outermost first
	for {
		if p, ok := t.(types.Ptr); ok {
			sb.WriteByte(PtrTag)
			sb.WriteString(strconv.FormatUint(uint64(p.AddrSpace), 10))
			if p.Opaque() {
				return nil
			}
			t = p.Elem
			continue
		}
		if a, ok := t.(types.Array); ok {
			sb.WriteByte(ArrayTag)
			sb.WriteString(strconv.FormatUint(a.Len, 10))
			t = a.Elem
			continue
		}
		break
	}

	if s, ok := t.(types.Struct); ok {
		sb.WriteString(StructOpen)
		for i, et := range s.Elems {
			if i > 0 {
				sb.WriteByte(StructSep)
			}
			if err := writeTypeName(sb, et); err != nil {
				return errors.Wrap(err, "struct element %d", i)
			}
		}
		sb.WriteByte(StructClose)
		return nil
	}

	if v, ok := t.(types.Vector); ok {
		sb.WriteByte(VectorTag)
		sb.WriteString(strconv.FormatUint(uint64(v.Len), 10))
		t = v.Elem
	}

	switch s := t.(type) {
	case types.Float:
		sb.WriteByte(FloatTag)
		sb.WriteString(strconv.FormatUint(uint64(s.Width), 10))
	case types.Int:
		sb.WriteByte(IntTag)
		sb.WriteString(strconv.FormatUint(uint64(s.Width), 10))
	case types.Void:
		sb.WriteByte(VoidTag)
	case nil:
		return errors.Wrap(ErrUnsupportedType, "nil type")
	default:
		return errors.Wrap(ErrUnsupportedType, "%v", t)
	}
	return nil
}
