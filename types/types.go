package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	UnsupportedKind Kind = iota
	VoidKind
	IntKind
	FloatKind
	PtrKind
	ArrayKind
	VectorKind
	StructKind
	FuncKind
)

// Type describes the shape of an IR value. Types are plain values and never
// mutated once built; a Struct or Func shares its slices with whoever built it.
type Type interface {
	String() string
	Kind() Kind
}

// Common scalar types.
var (
	I1  Type = Int{Width: 1}
	I8  Type = Int{Width: 8}
	I16 Type = Int{Width: 16}
	I32 Type = Int{Width: 32}
	I64 Type = Int{Width: 64}
	F16 Type = Float{Width: 16}
	F32 Type = Float{Width: 32}
	F64 Type = Float{Width: 64}
)

type Void struct{}

func (Void) Kind() Kind     { return VoidKind }
func (Void) String() string { return "void" }

// Int represents an integer type with a given bit width.
type Int struct {
	Width uint32
}

func (i Int) String() string {
	return fmt.Sprintf("i%d", i.Width)
}

func (i Int) Kind() Kind {
	return IntKind
}

// Float represents a floating-point type with a given bit width.
type Float struct {
	Width uint32 // 16, 32, 64, 80 or 128
}

func (f Float) String() string {
	switch f.Width {
	case 16:
		return "half"
	case 32:
		return "float"
	case 64:
		return "double"
	default:
		return fmt.Sprintf("f%d", f.Width)
	}
}

func (f Float) Kind() Kind {
	return FloatKind
}

// Ptr is a pointer into the memory region named by AddrSpace. Elem is nil for
// opaque pointers, which is all modern LLVM hands out.
type Ptr struct {
	AddrSpace uint32
	Elem      Type
}

func (p Ptr) String() string {
	as := ""
	if p.AddrSpace != 0 {
		as = fmt.Sprintf(" addrspace(%d)", p.AddrSpace)
	}
	if p.Elem == nil {
		return "ptr" + as
	}
	return p.Elem.String() + as + "*"
}

func (p Ptr) Kind() Kind {
	return PtrKind
}

func (p Ptr) Opaque() bool {
	return p.Elem == nil
}

type Array struct {
	Len  uint64
	Elem Type
}

func (a Array) String() string {
	return fmt.Sprintf("[%d x %s]", a.Len, a.Elem.String())
}

func (a Array) Kind() Kind { return ArrayKind }

// Vector is a fixed-length vector. Elem is a scalar for every vector that can
// be encoded or bitcast.
type Vector struct {
	Len  uint32
	Elem Type
}

func (v Vector) String() string {
	return fmt.Sprintf("<%d x %s>", v.Len, v.Elem.String())
}

func (v Vector) Kind() Kind { return VectorKind }

// Struct is a literal struct. Element order is part of its identity.
type Struct struct {
	Elems []Type
}

func (s Struct) String() string {
	if len(s.Elems) == 0 {
		return "{}"
	}
	return "{ " + typesStr(s.Elems) + " }"
}

func (s Struct) Kind() Kind { return StructKind }

type Func struct {
	Ret      Type
	Params   []Type
	Variadic bool
}

func (f Func) String() string {
	params := typesStr(f.Params)
	if f.Variadic {
		if params != "" {
			params += ", "
		}
		params += "..."
	}
	return fmt.Sprintf("%s (%s)", f.Ret.String(), params)
}

func (f Func) Kind() Kind {
	return FuncKind
}

// Unsupported stands in for toolkit types with no counterpart here (labels,
// tokens, metadata, target extension types).
type Unsupported struct {
	Desc string
}

func (u Unsupported) Kind() Kind     { return UnsupportedKind }
func (u Unsupported) String() string { return u.Desc }

// IsScalar reports whether t is an integer or floating-point type.
func IsScalar(t Type) bool {
	if t == nil {
		return false
	}
	k := t.Kind()
	return k == IntKind || k == FloatKind
}

// ScalarWidth returns the bit width of an integer or floating-point type.
func ScalarWidth(t Type) (uint32, bool) {
	switch s := t.(type) {
	case Int:
		return s.Width, true
	case Float:
		return s.Width, true
	}
	return 0, false
}

func typesStr(types []Type) string {
	if len(types) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// EqualTypes checks if two type lists are pairwise equal.
func EqualTypes(left []Type, right []Type) bool {
	if len(left) != len(right) {
		return false
	}

	for i, l := range left {
		if !TypeEqual(l, right[i]) {
			return false
		}
	}

	return true
}

// TypeEqual performs structural equality on types with a dispatcher by Kind.
// Two nil types are equal; nil never equals a non-nil type.
func TypeEqual(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	cmp := typeComparer(a.Kind())
	return cmp(a, b)
}

func typeComparer(k Kind) func(a, b Type) bool {
	switch k {
	case UnsupportedKind:
		return eqUnsupported
	case VoidKind:
		return eqVoid
	case IntKind:
		return eqInt
	case FloatKind:
		return eqFloat
	case PtrKind:
		return eqPointer
	case ArrayKind:
		return eqArray
	case VectorKind:
		return eqVector
	case StructKind:
		return eqStruct
	case FuncKind:
		return eqFunc
	default:
		return func(a, b Type) bool { panic(fmt.Sprintf("TypeEqual: unhandled kind %v", k)) }
	}
}

func eqUnsupported(a, b Type) bool {
	return a.(Unsupported).Desc == b.(Unsupported).Desc
}

func eqVoid(a, b Type) bool { return true }

func eqInt(a, b Type) bool {
	ai := a.(Int)
	bi := b.(Int)
	return ai.Width == bi.Width
}

func eqFloat(a, b Type) bool {
	af := a.(Float)
	bf := b.(Float)
	return af.Width == bf.Width
}

func eqPointer(a, b Type) bool {
	ap := a.(Ptr)
	bp := b.(Ptr)
	return ap.AddrSpace == bp.AddrSpace && TypeEqual(ap.Elem, bp.Elem)
}

func eqArray(a, b Type) bool {
	aa := a.(Array)
	ba := b.(Array)
	return aa.Len == ba.Len && TypeEqual(aa.Elem, ba.Elem)
}

func eqVector(a, b Type) bool {
	av := a.(Vector)
	bv := b.(Vector)
	return av.Len == bv.Len && TypeEqual(av.Elem, bv.Elem)
}

func eqStruct(a, b Type) bool {
	return EqualTypes(a.(Struct).Elems, b.(Struct).Elems)
}

func eqFunc(a, b Type) bool {
	af := a.(Func)
	bf := b.(Func)
	if af.Variadic != bf.Variadic {
		return false
	}
	if !TypeEqual(af.Ret, bf.Ret) {
		return false
	}
	return EqualTypes(af.Params, bf.Params)
}
