package compiler

import (
	"github.com/thiremani/lgc/types"
	"tinygo.org/x/go-llvm"
)

// CanBitCast reports whether a value of type a can be reinterpreted as b.
// Apart from identical types, both sides must be integer or float scalars or
// vectors of them with the same total bit width. Integer and float are
// interchangeable: <2 x float> and i64 are compatible.
func CanBitCast(a, b types.Type) bool {
	if a == nil || b == nil {
		return false
	}
	if types.TypeEqual(a, b) {
		return true
	}

	wa, ok := totalBits(a)
	if !ok {
		return false
	}
	wb, ok := totalBits(b)
	if !ok {
		return false
	}
	return wa == wb
}

// CanBitCastLLVM is CanBitCast for toolkit types.
func CanBitCastLLVM(a, b llvm.Type) bool {
	if a.IsNil() || b.IsNil() {
		return false
	}
	if a == b {
		return true
	}
	return CanBitCast(types.FromLLVM(a), types.FromLLVM(b))
}

// totalBits returns component count times scalar width for single-value types.
func totalBits(t types.Type) (uint64, bool) {
	count := uint64(1)
	comp := t
	if v, ok := t.(types.Vector); ok {
		count = uint64(v.Len)
		comp = v.Elem
	}
	w, ok := types.ScalarWidth(comp)
	if !ok {
		return 0, false
	}
	return count * uint64(w), true
}
