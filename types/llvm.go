package types

import (
	"tinygo.org/x/go-llvm"
	"tlog.app/go/errors"
)

// FromLLVM describes an LLVM type. Pointers come back opaque since the
// toolkit no longer tracks pointee types. Kinds with no counterpart here
// become Unsupported. A nil type gives nil.
func FromLLVM(t llvm.Type) Type {
	if t.IsNil() {
		return nil
	}

	switch t.TypeKind() {
	case llvm.VoidTypeKind:
		return Void{}
	case llvm.IntegerTypeKind:
		return Int{Width: uint32(t.IntTypeWidth())}
	case llvm.FloatTypeKind:
		return Float{Width: 32}
	case llvm.DoubleTypeKind:
		return Float{Width: 64}
	case llvm.X86_FP80TypeKind:
		return Float{Width: 80}
	case llvm.FP128TypeKind, llvm.PPC_FP128TypeKind:
		return Float{Width: 128}
	case llvm.PointerTypeKind:
		return Ptr{AddrSpace: uint32(t.PointerAddressSpace())}
	case llvm.ArrayTypeKind:
		return Array{Len: uint64(t.ArrayLength()), Elem: FromLLVM(t.ElementType())}
	case llvm.VectorTypeKind:
		return Vector{Len: uint32(t.VectorSize()), Elem: FromLLVM(t.ElementType())}
	case llvm.StructTypeKind:
		// opaque named structs report no elements
		elems := make([]Type, 0, t.StructElementTypesCount())
		for _, et := range t.StructElementTypes() {
			elems = append(elems, FromLLVM(et))
		}
		return Struct{Elems: elems}
	case llvm.FunctionTypeKind:
		params := make([]Type, 0, t.ParamTypesCount())
		for _, pt := range t.ParamTypes() {
			params = append(params, FromLLVM(pt))
		}
		return Func{Ret: FromLLVM(t.ReturnType()), Params: params, Variadic: t.IsFunctionVarArg()}
	}

	// The bindings have no kind constants for the 16-bit float formats.
	switch desc := t.String(); desc {
	case "half", "bfloat":
		return Float{Width: 16}
	default:
		return Unsupported{Desc: desc}
	}
}

// ToLLVM builds the LLVM type for t in ctx. A nil Func return type means void.
// Pointers are always built opaque, so a Ptr's Elem does not survive the trip.
func ToLLVM(ctx llvm.Context, t Type) (llvm.Type, error) {
	switch t := t.(type) {
	case Void:
		return ctx.VoidType(), nil
	case Int:
		if t.Width == 0 {
			return llvm.Type{}, errors.New("zero-width integer")
		}
		return ctx.IntType(int(t.Width)), nil
	case Float:
		switch t.Width {
		case 32:
			return ctx.FloatType(), nil
		case 64:
			return ctx.DoubleType(), nil
		case 80:
			return ctx.X86FP80Type(), nil
		case 128:
			return ctx.FP128Type(), nil
		}
		return llvm.Type{}, errors.New("no llvm float type of width %d", t.Width)
	case Ptr:
		return llvm.PointerType(ctx.Int8Type(), int(t.AddrSpace)), nil
	case Array:
		elem, err := ToLLVM(ctx, t.Elem)
		if err != nil {
			return llvm.Type{}, errors.Wrap(err, "array element")
		}
		return llvm.ArrayType(elem, int(t.Len)), nil
	case Vector:
		if t.Len == 0 {
			return llvm.Type{}, errors.New("zero-length vector")
		}
		if !IsScalar(t.Elem) && (t.Elem == nil || t.Elem.Kind() != PtrKind) {
			return llvm.Type{}, errors.New("bad vector element %v", t.Elem)
		}
		elem, err := ToLLVM(ctx, t.Elem)
		if err != nil {
			return llvm.Type{}, errors.Wrap(err, "vector element")
		}
		return llvm.VectorType(elem, int(t.Len)), nil
	case Struct:
		elems, err := toLLVMList(ctx, t.Elems)
		if err != nil {
			return llvm.Type{}, errors.Wrap(err, "struct")
		}
		return ctx.StructType(elems, false), nil
	case Func:
		ret := ctx.VoidType()
		if t.Ret != nil {
			var err error
			if ret, err = ToLLVM(ctx, t.Ret); err != nil {
				return llvm.Type{}, errors.Wrap(err, "return type")
			}
		}
		params, err := toLLVMList(ctx, t.Params)
		if err != nil {
			return llvm.Type{}, errors.Wrap(err, "params")
		}
		return llvm.FunctionType(ret, params, t.Variadic), nil
	case nil:
		return llvm.Type{}, errors.New("nil type")
	default:
		return llvm.Type{}, errors.New("no llvm type for %v", t)
	}
}

func toLLVMList(ctx llvm.Context, ts []Type) ([]llvm.Type, error) {
	out := make([]llvm.Type, len(ts))
	for i, t := range ts {
		lt, err := ToLLVM(ctx, t)
		if err != nil {
			return nil, errors.Wrap(err, "element %d", i)
		}
		out[i] = lt
	}
	return out, nil
}
