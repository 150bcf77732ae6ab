package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/go-llvm"
)

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		name     string
		a        Type
		b        Type
		expected bool
	}{
		{"same int", I32, Int{Width: 32}, true},
		{"int widths", I32, I64, false},
		{"int vs float", I32, F32, false},
		{"opaque ptrs", Ptr{AddrSpace: 1}, Ptr{AddrSpace: 1}, true},
		{"ptr address spaces", Ptr{AddrSpace: 1}, Ptr{AddrSpace: 2}, false},
		{"opaque vs typed ptr", Ptr{}, Ptr{Elem: I8}, false},
		{"arrays", Array{Len: 4, Elem: F32}, Array{Len: 4, Elem: F32}, true},
		{"array lengths", Array{Len: 4, Elem: F32}, Array{Len: 3, Elem: F32}, false},
		{"vectors", Vector{Len: 4, Elem: I8}, Vector{Len: 4, Elem: I8}, true},
		{"struct order", Struct{Elems: []Type{I32, F64}}, Struct{Elems: []Type{F64, I32}}, false},
		{"empty structs", Struct{}, Struct{Elems: []Type{}}, true},
		{"funcs", Func{Ret: I32, Params: []Type{F32}}, Func{Ret: I32, Params: []Type{F32}}, true},
		{"func variadic", Func{Ret: I32}, Func{Ret: I32, Variadic: true}, false},
		{"unsupported", Unsupported{Desc: "label"}, Unsupported{Desc: "token"}, false},
		{"nil vs type", nil, I32, false},
		{"nil vs nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TypeEqual(tt.a, tt.b))
			assert.Equal(t, tt.expected, TypeEqual(tt.b, tt.a))
		})
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{I32, "i32"},
		{F16, "half"},
		{F32, "float"},
		{F64, "double"},
		{Float{Width: 128}, "f128"},
		{Void{}, "void"},
		{Ptr{}, "ptr"},
		{Ptr{AddrSpace: 4}, "ptr addrspace(4)"},
		{Ptr{AddrSpace: 1, Elem: I32}, "i32 addrspace(1)*"},
		{Array{Len: 4, Elem: F32}, "[4 x float]"},
		{Vector{Len: 2, Elem: I64}, "<2 x i64>"},
		{Struct{}, "{}"},
		{Struct{Elems: []Type{I32, F64}}, "{ i32, double }"},
		{Func{Ret: I32, Params: []Type{Ptr{}}, Variadic: true}, "i32 (ptr, ...)"},
		{Func{Ret: Void{}, Variadic: true}, "void (...)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestLLVMRoundTrip(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	tests := []Type{
		Void{},
		I1,
		I32,
		Int{Width: 24},
		F32,
		F64,
		Float{Width: 128},
		Ptr{},
		Ptr{AddrSpace: 5},
		Array{Len: 4, Elem: F32},
		Vector{Len: 4, Elem: I8},
		Struct{Elems: []Type{}},
		Struct{Elems: []Type{I32, Ptr{AddrSpace: 1}, Array{Len: 2, Elem: Vector{Len: 2, Elem: F32}}}},
		Func{Ret: I32, Params: []Type{Ptr{}, I64}, Variadic: true},
	}

	for _, typ := range tests {
		t.Run(typ.String(), func(t *testing.T) {
			lt, err := ToLLVM(ctx, typ)
			require.NoError(t, err)
			back := FromLLVM(lt)
			assert.True(t, TypeEqual(typ, back), "got %v, want %v", back, typ)
		})
	}
}

func TestFromLLVM(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	assert.Nil(t, FromLLVM(llvm.Type{}))
	assert.Equal(t, Ptr{AddrSpace: 3}, FromLLVM(llvm.PointerType(ctx.Int32Type(), 3)))
	assert.Equal(t, Unsupported{Desc: "label"}, FromLLVM(ctx.LabelType()))

	named := ctx.StructCreateNamed("Opaque")
	assert.True(t, TypeEqual(Struct{}, FromLLVM(named)))
}

func TestToLLVMErrors(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()

	for _, typ := range []Type{
		nil,
		Int{},
		Float{Width: 16},
		Vector{Len: 0, Elem: I32},
		Vector{Len: 2, Elem: Struct{}},
		Array{Len: 2, Elem: Unsupported{Desc: "token"}},
		Func{Ret: I32, Params: []Type{Float{Width: 42}}},
	} {
		_, err := ToLLVM(ctx, typ)
		assert.Error(t, err, "%v", typ)
	}
}
