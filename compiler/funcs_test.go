package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tinygo.org/x/go-llvm"
)

func newTestFunc(t *testing.T, ctx llvm.Context, params ...llvm.Type) (llvm.Module, llvm.Value) {
	t.Helper()
	mod := ctx.NewModule(t.Name())
	fnTy := llvm.FunctionType(ctx.VoidType(), params, false)
	return mod, llvm.AddFunction(mod, "test_fn", fnTy)
}

func TestGetFunctionArgument(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	mod, fn := newTestFunc(t, ctx, ctx.Int32Type(), ctx.FloatType())
	defer mod.Dispose()

	arg, err := GetFunctionArgument(fn, 0, "x")
	require.NoError(t, err)
	assert.Equal(t, fn.Param(0), arg)
	assert.Equal(t, "x", arg.Name())

	// an existing name stays
	arg, err = GetFunctionArgument(fn, 0, "y")
	require.NoError(t, err)
	assert.Equal(t, "x", arg.Name())

	// an empty default leaves the parameter unnamed
	arg, err = GetFunctionArgument(fn, 1, "")
	require.NoError(t, err)
	assert.Equal(t, "", arg.Name())
	assert.Equal(t, ctx.FloatType(), arg.Type())

	arg, err = GetFunctionArgument(fn, 1, "scale")
	require.NoError(t, err)
	assert.Equal(t, "scale", arg.Name())
}

func TestGetFunctionArgumentOutOfRange(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	mod, fn := newTestFunc(t, ctx, ctx.Int32Type(), ctx.Int32Type())
	defer mod.Dispose()

	for _, idx := range []int{2, 3, -1} {
		_, err := GetFunctionArgument(fn, idx, "x")
		assert.ErrorIs(t, err, ErrArgIndex)
		assert.ErrorIs(t, err, ErrContractViolation)
	}

	mod2, noParams := newTestFunc(t, ctx)
	defer mod2.Dispose()
	_, err := GetFunctionArgument(noParams, 0, "")
	assert.ErrorIs(t, err, ErrArgIndex)

	_, err = GetFunctionArgument(llvm.ConstInt(ctx.Int32Type(), 0, false), 0, "")
	assert.ErrorIs(t, err, ErrContractViolation)
}

func TestIsDontCareValue(t *testing.T) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	mod, fn := newTestFunc(t, ctx, ctx.Int32Type())
	defer mod.Dispose()

	tests := []struct {
		name     string
		value    llvm.Value
		expected bool
	}{
		{"i32 all ones", llvm.ConstInt(ctx.Int32Type(), 0xFFFFFFFF, false), true},
		{"i32 zero", llvm.ConstInt(ctx.Int32Type(), 0, false), false},
		{"i32 one", llvm.ConstInt(ctx.Int32Type(), 1, false), false},
		{"i64 low word all ones", llvm.ConstInt(ctx.Int64Type(), 0xFFFFFFFF, false), true},
		{"i64 minus one", llvm.ConstAllOnes(ctx.Int64Type()), true},
		{"i64 high word only", llvm.ConstInt(ctx.Int64Type(), 0xFFFFFFFF00000000, false), false},
		{"i16 all ones", llvm.ConstAllOnes(ctx.Int16Type()), false},
		{"i128 all ones", llvm.ConstAllOnes(ctx.IntType(128)), false},
		{"float", llvm.ConstFloat(ctx.FloatType(), -1), false},
		{"vector", llvm.ConstAllOnes(llvm.VectorType(ctx.Int32Type(), 2)), false},
		{"param", fn.Param(0), false},
		{"nil", llvm.Value{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsDontCareValue(tt.value))
		})
	}
}
