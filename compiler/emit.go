package compiler

import (
	"tinygo.org/x/go-llvm"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// fnAttrIndex addresses function-level attributes on a call site.
const fnAttrIndex = -1

// InsertPoint says where EmitCall places the call: right before an
// instruction, or at the end of a basic block.
type InsertPoint struct {
	mode  insertMode
	inst  llvm.Value
	block llvm.BasicBlock
}

type insertMode int

const (
	noInsert insertMode = iota
	insertBefore
	insertAtEnd
)

func Before(inst llvm.Value) InsertPoint {
	return InsertPoint{mode: insertBefore, inst: inst}
}

func AtEnd(bb llvm.BasicBlock) InsertPoint {
	return InsertPoint{mode: insertAtEnd, block: bb}
}

type Option func(*Emitter)

// WithLogger logs declarations created or reused by the emitter.
func WithLogger(l *tlog.Logger) Option {
	return func(e *Emitter) { e.log = l }
}

// WithCallConv sets the calling convention of new declarations and calls.
func WithCallConv(cc llvm.CallConv) Option {
	return func(e *Emitter) { e.callConv = cc }
}

// WithDefaultAttrs replaces the attributes every new declaration gets.
func WithDefaultAttrs(attrs ...string) Option {
	return func(e *Emitter) { e.defaultAttrs = attrs }
}

// Emitter materializes calls to helper functions in a module, declaring each
// helper the first time it is called.
type Emitter struct {
	Module       llvm.Module
	Context      llvm.Context
	builder      llvm.Builder
	log          *tlog.Logger
	callConv     llvm.CallConv
	defaultAttrs []string

	// declared holds the attributes of declarations made by this emitter.
	declared map[string][]string
}

func NewEmitter(mod llvm.Module, opts ...Option) *Emitter {
	ctx := mod.Context()
	e := &Emitter{
		Module:       mod,
		Context:      ctx,
		builder:      ctx.NewBuilder(),
		callConv:     llvm.CCallConv,
		defaultAttrs: []string{"nounwind"},
		declared:     map[string][]string{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dispose releases the emitter's builder. The module is left alone.
func (e *Emitter) Dispose() {
	e.builder.Dispose()
}

// EmitCall inserts a call to name at the insert point and returns it.
// ret may be nil for a void call. The callee is taken from the module if a
// function of that name and signature exists and declared otherwise. attrs
// are LLVM enum attribute names ("nounwind", "willreturn", ...) and go on a
// new declaration and on the call site. A call to a helper this emitter
// declared earlier also carries the attributes of that declaration.
func (e *Emitter) EmitCall(name string, ret llvm.Type, args []llvm.Value, attrs []string, at InsertPoint) (llvm.Value, error) {
	if err := e.position(at); err != nil {
		return llvm.Value{}, errors.Wrap(err, "call %s", name)
	}

	argTypes := make([]llvm.Type, len(args))
	for i, arg := range args {
		argTypes[i] = arg.Type()
	}
	if ret.IsNil() {
		ret = e.Context.VoidType()
	}

	fnTy, fn, err := e.GetFunc(name, llvm.FunctionType(ret, argTypes, false), attrs)
	if err != nil {
		return llvm.Value{}, err
	}

	call := e.builder.CreateCall(fnTy, fn, args, "")
	call.SetInstructionCallConv(e.callConv)
	for _, attr := range e.enumAttrs(e.defaultAttrs) {
		call.AddCallSiteAttribute(fnAttrIndex, attr)
	}
	// attrs were checked by GetFunc
	for _, attr := range e.enumAttrs(attrs) {
		call.AddCallSiteAttribute(fnAttrIndex, attr)
	}
	for _, attr := range e.enumAttrs(e.declared[name]) {
		call.AddCallSiteAttribute(fnAttrIndex, attr)
	}
	return call, nil
}

// GetFunc returns the function called name with type fnTy, declaring it with
// attrs on top of the emitter's default attributes if the module has none.
func (e *Emitter) GetFunc(name string, fnTy llvm.Type, attrs []string) (llvm.Type, llvm.Value, error) {
	if name == "" {
		return llvm.Type{}, llvm.Value{}, ErrEmptyName
	}
	if err := checkAttrs(e.defaultAttrs); err != nil {
		return llvm.Type{}, llvm.Value{}, errors.Wrap(err, "default attributes")
	}
	if err := checkAttrs(attrs); err != nil {
		return llvm.Type{}, llvm.Value{}, errors.Wrap(err, "declare %s", name)
	}

	fn := e.Module.NamedFunction(name)
	if !fn.IsNil() {
		if have := fn.GlobalValueType(); have != fnTy {
			return llvm.Type{}, llvm.Value{}, errors.Wrap(ErrSignatureMismatch, "%s: have %s, want %s", name, have.String(), fnTy.String())
		}
		if e.log != nil {
			e.log.Printw("reuse declaration", "name", name)
		}
		return fnTy, fn, nil
	}

	fn = llvm.AddFunction(e.Module, name, fnTy)
	fn.SetFunctionCallConv(e.callConv)
	for _, attr := range e.enumAttrs(e.defaultAttrs) {
		fn.AddFunctionAttr(attr)
	}
	for _, attr := range e.enumAttrs(attrs) {
		fn.AddFunctionAttr(attr)
	}
	e.declared[name] = append([]string(nil), attrs...)
	if e.log != nil {
		e.log.Printw("declare function", "name", name, "type", fnTy.String(), "attrs", attrs)
	}
	return fnTy, fn, nil
}

func (e *Emitter) position(at InsertPoint) error {
	switch at.mode {
	case insertBefore:
		if at.inst.IsNil() || at.inst.IsAInstruction().IsNil() {
			return errors.Wrap(ErrInsertPoint, "not an instruction")
		}
		e.builder.SetInsertPointBefore(at.inst)
	case insertAtEnd:
		if at.block.AsValue().IsNil() {
			return errors.Wrap(ErrInsertPoint, "nil block")
		}
		e.builder.SetInsertPointAtEnd(at.block)
	default:
		return ErrInsertPoint
	}
	return nil
}

func (e *Emitter) enumAttrs(names []string) []llvm.Attribute {
	out := make([]llvm.Attribute, 0, len(names))
	for _, n := range names {
		out = append(out, e.Context.CreateEnumAttribute(llvm.AttributeKindID(n), 0))
	}
	return out
}

func checkAttrs(names []string) error {
	for _, n := range names {
		if llvm.AttributeKindID(n) == 0 {
			return errors.Wrap(ErrUnknownAttribute, "%q", n)
		}
	}
	return nil
}
