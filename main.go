package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thiremani/lgc/compiler"
	"github.com/thiremani/lgc/types"
	"nikand.dev/go/cli"
	"tinygo.org/x/go-llvm"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

const CALLER = "caller" // function that hosts the call in emit output

func main() {
	retFlag := cli.NewFlag("ret,r", "", "canonical return type name (empty for void)")

	encodeCmd := &cli.Command{
		Name:        "encode",
		Description: "check canonical type names and show their llvm form",
		Action:      encodeAct,
		Args:        cli.Args{},
	}

	mangleCmd := &cli.Command{
		Name:        "mangle",
		Description: "mangle <base> <argtype>...",
		Action:      mangleAct,
		Args:        cli.Args{},
		Flags:       []*cli.Flag{retFlag},
	}

	emitCmd := &cli.Command{
		Name:        "emit",
		Description: "emit a call to the mangled helper and print the module",
		Action:      emitAct,
		Args:        cli.Args{},
		Flags: []*cli.Flag{
			retFlag,
			cli.NewFlag("attrs,a", "", "comma separated call attributes"),
			cli.NewFlag("verbose,v", false, "log declarations"),
		},
	}

	versionCmd := &cli.Command{
		Name:   "version",
		Action: versionAct,
	}

	app := &cli.Command{
		Name:        "lgcname",
		Description: "lgcname encodes types and mangles helper function names",
		Commands: []*cli.Command{
			encodeCmd,
			mangleCmd,
			emitCmd,
			versionCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func encodeAct(c *cli.Command) error {
	return encodeNames(os.Stdout, c.Args)
}

func mangleAct(c *cli.Command) error {
	return mangleSignature(os.Stdout, c.String("ret"), c.Args)
}

func emitAct(c *cli.Command) error {
	var log *tlog.Logger
	if c.Bool("verbose") {
		log = tlog.DefaultLogger
	}
	return emitModule(os.Stdout, log, c.String("ret"), c.Args, splitAttrs(c.String("attrs")))
}

func versionAct(c *cli.Command) error {
	writeVersion(os.Stdout)
	return nil
}

// encodeNames prints each canonical name with its llvm rendering.
func encodeNames(w io.Writer, names []string) error {
	for _, a := range names {
		t, err := compiler.ParseTypeName(a)
		if err != nil {
			return errors.Wrap(err, "parse %v", a)
		}
		name, err := compiler.TypeName(t)
		if err != nil {
			return errors.Wrap(err, "encode %v", a)
		}
		fmt.Fprintf(w, "%s\t%s\n", name, t.String())
	}
	return nil
}

func mangleSignature(w io.Writer, retName string, argv []string) error {
	base, ret, args, err := signature(retName, argv)
	if err != nil {
		return err
	}
	mangled, err := compiler.Mangle(base, ret, args)
	if err != nil {
		return errors.Wrap(err, "mangle")
	}
	fmt.Fprintln(w, mangled)
	return nil
}

// emitModule builds a module whose caller function forwards its parameters
// to the mangled helper and prints it.
func emitModule(w io.Writer, log *tlog.Logger, retName string, argv, attrs []string) error {
	base, ret, args, err := signature(retName, argv)
	if err != nil {
		return err
	}
	for i, a := range args {
		if a.Kind() == types.VoidKind {
			return errors.New("arg %d: void argument", i)
		}
	}
	mangled, err := compiler.Mangle(base, ret, args)
	if err != nil {
		return errors.Wrap(err, "mangle")
	}

	ctx := llvm.NewContext()
	defer ctx.Dispose()
	mod := ctx.NewModule("lgcname")
	defer mod.Dispose()

	callerTy, err := types.ToLLVM(ctx, types.Func{Ret: types.Void{}, Params: args})
	if err != nil {
		return errors.Wrap(err, "caller type")
	}
	var retTy llvm.Type
	if ret != nil {
		if retTy, err = types.ToLLVM(ctx, ret); err != nil {
			return errors.Wrap(err, "return type")
		}
	}

	fn := llvm.AddFunction(mod, CALLER, callerTy)
	entry := ctx.AddBasicBlock(fn, "entry")
	b := ctx.NewBuilder()
	defer b.Dispose()
	b.SetInsertPointAtEnd(entry)
	retInst := b.CreateRetVoid()

	params := make([]llvm.Value, len(args))
	for i := range args {
		if params[i], err = compiler.GetFunctionArgument(fn, i, fmt.Sprintf("arg%d", i)); err != nil {
			return err
		}
	}

	var opts []compiler.Option
	if log != nil {
		opts = append(opts, compiler.WithLogger(log))
	}
	e := compiler.NewEmitter(mod, opts...)
	defer e.Dispose()

	if _, err := e.EmitCall(mangled, retTy, params, attrs, compiler.Before(retInst)); err != nil {
		return errors.Wrap(err, "emit %v", mangled)
	}

	fmt.Fprint(w, mod.String())
	return nil
}

// signature reads "<base> <argtype>..." from argv and the return type from
// retName, which is empty for void.
func signature(retName string, argv []string) (base string, ret types.Type, args []types.Type, err error) {
	if len(argv) == 0 {
		return "", nil, nil, errors.New("missing base name")
	}
	base = argv[0]

	if retName != "" {
		if ret, err = compiler.ParseTypeName(retName); err != nil {
			return "", nil, nil, errors.Wrap(err, "return type")
		}
	}

	for _, a := range argv[1:] {
		t, err := compiler.ParseTypeName(a)
		if err != nil {
			return "", nil, nil, errors.Wrap(err, "arg %v", a)
		}
		args = append(args, t)
	}
	return base, ret, args, nil
}

func splitAttrs(s string) []string {
	var attrs []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
