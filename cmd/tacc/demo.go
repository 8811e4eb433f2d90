package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tacc/internal/ctype"
	"tacc/internal/driver"
	"tacc/internal/observ"
	"tacc/internal/symbols"
	"tacc/internal/tac"
	"tacc/internal/target"
)

var demoCmd = &cobra.Command{
	Use:   "demo [flags]",
	Short: "Build and print a sample TAC stream",
	Long: "Translate a small canned function through the public factories and dump " +
		"the resulting stream; with --out, also write it as a .tac artifact.",
	Args: cobra.NoArgs,
	RunE: demoExecution,
}

func init() {
	demoCmd.Flags().String("out", "", "write the stream as an artifact to this path")
	demoCmd.Flags().String("target", "", "TOML target profile (default: lp64)")
}

func demoExecution(cmd *cobra.Command, args []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	targetPath, err := cmd.Flags().GetString("target")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}

	mach := target.Default()
	if targetPath != "" {
		if mach, err = target.Load(targetPath); err != nil {
			return err
		}
	}

	m, err := demoModule(mach)
	if err != nil {
		return err
	}
	if err := tac.DumpModule(os.Stdout, m); err != nil {
		return err
	}

	if outPath != "" {
		timer := observ.NewTimer()
		if err := driver.WriteArtifact(cmd.Context(), outPath, m, jobs, timer); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nwrote %s\n", outPath)
		if showTimings {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	}
	return nil
}

// demoModule translates, by hand, the moral equivalent of
//
//	int sum(int *p, int n) {
//	    int acc = 0;
//	    for (int i = 0; i < n; ++i)
//	        acc = acc + p[i*4];   // fixed stride shown as a byte offset
//	    *p = acc;
//	    return f(acc);
//	}
//
// exercising every factory the translator would use.
func demoModule(mach target.Desc) (*tac.Module, error) {
	in := ctype.NewInterner()
	ints := in.Builtins().Int
	intPtr := in.Intern(ctype.MakePointer(ints))
	fnType := in.Intern(ctype.Type{Kind: ctype.KindFunc})

	b := tac.NewBuilder("sum", in, mach)

	p := b.NewVar(symbols.NewNamed("p", intPtr))
	n := b.NewVar(symbols.NewNamed("n", ints))
	acc := b.NewVar(symbols.NewFrame(-4, ints))
	i := b.NewVar(symbols.NewFrame(-8, ints))
	f := b.NewVar(symbols.NewNamed("f", fnType))

	head := tac.NewLabel()
	done := tac.NewLabel()

	b.EmitAssign(acc, tac.Zero())
	b.EmitAssign(i, tac.Zero())

	b.Place(head)
	cond := b.NewTemp(ints)
	b.EmitBinary(tac.Less, cond, i, n)
	b.EmitIfFalse(cond, done)

	elem := b.NewTemp(ints)
	b.EmitSrcSSAssign(elem, p, 4)
	next := b.NewTemp(ints)
	b.EmitBinary(tac.Add, next, acc, elem)
	b.EmitAssign(acc, next)

	inc := b.NewTemp(ints)
	b.EmitUnary(tac.PreInc, inc, i)
	b.EmitJump(head)

	b.Place(done)
	b.EmitDerefAssign(p, acc)
	b.EmitParam(acc)
	res := b.NewTemp(ints)
	b.EmitCall(res, f, 1)

	fn, err := b.Finish()
	if err != nil {
		return nil, err
	}
	return &tac.Module{Name: "demo.c", Funcs: []*tac.Func{fn}}, nil
}
