package generate

import (
	"beblang/common"
	"beblang/report"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genBuiltinCall lowers a call to a built-in subprogram onto the host runtime.
// The arguments have already been generated.
func (g *Generator) genBuiltinCall(sp *common.SubprogramInfo, args []value.Value) value.Value {
	switch sp.Name {
	case "PrintInteger":
		g.genPrintf("%d", args[0])
	case "PrintReal":
		g.genPrintf("%f", args[0])
	case "PrintString":
		g.genPrintf("%s", args[0])
	case "PrintLine":
		g.genPrintf("%s\n", args[0])
	case "ReadInteger":
		return g.genScanf("%d", lltypes.I32)
	case "ReadReal":
		return g.genScanf("%lf", lltypes.Double)
	case "IntegerToReal":
		return g.block.NewSIToFP(args[0], lltypes.Double)
	case "RealToInteger":
		return g.block.NewFPToSI(args[0], lltypes.I32)
	case "HALT":
		g.block.NewCall(g.runtimeFunc("exit"), args[0])

		// Nothing after a halt is reachable.
		g.block.NewUnreachable()
	default:
		report.ICE("unknown built-in subprogram: `%s`", sp.Name)
	}

	return nil
}

// genPrintf generates a call to `printf` with the given format and value.
func (g *Generator) genPrintf(format string, val value.Value) {
	g.block.NewCall(g.runtimeFunc("printf"), g.genStringLit(format), val)
}

// genScanf generates a call to `scanf` which reads a single value of the given
// type and returns the value read.
func (g *Generator) genScanf(format string, typ lltypes.Type) value.Value {
	slot := g.entryAlloca(typ)
	g.block.NewCall(g.runtimeFunc("scanf"), g.genStringLit(format), slot)

	return g.block.NewLoad(typ, slot)
}

// runtimeFunc returns the declaration of a host runtime function, declaring it
// in the module the first time it is used.
func (g *Generator) runtimeFunc(name string) *ir.Func {
	if llFunc, ok := g.runtime[name]; ok {
		return llFunc
	}

	var llFunc *ir.Func
	switch name {
	case "printf", "scanf":
		llFunc = g.mod.NewFunc(name, lltypes.I32, ir.NewParam("format", lltypes.I8Ptr))
		llFunc.Sig.Variadic = true
	case "exit":
		llFunc = g.mod.NewFunc(name, lltypes.Void, ir.NewParam("code", lltypes.I32))
	case "strcmp":
		llFunc = g.mod.NewFunc(name, lltypes.I32, ir.NewParam("a", lltypes.I8Ptr), ir.NewParam("b", lltypes.I8Ptr))
	default:
		report.ICE("unknown runtime function: `%s`", name)
	}

	g.runtime[name] = llFunc
	return llFunc
}
