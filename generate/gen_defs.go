package generate

import (
	"beblang/ast"
	"beblang/common"
	"beblang/depm"
	"beblang/report"
	"beblang/types"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
)

// reservedNames are the global names used by the host runtime and the entry
// point.  User subprograms with these names are prefixed by the module name.
var reservedNames = map[string]struct{}{
	"main":   {},
	"printf": {},
	"scanf":  {},
	"exit":   {},
	"strcmp": {},
}

// genGlobalVars generates the module-level variables of a declaration.  Each
// global is named `Module.name` and zero-initialized.
func (g *Generator) genGlobalVars(vd *ast.VarDecl) {
	for _, vi := range depm.GetSymbols[*common.VariableInfo](g.annots, vd.ID()) {
		llType := convType(vi.Type)

		glob := g.mod.NewGlobalDef(g.moduleName+"."+vi.Name, zeroValue(vi.Type))
		g.bind(vi.Name, irIdent{Val: glob, Type: llType, Addressable: true})
	}
}

// genSubprogramDecl generates the LLVM function for a subprogram declaration
// or definition.  A declaration and its definition share a single function.
func (g *Generator) genSubprogramDecl(def ast.ASTNode) {
	sp := depm.GetSymbol[*common.SubprogramInfo](g.annots, def.ID())

	// Already declared by a forward declaration.
	if _, ok := g.scopes[0][sp.Name]; ok {
		return
	}

	params := make([]*ir.Param, len(sp.Params))
	for i, param := range sp.Params {
		params[i] = ir.NewParam(param.Name, convType(param.Type))
	}

	name := sp.Name
	if _, ok := reservedNames[name]; ok {
		name = g.moduleName + "." + name
	}

	llFunc := g.mod.NewFunc(name, convType(sp.ReturnType), params...)
	g.bind(sp.Name, irIdent{Val: llFunc})
}

// genSubprogramBody generates the body of a subprogram definition.
func (g *Generator) genSubprogramBody(def *ast.Subprogram) {
	sp := depm.GetSymbol[*common.SubprogramInfo](g.annots, def.ID())

	llFunc, ok := g.lookup(sp.Name).Val.(*ir.Func)
	if !ok {
		report.ICE("subprogram `%s` has no function", sp.Name)
	}

	// The declaration's parameter names may differ from the definition's.
	n := 0
	for _, group := range def.Heading.Params {
		for _, pi := range depm.GetSymbols[*common.VariableInfo](g.annots, group.ID()) {
			llFunc.Params[n].SetName(pi.Name)
			n++
		}
	}

	g.enclosingFunc = llFunc
	g.startBlock(newBlock(), "entry")

	g.pushScope()
	defer g.popScope()

	// Parameters are copied into stack slots so they can be assigned to.
	n = 0
	for _, group := range def.Heading.Params {
		for _, pi := range depm.GetSymbols[*common.VariableInfo](g.annots, group.ID()) {
			param := llFunc.Params[n]

			slot := g.block.NewAlloca(param.Type())
			g.block.NewStore(param, slot)
			g.bind(pi.Name, irIdent{Val: slot, Type: param.Type(), Addressable: true})

			n++
		}
	}

	for _, vd := range def.Vars {
		g.genLocalVars(vd)
	}

	g.genStmts(def.Body)

	if g.block.Term == nil {
		if types.Equals(sp.ReturnType, types.Void) {
			g.block.NewRet(nil)
		} else {
			g.block.NewRet(zeroValue(sp.ReturnType))
		}
	}
}

// genLocalVars generates the local variables of a declaration as
// zero-initialized stack slots.
func (g *Generator) genLocalVars(vd *ast.VarDecl) {
	for _, vi := range depm.GetSymbols[*common.VariableInfo](g.annots, vd.ID()) {
		llType := convType(vi.Type)

		slot := g.entryAlloca(llType)
		g.block.NewStore(zeroValue(vi.Type), slot)
		g.bind(vi.Name, irIdent{Val: slot, Type: llType, Addressable: true})
	}
}

// genMain generates the entry point of the program from the module body.
func (g *Generator) genMain(body []ast.Stmt) {
	g.mainFunc = g.mod.NewFunc("main", lltypes.I32)
	g.enclosingFunc = g.mainFunc
	g.startBlock(newBlock(), "entry")

	g.genStmts(body)

	if g.block.Term == nil {
		g.block.NewRet(zeroInt)
	}
}
