package generate

import (
	"fmt"

	"beblang/ast"
	"beblang/depm"
	"beblang/report"

	"github.com/llir/llvm/ir"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// irIdent is an identifier binding used during generation.
type irIdent struct {
	// The value bound to the identifier: a pointer for variables and the
	// function itself for subprograms.
	Val value.Value

	// The LLVM type of the value stored at `Val` if the identifier is
	// addressable.
	Type lltypes.Type

	// Whether the value is a storage location that must be loaded to be used.
	Addressable bool
}

// Generator is responsible for converting an analyzed Beblang module into an
// LLVM IR module.  The module must have passed semantic analysis: any
// inconsistency encountered here is an internal compiler error.
type Generator struct {
	// The annotations produced by the walker for the module.
	annots *depm.Annotations

	// The name of the module being generated.
	moduleName string

	// The LLVM module being generated.
	mod *ir.Module

	// The stack of binding scopes.  The bottom scope holds the globals and
	// subprograms of the module.
	scopes []map[string]irIdent

	// The synthesized entry point containing the module body.
	mainFunc *ir.Func

	// The function enclosing the block being generated.
	enclosingFunc *ir.Func

	// The block currently being generated.
	block *ir.Block

	// The stack of exit blocks of the enclosing loops, innermost last.
	loopExits []*ir.Block

	// The interned string literals by value.
	strings map[string]*ir.Global

	// The host runtime functions that have been declared so far.
	runtime map[string]*ir.Func
}

// Generate converts the given module into LLVM IR.  This generation process is
// assumed to always succeed: any errors here are considered fatal.
func Generate(mod *ast.Module, annots *depm.Annotations) *ir.Module {
	g := &Generator{
		annots:     annots,
		moduleName: mod.Name.Name,
		mod:        ir.NewModule(),
		strings:    make(map[string]*ir.Global),
		runtime:    make(map[string]*ir.Func),
	}

	g.mod.SourceFilename = mod.Name.Name
	g.pushScope()

	for _, vd := range mod.Vars {
		g.genGlobalVars(vd)
	}

	// Declare all subprograms before generating any bodies so that calls may
	// refer to subprograms defined later in the module.
	for _, def := range mod.Subprograms {
		g.genSubprogramDecl(def)
	}

	for _, def := range mod.Subprograms {
		if sp, ok := def.(*ast.Subprogram); ok {
			g.genSubprogramBody(sp)
		}
	}

	g.genMain(mod.Body)

	return g.mod
}

// -----------------------------------------------------------------------------

// pushScope pushes a new binding scope onto the scope stack.
func (g *Generator) pushScope() {
	g.scopes = append(g.scopes, make(map[string]irIdent))
}

// popScope pops a binding scope off of the scope stack.
func (g *Generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

// bind binds a name in the current scope.
func (g *Generator) bind(name string, ident irIdent) {
	g.scopes[len(g.scopes)-1][name] = ident
}

// lookup looks up a binding by name in all visible scopes.
func (g *Generator) lookup(name string) irIdent {
	for i := len(g.scopes) - 1; i > -1; i-- {
		if ident, ok := g.scopes[i][name]; ok {
			return ident
		}
	}

	report.ICE("no binding for `%s`", name)
	return irIdent{}
}

// -----------------------------------------------------------------------------

// newBlock creates a new block which is not yet placed in a function.  Blocks
// are placed when generation moves into them so that blocks appear in the
// function in the order in which they are filled.
func newBlock() *ir.Block {
	return ir.NewBlock("")
}

// startBlock places a block at the end of the enclosing function and positions
// the generator on it.
func (g *Generator) startBlock(block *ir.Block, label string) {
	block.SetName(fmt.Sprintf("%s.%d", label, len(g.enclosingFunc.Blocks)))
	block.Parent = g.enclosingFunc
	g.enclosingFunc.Blocks = append(g.enclosingFunc.Blocks, block)

	g.block = block
}

// branchTo terminates the current block with a branch to the destination unless
// the current block is already terminated.
func (g *Generator) branchTo(dest *ir.Block) {
	if g.block.Term == nil {
		g.block.NewBr(dest)
	}
}

// entryAlloca allocates a stack slot in the entry block of the enclosing
// function.
func (g *Generator) entryAlloca(typ lltypes.Type) *ir.InstAlloca {
	return g.enclosingFunc.Blocks[0].NewAlloca(typ)
}
