package ast

import (
	"beblang/types"
)

// Module is the root of a Beblang syntax tree: a single compilation unit.
type Module struct {
	ASTBase

	// The name of the module.
	Name *Ident

	// The global variable declarations of the module.
	Vars []*VarDecl

	// The subprogram declarations and definitions of the module in the order
	// they occur.  Each entry is either a *SubprogramDecl or a *Subprogram.
	Subprograms []ASTNode

	// The statements of the module body.
	Body []Stmt

	// NodeCount is the total number of nodes in the tree.
	NodeCount int
}

// VarDecl is a declaration of one or more variables (or parameters) of the
// same type: eg. `x, y: INTEGER`.
type VarDecl struct {
	ASTBase

	Names []*Ident
	Type  types.DataType
}

// SubprogramHeading is the signature of a subprogram.
type SubprogramHeading struct {
	ASTBase

	Name *Ident

	// The parameter groups of the subprogram.
	Params []*VarDecl

	// The declared return type.  This is `types.Void` if no return type was
	// given.
	ReturnType types.DataType
}

// SubprogramDecl is a forward declaration of a subprogram: a heading without
// a body.
type SubprogramDecl struct {
	ASTBase

	Heading *SubprogramHeading
}

// Subprogram is a subprogram definition: a heading with local variables and a
// body.
type Subprogram struct {
	ASTBase

	Heading *SubprogramHeading
	Vars    []*VarDecl
	Body    []Stmt
}
