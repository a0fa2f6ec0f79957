package common

import (
	"beblang/report"
	"beblang/types"
)

// SymbolInfo represents a semantic symbol: a named module, variable, or
// subprogram.  The set of symbol kinds is closed: the only implementations are
// *ModuleInfo, *VariableInfo, and *SubprogramInfo.
type SymbolInfo interface {
	// SymbolName returns the name of the symbol.
	SymbolName() string

	// Span returns where the symbol was defined.  This is `nil` for built-in
	// symbols.
	Span() *report.TextSpan

	symbolInfo()
}

// ModuleInfo is the symbol of a compiled module.
type ModuleInfo struct {
	Name    string
	DefSpan *report.TextSpan
}

func (mi *ModuleInfo) SymbolName() string { return mi.Name }
func (mi *ModuleInfo) Span() *report.TextSpan { return mi.DefSpan }
func (*ModuleInfo) symbolInfo() {}

// VariableInfo is the symbol of a variable or a subprogram parameter.
type VariableInfo struct {
	Name    string
	DefSpan *report.TextSpan

	// The type of the value stored in the variable.
	Type types.DataType
}

func (vi *VariableInfo) SymbolName() string { return vi.Name }
func (vi *VariableInfo) Span() *report.TextSpan { return vi.DefSpan }
func (*VariableInfo) symbolInfo() {}

// SubprogramInfo is the symbol of a subprogram: a procedure with an optional
// return value.
type SubprogramInfo struct {
	Name    string
	DefSpan *report.TextSpan

	// The ordered parameters of the subprogram.
	Params []*VariableInfo

	// The return type of the subprogram.  This is `types.Void` for
	// subprograms that don't return a value.
	ReturnType types.DataType

	// Whether a body has been attached to the subprogram.  This is false for
	// a subprogram that has only been declared.
	Defined bool

	// Whether the subprogram is built into the runtime.
	Builtin bool
}

func (si *SubprogramInfo) SymbolName() string { return si.Name }
func (si *SubprogramInfo) Span() *report.TextSpan { return si.DefSpan }
func (*SubprogramInfo) symbolInfo() {}

// SetDefined marks a declared subprogram as defined.  A subprogram can only be
// defined once: callers must check `Defined` first.
func (si *SubprogramInfo) SetDefined() {
	if si.Defined {
		report.ICE("subprogram `%s` defined twice", si.Name)
	}

	si.Defined = true
}

// SignatureMatches returns whether the other subprogram has the same parameter
// types and return type as this subprogram.
func (si *SubprogramInfo) SignatureMatches(other *SubprogramInfo) bool {
	if len(si.Params) != len(other.Params) {
		return false
	}

	for i, param := range si.Params {
		if !types.Equals(param.Type, other.Params[i].Type) {
			return false
		}
	}

	return types.Equals(si.ReturnType, other.ReturnType)
}

// KindName returns the name of the kind of the given symbol for use in error
// messages.
func KindName(sym SymbolInfo) string {
	switch sym.(type) {
	case *ModuleInfo:
		return "module"
	case *VariableInfo:
		return "variable"
	case *SubprogramInfo:
		return "subprogram"
	default:
		report.ICE("unknown symbol kind: %T", sym)
		return ""
	}
}
