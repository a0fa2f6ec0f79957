package generate

import (
	"fmt"

	"beblang/ast"
	"beblang/common"
	"beblang/depm"
	"beblang/report"
	"beblang/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	lltypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genExpr generates an expression and returns its value.
func (g *Generator) genExpr(expr ast.Expr) value.Value {
	switch v := expr.(type) {
	case *ast.Literal:
		return g.genLiteral(v)
	case *ast.ParenExpr:
		return g.genExpr(v.Inner)
	case *ast.NotExpr:
		return g.block.NewXor(g.genExpr(v.Operand), constant.NewBool(true))
	case *ast.Designator:
		return g.block.NewLoad(convType(g.annots.GetType(v.ID())), g.genAddr(v))
	case *ast.Call:
		val := g.genCall(v)
		if val == nil {
			report.ICE("call to `%s` used as a value", v.Callee.Name)
		}

		return val
	case *ast.Comparison:
		return g.genComparison(v)
	case *ast.SimpleExpr:
		return g.genSimpleExpr(v)
	case *ast.Term:
		return g.genOperandChain(g.genExpr(v.Factors[0]), v.Factors, v.Ops)
	}

	report.ICE("unknown expression node: %T", expr)
	return nil
}

// genAddr generates the address of the storage location named by a designator.
func (g *Generator) genAddr(dsg *ast.Designator) value.Value {
	vi := depm.GetSymbol[*common.VariableInfo](g.annots, dsg.ID())

	ident := g.lookup(vi.Name)
	if !ident.Addressable {
		report.ICE("`%s` is not addressable", vi.Name)
	}

	addr, elemType := ident.Val, ident.Type
	for _, sel := range dsg.Selectors {
		arrType, ok := elemType.(*lltypes.ArrayType)
		if !ok {
			report.ICE("indexing into non-array type %s", elemType)
		}

		addr = g.block.NewGetElementPtr(arrType, addr, zeroInt, g.genExpr(sel))
		elemType = arrType.ElemType
	}

	return addr
}

// genLiteral generates a literal constant.
func (g *Generator) genLiteral(lit *ast.Literal) value.Value {
	switch lit.Type {
	case types.Integer:
		return constant.NewInt(lltypes.I32, lit.IntValue)
	case types.Real:
		return constant.NewFloat(lltypes.Double, lit.RealValue)
	case types.Boolean:
		return constant.NewBool(lit.BoolValue)
	case types.String:
		return g.genStringLit(lit.StrValue)
	}

	report.ICE("invalid literal type: %s", lit.Type)
	return nil
}

// genStringLit returns a pointer to the first character of an interned string
// literal.  Identical literals share a single global.
func (g *Generator) genStringLit(s string) constant.Constant {
	glob, ok := g.strings[s]
	if !ok {
		glob = g.mod.NewGlobalDef(fmt.Sprintf("str.%d", len(g.strings)), constant.NewCharArrayFromString(s+"\x00"))
		glob.Linkage = enum.LinkagePrivate
		glob.UnnamedAddr = enum.UnnamedAddrUnnamedAddr
		glob.Immutable = true

		g.strings[s] = glob
	}

	return constant.NewGetElementPtr(glob.ContentType, glob, zeroInt, zeroInt)
}

// nonNullString returns the given string or the empty string if it is null.
// Unassigned STRING variables hold null.
func (g *Generator) nonNullString(s value.Value) value.Value {
	if _, ok := s.(*constant.ExprGetElementPtr); ok {
		// string literals are never null
		return s
	}

	isNull := g.block.NewICmp(enum.IPredEQ, s, constant.NewNull(lltypes.I8Ptr))
	return g.block.NewSelect(isNull, g.genStringLit(""), s)
}

// -----------------------------------------------------------------------------

// genSimpleExpr generates an additive chain.
func (g *Generator) genSimpleExpr(se *ast.SimpleExpr) value.Value {
	first := g.genExpr(se.Terms[0])

	if se.Negate {
		if types.Equals(g.annots.GetType(se.Terms[0].ID()), types.Real) {
			first = g.block.NewFNeg(first)
		} else {
			first = g.block.NewSub(zeroInt, first)
		}
	}

	return g.genOperandChain(first, se.Terms, se.Ops)
}

// genOperandChain folds a chain of operands joined by binary operators from
// left to right.  The first operand has already been generated.
func (g *Generator) genOperandChain(first value.Value, operands []ast.Expr, ops []ast.Operator) value.Value {
	dt := g.annots.GetType(operands[0].ID())

	result := first
	for i, op := range ops {
		result = g.genBinaryOp(op, dt, result, g.genExpr(operands[i+1]))
	}

	return result
}

// genBinaryOp generates an arithmetic or logical operator applied to two
// operands of the given type.
func (g *Generator) genBinaryOp(op ast.Operator, dt types.DataType, lhs, rhs value.Value) value.Value {
	switch dt {
	case types.Integer:
		switch op {
		case ast.OpAdd:
			return g.block.NewAdd(lhs, rhs)
		case ast.OpSub:
			return g.block.NewSub(lhs, rhs)
		case ast.OpMul:
			return g.block.NewMul(lhs, rhs)
		case ast.OpDiv:
			return g.block.NewSDiv(lhs, rhs)
		case ast.OpMod:
			return g.block.NewSRem(lhs, rhs)
		}
	case types.Real:
		switch op {
		case ast.OpAdd:
			return g.block.NewFAdd(lhs, rhs)
		case ast.OpSub:
			return g.block.NewFSub(lhs, rhs)
		case ast.OpMul:
			return g.block.NewFMul(lhs, rhs)
		case ast.OpDiv:
			return g.block.NewFDiv(lhs, rhs)
		case ast.OpMod:
			return g.block.NewFRem(lhs, rhs)
		}
	case types.Boolean:
		switch op {
		case ast.OpOr:
			return g.block.NewOr(lhs, rhs)
		case ast.OpAnd:
			return g.block.NewAnd(lhs, rhs)
		}
	}

	report.ICE("operator `%s` is not defined for %s", op, types.Repr(dt))
	return nil
}

// -----------------------------------------------------------------------------

var intPredicates = map[ast.Operator]enum.IPred{
	ast.OpEq:   enum.IPredEQ,
	ast.OpNeq:  enum.IPredNE,
	ast.OpLt:   enum.IPredSLT,
	ast.OpLtEq: enum.IPredSLE,
	ast.OpGt:   enum.IPredSGT,
	ast.OpGtEq: enum.IPredSGE,
}

var floatPredicates = map[ast.Operator]enum.FPred{
	ast.OpEq:   enum.FPredOEQ,
	ast.OpNeq:  enum.FPredONE,
	ast.OpLt:   enum.FPredOLT,
	ast.OpLtEq: enum.FPredOLE,
	ast.OpGt:   enum.FPredOGT,
	ast.OpGtEq: enum.FPredOGE,
}

// genComparison generates a relational expression.
func (g *Generator) genComparison(cmp *ast.Comparison) value.Value {
	dt := g.annots.GetType(cmp.Left.ID())
	lhs := g.genExpr(cmp.Left)
	rhs := g.genExpr(cmp.Right)

	switch dt {
	case types.Integer:
		return g.block.NewICmp(intPredicates[cmp.Op], lhs, rhs)
	case types.Real:
		return g.block.NewFCmp(floatPredicates[cmp.Op], lhs, rhs)
	}

	// Everything else only supports equality.
	switch cmp.Op {
	case ast.OpEq:
		return g.genEquals(dt, lhs, rhs)
	case ast.OpNeq:
		return g.block.NewXor(g.genEquals(dt, lhs, rhs), constant.NewBool(true))
	}

	report.ICE("operator `%s` is not defined for %s", cmp.Op, types.Repr(dt))
	return nil
}

// genEquals generates an equality test between two values of the same type.
// Strings are compared by content and arrays element by element.
func (g *Generator) genEquals(dt types.DataType, lhs, rhs value.Value) value.Value {
	switch v := dt.(type) {
	case types.PrimitiveType:
		switch v {
		case types.Integer, types.Boolean:
			return g.block.NewICmp(enum.IPredEQ, lhs, rhs)
		case types.Real:
			return g.block.NewFCmp(enum.FPredOEQ, lhs, rhs)
		case types.String:
			result := g.block.NewCall(g.runtimeFunc("strcmp"), g.nonNullString(lhs), g.nonNullString(rhs))
			return g.block.NewICmp(enum.IPredEQ, result, zeroInt)
		}
	case *types.ArrayType:
		var result value.Value
		for i := 0; i < v.Size; i++ {
			elemEq := g.genEquals(
				v.ElemType,
				g.block.NewExtractValue(lhs, uint64(i)),
				g.block.NewExtractValue(rhs, uint64(i)),
			)

			if result == nil {
				result = elemEq
			} else {
				result = g.block.NewAnd(result, elemEq)
			}
		}

		return result
	}

	report.ICE("no equality for %s", types.Repr(dt))
	return nil
}

// -----------------------------------------------------------------------------

// genCall generates a subprogram call.  The arguments are evaluated from left to
// right and passed by value.  It returns `nil` for calls to subprograms that
// don't return a value.
func (g *Generator) genCall(call *ast.Call) value.Value {
	sp := depm.GetSymbol[*common.SubprogramInfo](g.annots, call.ID())

	args := make([]value.Value, len(call.Args))
	for i, arg := range call.Args {
		args[i] = g.genExpr(arg)
	}

	if sp.Builtin {
		return g.genBuiltinCall(sp, args)
	}

	llFunc, ok := g.lookup(sp.Name).Val.(*ir.Func)
	if !ok {
		report.ICE("`%s` is not bound to a function", sp.Name)
	}

	result := g.block.NewCall(llFunc, args...)
	if types.Equals(sp.ReturnType, types.Void) {
		return nil
	}

	return result
}
