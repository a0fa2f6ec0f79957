package walk

import (
	"beblang/ast"
	"beblang/common"
	"beblang/report"
	"beblang/types"
)

// walkExpr walks an expression and returns its type.  The type is also stored
// as the type annotation of the expression.  If the expression is erroneous,
// the returned error has already been recorded.
func (w *Walker) walkExpr(expr ast.Expr) (types.DataType, error) {
	var (
		dt  types.DataType
		err error
	)

	switch v := expr.(type) {
	case *ast.Literal:
		dt = v.Type
	case *ast.ParenExpr:
		dt, err = w.walkExpr(v.Inner)
	case *ast.NotExpr:
		dt, err = w.walkNot(v)
	case *ast.Designator:
		// Designators annotate themselves.
		return w.walkDesignator(v)
	case *ast.Call:
		// So do calls.
		return w.walkCall(v, false)
	case *ast.Comparison:
		dt, err = w.walkComparison(v)
	case *ast.SimpleExpr:
		dt, err = w.walkSimpleExpr(v)
	case *ast.Term:
		dt, err = w.walkOperandChain(v.Factors, v.Ops)
	default:
		report.ICE("unknown expression node: %T", expr)
	}

	if err != nil {
		return nil, err
	}

	w.annots.AnnotateType(expr.ID(), dt)
	return dt, nil
}

// walkNot walks a boolean negation.
func (w *Walker) walkNot(not *ast.NotExpr) (types.DataType, error) {
	operandType, err := w.walkExpr(not.Operand)
	if err != nil {
		return nil, err
	}

	if !types.Equals(operandType, types.Boolean) {
		return nil, w.recError(
			report.TypeMismatch,
			not.Span(),
			"operator `~` cannot be applied to %s",
			operandType.Repr(),
		)
	}

	return types.Boolean, nil
}

// walkComparison walks a relational expression.
func (w *Walker) walkComparison(cmp *ast.Comparison) (types.DataType, error) {
	lhsType, err := w.walkExpr(cmp.Left)
	if err != nil {
		return nil, err
	}

	rhsType, err := w.walkExpr(cmp.Right)
	if err != nil {
		return nil, err
	}

	if !types.Equals(lhsType, rhsType) {
		return nil, w.recError(
			report.TypeMismatch,
			cmp.Span(),
			"cannot compare %s and %s",
			lhsType.Repr(),
			rhsType.Repr(),
		)
	}

	if cmp.Op.IsOrdering() && !types.IsNumeric(lhsType) {
		return nil, w.recError(
			report.TypeMismatch,
			cmp.Span(),
			"operator `%s` cannot be applied to %s",
			cmp.Op,
			lhsType.Repr(),
		)
	}

	return types.Boolean, nil
}

// walkSimpleExpr walks an additive chain with an optional leading negation.
func (w *Walker) walkSimpleExpr(se *ast.SimpleExpr) (types.DataType, error) {
	if se.Negate {
		firstType, err := w.walkExpr(se.Terms[0])
		if err != nil {
			return nil, err
		}

		if !types.IsNumeric(firstType) {
			return nil, w.recError(
				report.TypeMismatch,
				se.Terms[0].Span(),
				"cannot negate %s",
				firstType.Repr(),
			)
		}

		return w.walkChainTail(firstType, se.Terms, se.Ops)
	}

	return w.walkOperandChain(se.Terms, se.Ops)
}

// walkOperandChain walks a chain of operands joined by binary operators.  All
// operands must have the same type and that type must be accepted by every
// operator in the chain.
func (w *Walker) walkOperandChain(operands []ast.Expr, ops []ast.Operator) (types.DataType, error) {
	firstType, err := w.walkExpr(operands[0])
	if err != nil {
		return nil, err
	}

	return w.walkChainTail(firstType, operands, ops)
}

// walkChainTail walks all but the first operand of an operator chain whose
// first operand has already been walked.
func (w *Walker) walkChainTail(firstType types.DataType, operands []ast.Expr, ops []ast.Operator) (types.DataType, error) {
	for i, op := range ops {
		operand := operands[i+1]

		operandType, err := w.walkExpr(operand)
		if err != nil {
			return nil, err
		}

		if !types.Equals(firstType, operandType) {
			return nil, w.recError(
				report.TypeMismatch,
				operand.Span(),
				"mismatched operand types for operator `%s`: %s and %s",
				op,
				firstType.Repr(),
				operandType.Repr(),
			)
		}

		if !operatorAccepts(op, firstType) {
			return nil, w.recError(
				report.TypeMismatch,
				report.NewSpanOver(operands[i].Span(), operand.Span()),
				"operator `%s` cannot be applied to %s",
				op,
				firstType.Repr(),
			)
		}
	}

	return firstType, nil
}

// operatorAccepts returns whether a binary arithmetic or logical operator can
// be applied to operands of the given type.
func operatorAccepts(op ast.Operator, dt types.DataType) bool {
	if op.IsLogical() {
		return types.Equals(dt, types.Boolean)
	}

	return types.IsNumeric(dt)
}

// -----------------------------------------------------------------------------

// walkDesignator walks a variable reference and its index selectors.  The type
// of a designator is the type remaining after all selectors are applied.
func (w *Walker) walkDesignator(dsg *ast.Designator) (types.DataType, error) {
	sym, err := w.lookup(dsg.Name)
	if err != nil {
		return nil, err
	}

	vi, ok := sym.(*common.VariableInfo)
	if !ok {
		return nil, w.recError(
			report.WrongSymbolKind,
			dsg.Name.Span,
			"`%s` is a %s, not a variable",
			dsg.Name.Name,
			common.KindName(sym),
		)
	}

	w.annots.AnnotateSymbols(dsg.ID(), vi)

	dt := vi.Type
	for _, sel := range dsg.Selectors {
		// A bad index does not change the type being indexed.
		if selType, err := w.walkExpr(sel); err == nil && !types.Equals(selType, types.Integer) {
			w.recError(report.NonIntegerIndex, sel.Span(), "array index must be INTEGER, not %s", selType.Repr())
		}

		at, ok := types.IsArray(dt)
		if !ok {
			return nil, w.recError(
				report.NotAnArray,
				dsg.Span(),
				"cannot index into %s",
				dt.Repr(),
			)
		}

		dt = at.ElemType
	}

	w.annots.AnnotateType(dsg.ID(), dt)
	return dt, nil
}

// walkCall walks a subprogram call.  `discardsResult` indicates whether the call
// is used as a statement: void subprograms may only be called as statements.
func (w *Walker) walkCall(call *ast.Call, discardsResult bool) (types.DataType, error) {
	sym, err := w.lookup(call.Callee)
	if err != nil {
		return nil, err
	}

	sp, ok := sym.(*common.SubprogramInfo)
	if !ok {
		return nil, w.recError(
			report.WrongSymbolKind,
			call.Callee.Span,
			"`%s` is a %s, not a subprogram",
			call.Callee.Name,
			common.KindName(sym),
		)
	}

	w.annots.AnnotateSymbols(call.ID(), sp)

	if len(call.Args) != len(sp.Params) {
		return nil, w.recError(
			report.ArityMismatch,
			call.Span(),
			"`%s` expects %d arguments but got %d",
			sp.Name,
			len(sp.Params),
			len(call.Args),
		)
	}

	for i, arg := range call.Args {
		argType, err := w.walkExpr(arg)
		if err != nil {
			return nil, err
		}

		if paramType := sp.Params[i].Type; !types.Equals(argType, paramType) {
			return nil, w.recError(
				report.TypeMismatch,
				arg.Span(),
				"cannot pass %s as argument %d of `%s`, expected %s",
				argType.Repr(),
				i+1,
				sp.Name,
				paramType.Repr(),
			)
		}
	}

	if !discardsResult && types.Equals(sp.ReturnType, types.Void) {
		return nil, w.recError(
			report.TypeMismatch,
			call.Span(),
			"subprogram `%s` does not return a value",
			sp.Name,
		)
	}

	w.annots.AnnotateType(call.ID(), sp.ReturnType)
	return sp.ReturnType, nil
}
