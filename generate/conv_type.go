package generate

import (
	"beblang/report"
	"beblang/types"

	"github.com/llir/llvm/ir/constant"
	lltypes "github.com/llir/llvm/ir/types"
)

// zeroInt is the INTEGER constant zero.
var zeroInt = constant.NewInt(lltypes.I32, 0)

// convType converts a Beblang data type into its LLVM type.
func convType(dt types.DataType) lltypes.Type {
	switch v := dt.(type) {
	case types.PrimitiveType:
		switch v {
		case types.Integer:
			return lltypes.I32
		case types.Real:
			return lltypes.Double
		case types.String:
			return lltypes.I8Ptr
		case types.Boolean:
			return lltypes.I1
		case types.Void:
			return lltypes.Void
		}
	case *types.ArrayType:
		return lltypes.NewArray(uint64(v.Size), convType(v.ElemType))
	}

	report.ICE("unable to convert type: %s", types.Repr(dt))
	return nil
}

// zeroValue returns the zero value of a data type: the initial value of all
// variables.
func zeroValue(dt types.DataType) constant.Constant {
	switch v := dt.(type) {
	case types.PrimitiveType:
		switch v {
		case types.Integer:
			return zeroInt
		case types.Real:
			return constant.NewFloat(lltypes.Double, 0)
		case types.String:
			return constant.NewNull(lltypes.I8Ptr)
		case types.Boolean:
			return constant.NewBool(false)
		}
	case *types.ArrayType:
		return constant.NewZeroInitializer(convType(v))
	}

	report.ICE("type %s has no zero value", types.Repr(dt))
	return nil
}
