package depm

import (
	"beblang/common"
	"beblang/types"
)

// Builtins returns the catalog of built-in runtime subprograms.  These are
// visible in every module without being declared.  A fresh catalog is returned
// on every call so separate compilations never share symbols.
func Builtins() []*common.SubprogramInfo {
	return []*common.SubprogramInfo{
		newBuiltin("PrintInteger", types.Void, types.Integer),
		newBuiltin("PrintReal", types.Void, types.Real),
		newBuiltin("PrintString", types.Void, types.String),
		newBuiltin("PrintLine", types.Void, types.String),
		newBuiltin("ReadInteger", types.Integer),
		newBuiltin("ReadReal", types.Real),
		newBuiltin("IntegerToReal", types.Real, types.Integer),
		newBuiltin("RealToInteger", types.Integer, types.Real),
		newBuiltin("HALT", types.Void, types.Integer),
	}
}

func newBuiltin(name string, rtType types.DataType, paramTypes ...types.DataType) *common.SubprogramInfo {
	params := make([]*common.VariableInfo, len(paramTypes))
	for i, pt := range paramTypes {
		params[i] = &common.VariableInfo{Name: "value", Type: pt}
	}

	return &common.SubprogramInfo{
		Name:       name,
		Params:     params,
		ReturnType: rtType,
		Defined:    true,
		Builtin:    true,
	}
}
