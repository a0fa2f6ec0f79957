package types

import (
	"fmt"

	"beblang/report"
)

// DataType represents a Beblang data type.  Data types are immutable values:
// two data types are equal if their full structural description matches.
type DataType interface {
	// Returns whether this type is structurally equal to the other type.
	equals(other DataType) bool

	// Returns the representative string for this type.
	Repr() string
}

// -----------------------------------------------------------------------------

// PrimitiveType represents a primitive type.  This must be one of the enumerated
// primitive type values below.
type PrimitiveType int

// Enumeration of the different primitive types.
const (
	Integer PrimitiveType = iota
	Real
	String
	Boolean
	Void
)

func (pt PrimitiveType) equals(other DataType) bool {
	if opt, ok := other.(PrimitiveType); ok {
		return pt == opt
	}

	return false
}

func (pt PrimitiveType) Repr() string {
	switch pt {
	case Integer:
		return "INTEGER"
	case Real:
		return "REAL"
	case String:
		return "STRING"
	case Boolean:
		return "BOOLEAN"
	default:
		return "VOID"
	}
}

func (pt PrimitiveType) String() string {
	return pt.Repr()
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed-size array type.  Arrays may nest.
type ArrayType struct {
	// The type of the elements of the array.  This is never `Void`.
	ElemType DataType

	// The number of elements in the array.
	Size int
}

// NewArray creates a new array type.  Passing `Void` as the element type is an
// internal compiler error.
func NewArray(elemType DataType, size int) *ArrayType {
	if Equals(elemType, Void) {
		report.ICE("array element type cannot be VOID")
	}

	return &ArrayType{ElemType: elemType, Size: size}
}

func (at *ArrayType) equals(other DataType) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Size == oat.Size && Equals(at.ElemType, oat.ElemType)
	}

	return false
}

func (at *ArrayType) Repr() string {
	return fmt.Sprintf("ARRAY %d OF %s", at.Size, at.ElemType.Repr())
}

func (at *ArrayType) String() string {
	return at.Repr()
}

// -----------------------------------------------------------------------------

// Equals returns whether two types are structurally equal.  A `nil` type is
// only equal to another `nil` type.
func Equals(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return a.equals(b)
}

// IsArray returns the array type if the given type is an array.
func IsArray(t DataType) (*ArrayType, bool) {
	at, ok := t.(*ArrayType)
	return at, ok
}

// IsNumeric returns whether the given type is a numeric type: INTEGER or REAL.
func IsNumeric(t DataType) bool {
	return Equals(t, Integer) || Equals(t, Real)
}

// Repr returns the representative string for a type, including `nil`.
func Repr(t DataType) string {
	if t == nil {
		return "<unknown>"
	}

	return t.Repr()
}
