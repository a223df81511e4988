// Package runtime holds the VM's value representation: a tagged Value
// struct, its two reference-counted mutable aggregates (List, Object), the
// Function/Procedure linkage, and the capture Cell closures share. Grounded
// on original_source/src/{value,value_type,list,dict,function}.rs and
// vm/{value,list,object,function}.rs.
package runtime

import (
	"fmt"
	"strconv"
)

// Kind tags which variant of Value is populated.
type Kind int

const (
	Null Kind = iota
	Boolean
	Number
	String
	List
	Object
	Function
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case Object:
		return "object"
	case Function:
		return "function"
	}
	return "unknown"
}

// Value is a tagged union over every Regis runtime value. Int and Float
// bytecode pushes both land here as Number - see SPEC_FULL.md §9's
// Int/Float decision, grounded on original_source/src/value.rs's single
// `Number(f64)` variant (the split exists only at the instruction layer,
// in bytecode.PushInt/PushFloat).
type Value struct {
	Kind Kind

	Boolean  bool
	Number   float64
	String   string
	List     *ListValue
	Object   *ObjectValue
	Function *Function
}

func NullValue() Value                  { return Value{Kind: Null} }
func BooleanValue(v bool) Value         { return Value{Kind: Boolean, Boolean: v} }
func NumberValue(v float64) Value       { return Value{Kind: Number, Number: v} }
func StringValue(v string) Value        { return Value{Kind: String, String: v} }
func ListValueOf(v *ListValue) Value    { return Value{Kind: List, List: v} }
func ObjectValueOf(v *ObjectValue) Value { return Value{Kind: Object, Object: v} }
func FunctionValueOf(v *Function) Value { return Value{Kind: Function, Function: v} }

func (v Value) TypeOf() Kind { return v.Kind }

// ToBoolean implements Regis truthiness: Null is false, Boolean is itself,
// Number is false only at exactly zero, everything else is true. Grounded
// on original_source/src/value.rs's to_boolean.
func (v Value) ToBoolean() bool {
	switch v.Kind {
	case Null:
		return false
	case Boolean:
		return v.Boolean
	case Number:
		return v.Number != 0
	default:
		return true
	}
}

// ToDisplayString renders v the way `@println`/string-concatenation does.
// Grounded on original_source/src/value.rs's to_string.
func (v Value) ToDisplayString() string {
	switch v.Kind {
	case Null:
		return "null"
	case Boolean:
		return strconv.FormatBool(v.Boolean)
	case Number:
		return formatNumber(v.Number)
	case String:
		return v.String
	case List:
		return v.List.ToDisplayString()
	case Object:
		return v.Object.ToDisplayString()
	case Function:
		return v.Function.ToDisplayString()
	}
	return ""
}

func formatNumber(n float64) string {
	if n == float64(int64(n)) {
		return strconv.FormatInt(int64(n), 10)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}

// Equal implements structural equality for primitives and reference
// (identity) equality for aggregates - a List/Object/Function is only
// equal to itself. Grounded on value.rs's PartialEq impl, which compares
// List/Dict/Function by their SharedMutable pointer identity.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Boolean:
		return v.Boolean == other.Boolean
	case Number:
		return v.Number == other.Number
	case String:
		return v.String == other.String
	case List:
		return v.List == other.List
	case Object:
		return v.Object == other.Object
	case Function:
		return v.Function == other.Function
	}
	return false
}

func (v Value) String() string {
	return fmt.Sprintf("%s(%s)", v.Kind, v.ToDisplayString())
}
