package ast

import (
	"strconv"
	"strings"

	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// ValueKind discriminates property values.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	ValueString
	ValueInt
	ValueFloat
	ValueBool
	ValueWord
	ValueList
)

// Value is a property value. The field matching Kind is populated; Str holds
// the text for both ValueString (processed) and ValueWord (verbatim).
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	List  []Value
	Span  source.Span
}

func (v Value) String() string {
	switch v.Kind {
	case ValueString, ValueWord:
		return v.Str
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueList:
		parts := make([]string, len(v.List))
		for i, item := range v.List {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return ""
}
