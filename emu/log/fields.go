package log

import (
	"fmt"
	"strconv"
)

type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeBool
	FieldTypeString
	FieldTypeHex8
	FieldTypeHex16
	FieldTypeHex32
	FieldTypeInt
	FieldTypeUint
	FieldTypeError
)

type ZField struct {
	Type FieldType
	Key  string

	// Only one of these is populated, depending on Type.
	String  string
	Integer uint64
	Error   error
	Boolean bool
}

func (f *ZField) Value() string {
	switch f.Type {
	case FieldTypeBool:
		return strconv.FormatBool(f.Boolean)
	case FieldTypeString:
		return f.String
	case FieldTypeUint:
		return strconv.FormatUint(f.Integer, 10)
	case FieldTypeInt:
		return strconv.FormatInt(int64(f.Integer), 10)
	case FieldTypeHex8:
		return fmt.Sprintf("%02x", uint(f.Integer))
	case FieldTypeHex16:
		return fmt.Sprintf("%04x", uint(f.Integer))
	case FieldTypeHex32:
		return fmt.Sprintf("%08x", uint(f.Integer))
	case FieldTypeError:
		if f.Error == nil {
			return "<nil>"
		}
		return f.Error.Error()
	}
	return ""
}
