package flatten

import (
	"strconv"

	"github.com/flatjson/flatjson/jsonval"
)

// Number is a JSON number carried as its exact source literal. 0.1, 1e2 and
// 100 stay distinct; nothing is rounded through a float64 on the way to
// output.
type Number string

// String returns the literal.
func (n Number) String() string { return string(n) }

// Float64 converts the literal, possibly losing precision.
func (n Number) Float64() (float64, error) {
	return strconv.ParseFloat(string(n), 64)
}

// Int64 converts the literal when it is an in-range integer.
func (n Number) Int64() (int64, error) {
	return strconv.ParseInt(string(n), 10, 64)
}

// coerce converts a terminal node into its output value. In normal mode only
// scalars and empty containers are terminal; in keep-arrays mode whole arrays
// arrive here and are materialized recursively, with any non-empty object
// found inside re-flattened under the same configuration into a nested
// mapping of its own.
func (e *engine) coerce(v *jsonval.Value) any {
	switch v.Kind() {
	case jsonval.KindBool:
		return v.Bool()
	case jsonval.KindString:
		return v.Str()
	case jsonval.KindNumber:
		return Number(v.NumberLiteral())
	case jsonval.KindObject:
		if e.cfg.mode == ModeKeepArrays && v.MemberCount() > 0 {
			sub := &engine{cfg: e.cfg, out: NewOrderedMap()}
			sub.run(v)
			return sub.out
		}
		return NewOrderedMap()
	case jsonval.KindArray:
		if e.cfg.mode == ModeKeepArrays {
			list := NewList()
			for _, el := range v.Elements() {
				list.Append(e.coerce(el))
			}
			return list
		}
		return NewList()
	default:
		return nil
	}
}
