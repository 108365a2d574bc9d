package jsonval

import "strconv"

// Kind identifies one of the six JSON value kinds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// String returns the lowercase JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Member is a single name/value pair of a JSON object. Duplicate names are
// legal and preserved in source order.
type Member struct {
	Name  string
	Value *Value
}

// Value is an immutable-by-convention JSON value. Scalars are cheap value
// holders; objects and arrays own ordered slices of children. The zero Value
// is null.
type Value struct {
	kind    Kind
	boolVal bool
	text    string // number literal or decoded string content
	members []Member
	elems   []*Value
}

// NewNull returns a JSON null.
func NewNull() *Value { return &Value{kind: KindNull} }

// NewBool returns a JSON boolean.
func NewBool(b bool) *Value { return &Value{kind: KindBool, boolVal: b} }

// NewString returns a JSON string holding the given (already decoded) text.
func NewString(s string) *Value { return &Value{kind: KindString, text: s} }

// NewNumber returns a JSON number backed by the given literal. The literal
// must satisfy the JSON number grammar; NewNumber panics otherwise so that a
// malformed literal never reaches serialized output.
func NewNumber(literal string) *Value {
	if !validNumberLiteral(literal) {
		panic("jsonval: NewNumber called with invalid literal " + strconv.Quote(literal))
	}
	return &Value{kind: KindNumber, text: literal}
}

// NewNumberFloat returns a JSON number rendered from a float64 with the
// shortest round-trip representation. NaN and infinities have no JSON
// encoding and cause a panic.
func NewNumberFloat(f float64) *Value {
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	if !validNumberLiteral(lit) {
		panic("jsonval: NewNumberFloat called with non-finite value")
	}
	return &Value{kind: KindNumber, text: lit}
}

// NewNumberInt returns a JSON number holding an integer literal.
func NewNumberInt(i int64) *Value {
	return &Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// NewObject returns an empty JSON object.
func NewObject() *Value { return &Value{kind: KindObject} }

// NewArray returns an empty JSON array.
func NewArray() *Value { return &Value{kind: KindArray} }

// Kind returns the kind tag of the value.
func (v *Value) Kind() Kind { return v.kind }

// Clone returns a deep copy of the value. The copy shares no structure with
// the original, so mutating one never affects the other.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := &Value{kind: v.kind, boolVal: v.boolVal, text: v.text}
	if v.members != nil {
		c.members = make([]Member, len(v.members))
		for i, m := range v.members {
			c.members[i] = Member{Name: m.Name, Value: m.Value.Clone()}
		}
	}
	if v.elems != nil {
		c.elems = make([]*Value, len(v.elems))
		for i, el := range v.elems {
			c.elems[i] = el.Clone()
		}
	}
	return c
}

func (v *Value) IsNull() bool   { return v.kind == KindNull }
func (v *Value) IsBool() bool   { return v.kind == KindBool }
func (v *Value) IsNumber() bool { return v.kind == KindNumber }
func (v *Value) IsString() bool { return v.kind == KindString }
func (v *Value) IsObject() bool { return v.kind == KindObject }
func (v *Value) IsArray() bool  { return v.kind == KindArray }

// Bool returns the boolean payload. It panics when the value is not a
// boolean, mirroring reflect.Value's kind discipline.
func (v *Value) Bool() bool {
	if v.kind != KindBool {
		panic("jsonval: Bool called on " + v.kind.String() + " value")
	}
	return v.boolVal
}

// Str returns the decoded string payload. It panics when the value is not a
// string.
func (v *Value) Str() string {
	if v.kind != KindString {
		panic("jsonval: Str called on " + v.kind.String() + " value")
	}
	return v.text
}

// NumberLiteral returns the exact number literal as it appeared in the
// source. It panics when the value is not a number.
func (v *Value) NumberLiteral() string {
	if v.kind != KindNumber {
		panic("jsonval: NumberLiteral called on " + v.kind.String() + " value")
	}
	return v.text
}

// Float64 converts the number literal to a float64. Precision may be lost for
// literals outside the float64 range; the literal itself stays untouched.
func (v *Value) Float64() (float64, error) {
	return strconv.ParseFloat(v.NumberLiteral(), 64)
}

// Int64 converts the number literal to an int64. Fractional or out-of-range
// literals return an error.
func (v *Value) Int64() (int64, error) {
	return strconv.ParseInt(v.NumberLiteral(), 10, 64)
}

// Members returns the ordered member slice of an object. The slice is shared
// with the value and must not be modified by the caller. It panics when the
// value is not an object.
func (v *Value) Members() []Member {
	if v.kind != KindObject {
		panic("jsonval: Members called on " + v.kind.String() + " value")
	}
	return v.members
}

// MemberCount returns the number of members of an object, duplicates
// included.
func (v *Value) MemberCount() int {
	if v.kind != KindObject {
		panic("jsonval: MemberCount called on " + v.kind.String() + " value")
	}
	return len(v.members)
}

// Member returns the value of the last member with the given name, or
// (nil, false) when no such member exists. Last-wins matches how repeated
// names behave in most JSON consumers.
func (v *Value) Member(name string) (*Value, bool) {
	if v.kind != KindObject {
		panic("jsonval: Member called on " + v.kind.String() + " value")
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Name == name {
			return v.members[i].Value, true
		}
	}
	return nil, false
}

// Add appends a member to an object, keeping any existing member with the
// same name. A nil child is stored as JSON null. It returns the receiver for
// chaining.
func (v *Value) Add(name string, child *Value) *Value {
	if v.kind != KindObject {
		panic("jsonval: Add called on " + v.kind.String() + " value")
	}
	if child == nil {
		child = NewNull()
	}
	v.members = append(v.members, Member{Name: name, Value: child})
	return v
}

// SetMember replaces the last member with the given name in place, or appends
// when the name is absent. It returns the receiver for chaining.
func (v *Value) SetMember(name string, child *Value) *Value {
	if v.kind != KindObject {
		panic("jsonval: SetMember called on " + v.kind.String() + " value")
	}
	if child == nil {
		child = NewNull()
	}
	for i := len(v.members) - 1; i >= 0; i-- {
		if v.members[i].Name == name {
			v.members[i].Value = child
			return v
		}
	}
	v.members = append(v.members, Member{Name: name, Value: child})
	return v
}

// Elements returns the ordered element slice of an array. The slice is shared
// with the value and must not be modified by the caller. It panics when the
// value is not an array.
func (v *Value) Elements() []*Value {
	if v.kind != KindArray {
		panic("jsonval: Elements called on " + v.kind.String() + " value")
	}
	return v.elems
}

// ElementCount returns the number of elements of an array.
func (v *Value) ElementCount() int {
	if v.kind != KindArray {
		panic("jsonval: ElementCount called on " + v.kind.String() + " value")
	}
	return len(v.elems)
}

// Element returns the i-th element of an array, or nil when i is out of
// range.
func (v *Value) Element(i int) *Value {
	if v.kind != KindArray {
		panic("jsonval: Element called on " + v.kind.String() + " value")
	}
	if i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Append adds an element to the end of an array. A nil child is stored as
// JSON null. It returns the receiver for chaining.
func (v *Value) Append(child *Value) *Value {
	if v.kind != KindArray {
		panic("jsonval: Append called on " + v.kind.String() + " value")
	}
	if child == nil {
		child = NewNull()
	}
	v.elems = append(v.elems, child)
	return v
}

// SetElement stores a child at index i, growing the array with JSON nulls as
// needed. Negative indexes panic. It returns the receiver for chaining.
func (v *Value) SetElement(i int, child *Value) *Value {
	if v.kind != KindArray {
		panic("jsonval: SetElement called on " + v.kind.String() + " value")
	}
	if i < 0 {
		panic("jsonval: SetElement called with negative index")
	}
	if child == nil {
		child = NewNull()
	}
	for len(v.elems) <= i {
		v.elems = append(v.elems, NewNull())
	}
	v.elems[i] = child
	return v
}
