package unflatten

import (
	"fmt"
	"io"
	"sync"

	"github.com/flatjson/flatjson/errs"
	"github.com/flatjson/flatjson/flatten"
	"github.com/flatjson/flatjson/jsonval"
)

// Unflattener rebuilds one flattened document. Like its counterpart it is
// immutable after construction and safe for concurrent use; every call to
// Unflatten or AsValue builds a fresh result.
type Unflattener struct {
	cfg    Config
	parser *keyParser
	once   sync.Once
	load   func() (*jsonval.Value, error)
	src    *jsonval.Value
	err    error
}

// New parses the flattened JSON text eagerly and returns an Unflattener over
// it. Malformed input fails here with errs.ErrMalformedJSON.
func New(json string, opts ...Option) (*Unflattener, error) {
	u, err := newUnflattener(func() (*jsonval.Value, error) {
		return jsonval.ParseString(json)
	}, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := u.source(); err != nil {
		return nil, err
	}
	return u, nil
}

// FromReader reads r to the end and parses it eagerly.
func FromReader(r io.Reader, opts ...Option) (*Unflattener, error) {
	u, err := newUnflattener(func() (*jsonval.Value, error) {
		return jsonval.ParseReader(r)
	}, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := u.source(); err != nil {
		return nil, err
	}
	return u, nil
}

// FromValue returns an Unflattener over an already parsed flattened value.
func FromValue(v *jsonval.Value, opts ...Option) (*Unflattener, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil source value", errs.ErrNilValue)
	}
	return newUnflattener(func() (*jsonval.Value, error) { return v, nil }, opts...)
}

// FromMap returns an Unflattener over a mapping produced by
// flatten.FlattenAsMap, skipping the round trip through JSON text.
func FromMap(m *flatten.OrderedMap, opts ...Option) (*Unflattener, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil source map", errs.ErrNilValue)
	}
	return newUnflattener(func() (*jsonval.Value, error) { return mapValue(m) }, opts...)
}

func newUnflattener(load func() (*jsonval.Value, error), opts ...Option) (*Unflattener, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Unflattener{
		cfg:    cfg,
		parser: newKeyParser(&cfg),
		load:   load,
	}, nil
}

// Config returns a copy of the effective configuration.
func (u *Unflattener) Config() Config { return u.cfg }

func (u *Unflattener) source() (*jsonval.Value, error) {
	u.once.Do(func() {
		u.src, u.err = u.load()
		u.load = nil
	})
	return u.src, u.err
}

// Unflatten rebuilds the nested document and renders it as JSON text in the
// configured print mode.
func (u *Unflattener) Unflatten() (string, error) {
	v, err := u.AsValue()
	if err != nil {
		return "", err
	}
	if u.cfg.printMode == flatten.PrintPretty {
		return v.PrettyString(), nil
	}
	return v.String(), nil
}

// AsValue rebuilds the nested document as a parsed value. Array input is
// unflattened element-wise, object input is unflattened by key, and scalar
// input passes through unchanged.
func (u *Unflattener) AsValue() (*jsonval.Value, error) {
	src, err := u.source()
	if err != nil {
		return nil, err
	}
	switch {
	case src.IsArray():
		return u.unflattenArray(src)
	case src.IsObject():
		return u.unflattenObject(src)
	default:
		return src, nil
	}
}

// unflattenObject rebuilds one flattened mapping. A mapping whose only key is
// the reserved root key resolves to the bare root value.
func (u *Unflattener) unflattenObject(src *jsonval.Value) (*jsonval.Value, error) {
	if src.MemberCount() == 1 && src.Members()[0].Name == flatten.RootKey {
		return u.convertLeaf(src.Members()[0].Value)
	}

	var result *jsonval.Value
	for _, m := range src.Members() {
		key := m.Name
		if u.cfg.transform != nil {
			key = u.cfg.transform(key)
		}
		segs, err := u.parser.parse(key)
		if err != nil {
			return nil, err
		}
		leaf, err := u.convertLeaf(m.Value)
		if err != nil {
			return nil, err
		}
		result, err = u.insert(result, segs, leaf, key)
		if err != nil {
			return nil, err
		}
	}
	if result == nil {
		result = jsonval.NewObject()
	}
	return result, nil
}

// convertLeaf prepares one flattened value for placement in the rebuilt
// tree. Arrays are recursed into so keep-arrays output, where nested objects
// are themselves flattened mappings, comes back out nested. Objects are
// copied so a later key extending them never writes through to the source;
// scalars pass through.
func (u *Unflattener) convertLeaf(v *jsonval.Value) (*jsonval.Value, error) {
	if v.IsArray() {
		return u.unflattenArray(v)
	}
	if v.IsObject() {
		return v.Clone(), nil
	}
	return v, nil
}

func (u *Unflattener) unflattenArray(arr *jsonval.Value) (*jsonval.Value, error) {
	out := jsonval.NewArray()
	for _, el := range arr.Elements() {
		switch {
		case el.IsArray():
			sub, err := u.unflattenArray(el)
			if err != nil {
				return nil, err
			}
			out.Append(sub)
		case el.IsObject():
			sub, err := u.unflattenObject(el)
			if err != nil {
				return nil, err
			}
			out.Append(sub)
		default:
			out.Append(el)
		}
	}
	return out, nil
}

// insert writes leaf into the tree at the path given by segs, creating
// intermediate containers on the way. An existing node whose kind disagrees
// with the path fails the whole pass; writing a leaf over an existing leaf
// replaces it.
func (u *Unflattener) insert(root *jsonval.Value, segs []segment, leaf *jsonval.Value, key string) (*jsonval.Value, error) {
	if root == nil {
		root = newContainer(segs[0])
	} else if containerMismatch(root, segs[0]) {
		return nil, conflictError(key, root)
	}

	cur := root
	for i, seg := range segs {
		if i == len(segs)-1 {
			setChild(cur, seg, leaf)
			break
		}
		next := childOf(cur, seg)
		if next == nil || next.IsNull() {
			next = newContainer(segs[i+1])
			setChild(cur, seg, next)
		} else if containerMismatch(next, segs[i+1]) {
			return nil, conflictError(key, next)
		}
		cur = next
	}
	return root, nil
}

func newContainer(s segment) *jsonval.Value {
	if s.kind == segIndexed {
		return jsonval.NewArray()
	}
	return jsonval.NewObject()
}

func containerMismatch(v *jsonval.Value, s segment) bool {
	if s.kind == segIndexed {
		return !v.IsArray()
	}
	return !v.IsObject()
}

func childOf(v *jsonval.Value, s segment) *jsonval.Value {
	if s.kind == segIndexed {
		return v.Element(s.index)
	}
	c, ok := v.Member(s.name)
	if !ok {
		return nil
	}
	return c
}

func setChild(v *jsonval.Value, s segment, child *jsonval.Value) {
	if s.kind == segIndexed {
		v.SetElement(s.index, child)
		return
	}
	v.SetMember(s.name, child)
}

func conflictError(key string, found *jsonval.Value) error {
	return fmt.Errorf("%w: key %q collides with existing %s value",
		errs.ErrKeyConflict, key, found.Kind())
}

// mapValue converts a flattened ordered map into the equivalent parsed
// object, preserving key order.
func mapValue(m *flatten.OrderedMap) (*jsonval.Value, error) {
	obj := jsonval.NewObject()
	for k, v := range m.All() {
		child, err := flatValue(v)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		obj.Add(k, child)
	}
	return obj, nil
}

func flatValue(v any) (*jsonval.Value, error) {
	switch val := v.(type) {
	case nil:
		return jsonval.NewNull(), nil
	case bool:
		return jsonval.NewBool(val), nil
	case string:
		return jsonval.NewString(val), nil
	case flatten.Number:
		n, err := jsonval.ParseString(string(val))
		if err != nil || !n.IsNumber() {
			return nil, fmt.Errorf("invalid number literal %q", string(val))
		}
		return n, nil
	case *flatten.List:
		arr := jsonval.NewArray()
		for _, el := range val.All() {
			child, err := flatValue(el)
			if err != nil {
				return nil, err
			}
			arr.Append(child)
		}
		return arr, nil
	case *flatten.OrderedMap:
		return mapValue(val)
	default:
		return nil, fmt.Errorf("unsupported flattened value of type %T", v)
	}
}
