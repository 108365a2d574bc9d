package flatten

import (
	"fmt"
	"io"
	"sync"

	"github.com/flatjson/flatjson/errs"
	"github.com/flatjson/flatjson/jsonval"
)

// Flattener converts one JSON document into its flattened form. A Flattener
// is immutable after construction and safe for concurrent use; each call to
// Flatten or FlattenAsMap runs an independent traversal and returns freshly
// built output.
type Flattener struct {
	cfg  Config
	once sync.Once
	load func() (*jsonval.Value, error)
	src  *jsonval.Value
	err  error
}

// New parses json eagerly and returns a Flattener over it. Malformed input
// fails here with errs.ErrMalformedJSON.
func New(json string, opts ...Option) (*Flattener, error) {
	f, err := Lazy(json, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := f.source(); err != nil {
		return nil, err
	}
	return f, nil
}

// Lazy returns a Flattener that defers parsing json until the first
// traversal. Construction only validates the options; malformed input
// surfaces from the first Flatten or FlattenAsMap call instead.
func Lazy(json string, opts ...Option) (*Flattener, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Flattener{
		cfg:  cfg,
		load: func() (*jsonval.Value, error) { return jsonval.ParseString(json) },
	}, nil
}

// FromReader reads r to the end and parses it eagerly. Read failures and
// malformed input both fail here.
func FromReader(r io.Reader, opts ...Option) (*Flattener, error) {
	f, err := LazyFromReader(r, opts...)
	if err != nil {
		return nil, err
	}
	if _, err := f.source(); err != nil {
		return nil, err
	}
	return f, nil
}

// LazyFromReader returns a Flattener that consumes r on the first traversal.
func LazyFromReader(r io.Reader, opts ...Option) (*Flattener, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Flattener{
		cfg:  cfg,
		load: func() (*jsonval.Value, error) { return jsonval.ParseReader(r) },
	}, nil
}

// FromValue returns a Flattener over an already parsed value.
func FromValue(v *jsonval.Value, opts ...Option) (*Flattener, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil source value", errs.ErrNilValue)
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Flattener{
		cfg:  cfg,
		load: func() (*jsonval.Value, error) { return v, nil },
	}, nil
}

// Config returns a copy of the effective configuration.
func (f *Flattener) Config() Config { return f.cfg }

// source materializes the parsed input exactly once.
func (f *Flattener) source() (*jsonval.Value, error) {
	f.once.Do(func() {
		f.src, f.err = f.load()
		f.load = nil
	})
	return f.src, f.err
}

// FlattenAsMap runs the traversal and returns the flattened mapping. The map
// is freshly built on every call; callers may keep or mutate it freely.
//
// Keys encode the path from the root: member names joined by the separator,
// array positions as bracketed indexes, colliding names fenced (see
// appendName). A source that cannot contribute keys of its own, a bare
// scalar, null or empty array, lands under RootKey. An empty root object
// produces an empty map.
func (f *Flattener) FlattenAsMap() (*OrderedMap, error) {
	src, err := f.source()
	if err != nil {
		return nil, err
	}
	e := &engine{cfg: &f.cfg, out: NewOrderedMap()}
	e.run(src)
	return e.out, nil
}

// Flatten runs the traversal and renders the result as JSON text in the
// configured print mode. Object sources, and array sources that were split
// into indexed keys, render as the flattened map; everything else renders
// the single root value directly.
func (f *Flattener) Flatten() (string, error) {
	m, err := f.FlattenAsMap()
	if err != nil {
		return "", err
	}
	src, _ := f.source()
	if src.IsObject() || (src.IsArray() && !m.Has(RootKey)) {
		return f.cfg.renderer.Render(m, f.cfg.printMode, f.cfg.policy), nil
	}
	root, _ := m.Get(RootKey)
	return f.cfg.renderer.Render(root, f.cfg.printMode, f.cfg.policy), nil
}

// engine holds the state of one traversal: the configuration, the explicit
// frame stack and the output under construction.
type engine struct {
	cfg   *Config
	stack []*frame
	out   *OrderedMap
}

// frame is a cursor over the children of one container. current is the index
// of the child most recently handed out, -1 before the first advance.
type frame struct {
	members  []jsonval.Member
	elements []*jsonval.Value
	current  int
}

func newObjectFrame(members []jsonval.Member) *frame {
	return &frame{members: members, current: -1}
}

func newArrayFrame(elements []*jsonval.Value) *frame {
	return &frame{elements: elements, current: -1}
}

func (f *frame) isObject() bool { return f.members != nil }

func (f *frame) hasNext() bool {
	if f.isObject() {
		return f.current+1 < len(f.members)
	}
	return f.current+1 < len(f.elements)
}

func (f *frame) next() *jsonval.Value {
	f.current++
	if f.isObject() {
		return f.members[f.current].Value
	}
	return f.elements[f.current]
}

// run drives the traversal loop. The stack replaces recursion so nesting
// depth costs heap, not call stack.
func (e *engine) run(root *jsonval.Value) {
	e.reduce(root)
	for len(e.stack) > 0 {
		top := e.stack[len(e.stack)-1]
		if !top.hasNext() {
			e.stack = e.stack[:len(e.stack)-1]
			continue
		}
		e.reduce(top.next())
	}
}

// reduce classifies one node: descend into non-empty containers, emit
// everything else at the current key. In keep-arrays mode a non-empty array
// is emitted whole instead of descended into. The single suppressed case is
// an empty mapping under the root key, so an empty root object contributes
// no entry while an empty root array still emits one.
func (e *engine) reduce(v *jsonval.Value) {
	switch {
	case v.IsObject() && v.MemberCount() > 0:
		e.stack = append(e.stack, newObjectFrame(v.Members()))
	case v.IsArray() && v.ElementCount() > 0:
		if e.cfg.mode == ModeKeepArrays {
			e.out.Set(e.currentKey(), e.coerce(v))
			return
		}
		e.stack = append(e.stack, newArrayFrame(v.Elements()))
	default:
		key := e.currentKey()
		value := e.coerce(v)
		if key == RootKey {
			if m, ok := value.(*OrderedMap); ok && m.Len() == 0 {
				return
			}
		}
		e.out.Set(key, value)
	}
}
