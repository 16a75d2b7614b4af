package infer

import "github.com/you-not-fish/gum/internal/syntax"

// shapeKind classifies the abstract types the engine tracks.
type shapeKind int

const (
	numKind shapeKind = iota
	intKind           // only held by values seeded from the signature table
	strKind
	boolKind
	objKind
	arrKind
	fnKind
)

// A shape is an abstract type. The primitive shapes are singletons.
// Composite shapes are merged with a union-find structure when the same
// value is seen with two of them, so that a value keeps one shape.
type shape struct {
	kind   shapeKind
	parent *shape // union-find link; nil for a representative
	fixed  bool   // built from the signature table

	// objKind
	props map[string]*aval
	order []string // property names in order of first appearance

	// arrKind
	elem *aval

	// fnKind
	params []*aval
	names  []string
	ret    *aval
}

var (
	numShape  = &shape{kind: numKind}
	intShape  = &shape{kind: intKind}
	strShape  = &shape{kind: strKind}
	boolShape = &shape{kind: boolKind}
)

func newObject() *shape {
	return &shape{kind: objKind, props: make(map[string]*aval)}
}

func newArray() *shape {
	return &shape{kind: arrKind, elem: new(aval)}
}

func newFunc(params []*syntax.Name) *shape {
	s := &shape{kind: fnKind, ret: new(aval)}
	for _, p := range params {
		s.params = append(s.params, new(aval))
		s.names = append(s.names, p.Value)
	}
	return s
}

// find returns the representative of s.
func (s *shape) find() *shape {
	for s.parent != nil {
		if s.parent.parent != nil {
			s.parent = s.parent.parent
		}
		s = s.parent
	}
	return s
}

func (s *shape) composite() bool {
	return s.kind >= objKind
}

// prop returns the value of the named property, creating it if needed.
func (s *shape) prop(name string) *aval {
	r := s.find()
	if a, ok := r.props[name]; ok {
		return a
	}
	a := new(aval)
	r.props[name] = a
	r.order = append(r.order, name)
	return a
}

// merge unifies two composite shapes of the same kind. Components are
// linked in both directions. A table shape stays the representative so
// that calls through the merged shape keep the table's parameter types.
func merge(x, y *shape) {
	x, y = x.find(), y.find()
	if x == y {
		return
	}
	if y.fixed && !x.fixed {
		x, y = y, x
	}
	y.parent = x

	switch y.kind {
	case objKind:
		for _, name := range y.order {
			ya := y.props[name]
			r := x.find()
			if ra, ok := r.props[name]; ok {
				link(ra, ya)
			} else {
				r.props[name] = ya
				r.order = append(r.order, name)
			}
		}
	case arrKind:
		link(x.elem, y.elem)
	case fnKind:
		for i, p := range y.params {
			r := x.find()
			if i < len(r.params) {
				link(r.params[i], p)
			} else {
				r.params = append(r.params, p)
				r.names = append(r.names, y.names[i])
			}
		}
		link(x.ret, y.ret)
	}
}

// An aval is an abstract value: the type a variable, property or
// expression may hold. A value that received incompatible types is in
// conflict and is treated as dynamic.
type aval struct {
	typ      *shape
	conflict bool
	fixed    bool // seeded from the signature table; ignores incoming types
	fwd      []constraint
}

// add records that a may hold a value of shape s.
func (a *aval) add(s *shape) {
	s = s.find()
	if s == intShape && !a.fixed {
		s = numShape
	}
	if a.typ == nil {
		if a.fixed || a.conflict {
			return
		}
		a.typ = s
		for _, c := range a.fwd {
			c.addType(s)
		}
		return
	}

	cur := a.typ.find()
	switch {
	case cur == s:
	case cur.kind == s.kind && s.composite():
		merge(cur, s)
	case a.fixed:
	default:
		a.markConflict()
	}
}

// markConflict makes a dynamic.
func (a *aval) markConflict() {
	if a.conflict || a.fixed {
		return
	}
	a.conflict = true
	for _, c := range a.fwd {
		c.markConflict()
	}
}

// propagate registers c and replays what a already knows.
func (a *aval) propagate(c constraint) {
	a.fwd = append(a.fwd, c)
	if a.typ != nil {
		c.addType(a.typ.find())
	}
	if a.conflict {
		c.markConflict()
	}
}

// flowTo makes everything a holds flow into b.
func (a *aval) flowTo(b *aval) {
	if a == b {
		return
	}
	a.propagate(flowTo{b})
}

// link makes a and b hold the same types.
func link(a, b *aval) {
	a.flowTo(b)
	b.flowTo(a)
}

func (a *aval) is(kind shapeKind) bool {
	return !a.conflict && a.typ != nil && a.typ.find().kind == kind
}

func (a *aval) isNumber() bool {
	return a.is(numKind) || a.is(intKind)
}

func (a *aval) known() bool {
	return a.conflict || a.typ != nil
}

// ----------------------------------------------------------------------------
// Constraints

// A constraint reacts to the types arriving at an aval.
type constraint interface {
	addType(s *shape)
	markConflict()
}

// flowTo copies types into target.
type flowTo struct {
	target *aval
}

func (f flowTo) addType(s *shape) { f.target.add(s) }
func (f flowTo) markConflict()    { f.target.markConflict() }

// plusOp computes the result of x + y: a string when either side is a
// string, a number when a number is added to a number or boolean, and
// dynamic otherwise.
type plusOp struct {
	x, y, result *aval
}

func (p *plusOp) addType(*shape) { p.update() }
func (p *plusOp) markConflict()  { p.update() }

func (p *plusOp) update() {
	switch {
	case p.x.is(strKind) || p.y.is(strKind):
		p.result.add(strShape)
	case p.x.isNumber() && (p.y.isNumber() || p.y.is(boolKind)):
		p.result.add(numShape)
	case p.x.known() && p.y.known():
		p.result.markConflict()
	}
}

// hasProp reads property name into target.
type hasProp struct {
	name   string
	target *aval
}

func (h hasProp) addType(s *shape) {
	switch s.kind {
	case objKind:
		s.prop(h.name).flowTo(h.target)
	case arrKind, strKind:
		if h.name == "length" {
			h.target.add(numShape)
			return
		}
		h.target.markConflict()
	default:
		h.target.markConflict()
	}
}

func (h hasProp) markConflict() { h.target.markConflict() }

// propWrite stores value into property name.
type propWrite struct {
	name  string
	value *aval
}

func (w propWrite) addType(s *shape) {
	if s.kind == objKind {
		w.value.flowTo(s.prop(w.name))
	}
}

func (propWrite) markConflict() {}

// index reads an element into target.
type index struct {
	target *aval
}

func (x index) addType(s *shape) {
	switch s.kind {
	case arrKind:
		s.find().elem.flowTo(x.target)
	case strKind:
		x.target.add(strShape)
	default:
		x.target.markConflict()
	}
}

func (x index) markConflict() { x.target.markConflict() }

// indexWrite stores value into an element.
type indexWrite struct {
	value *aval
}

func (w indexWrite) addType(s *shape) {
	if s.kind == arrKind {
		w.value.flowTo(s.find().elem)
	}
}

func (indexWrite) markConflict() {}

// isCallee passes arguments to the parameters of the called function and
// its result to ret.
type isCallee struct {
	args []*aval
	ret  *aval
}

func (c isCallee) addType(s *shape) {
	if s.kind != fnKind {
		c.ret.markConflict()
		return
	}
	r := s.find()
	for i, a := range c.args {
		if i < len(r.params) {
			a.flowTo(r.params[i])
		}
	}
	r.ret.flowTo(c.ret)
}

func (c isCallee) markConflict() { c.ret.markConflict() }
