package fuzzy

import (
	"fmt"

	"example.com/fuzzy-control/base/floats"
)

type Kind int

const (
	Input Kind = iota
	Output
)

func (k Kind) String() string {
	switch k {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		panic("unexpected variable kind")
	}
}

// A Term is a named fuzzy subset of a variable's domain.
type Term struct {
	Name string
	Func MembershipFunc
}

// A Variable is a named scalar domain partitioned into named terms. It is
// immutable after construction and safe to share across goroutines.
type Variable struct {
	name  string
	kind  Kind
	dom   Domain
	order []string
	terms map[string]Term
}

func NewInput(name string, dom Domain, terms ...Term) (*Variable, error) {
	return newVariable(name, Input, dom, terms)
}

func NewOutput(name string, dom Domain, terms ...Term) (*Variable, error) {
	return newVariable(name, Output, dom, terms)
}

func newVariable(name string, kind Kind, dom Domain, terms []Term) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: variable name must not be empty", ErrInvalidTerm)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: variable %q has no terms", ErrInvalidTerm, name)
	}
	v := &Variable{
		name:  name,
		kind:  kind,
		dom:   dom,
		order: make([]string, 0, len(terms)),
		terms: make(map[string]Term, len(terms)),
	}
	for _, t := range terms {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: variable %q has an unnamed term", ErrInvalidTerm, name)
		}
		if t.Func == nil {
			return nil, fmt.Errorf("%w: term %q of variable %q has no membership function",
				ErrInvalidTerm, t.Name, name)
		}
		if _, dup := v.terms[t.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate term %q in variable %q", ErrInvalidTerm, t.Name, name)
		}
		slo, shi := t.Func.Support()
		if slo < dom.Lo() || shi > dom.Hi() {
			return nil, fmt.Errorf("%w: term %q of variable %q has support [%v, %v], domain is [%v, %v]",
				ErrDomainMismatch, t.Name, name, slo, shi, dom.Lo(), dom.Hi())
		}
		v.order = append(v.order, t.Name)
		v.terms[t.Name] = t
	}
	return v, nil
}

func (v *Variable) Name() string   { return v.name }
func (v *Variable) Kind() Kind     { return v.kind }
func (v *Variable) Domain() Domain { return v.dom }

// TermNames returns the term names in declaration order.
func (v *Variable) TermNames() []string {
	names := make([]string, len(v.order))
	copy(names, v.order)
	return names
}

func (v *Variable) Term(name string) (Term, bool) {
	t, ok := v.terms[name]
	return t, ok
}

// Degree evaluates one term's membership at a crisp value. The value is
// clamped to the domain bounds first, so readings at or beyond a domain edge
// take the terminal degree of the edge. Unknown terms are a programming
// error; rule construction validates term names.
func (v *Variable) Degree(term string, crisp float64) float64 {
	t, ok := v.terms[term]
	if !ok {
		panic("unknown term: " + v.name + "." + term)
	}
	return t.Func.Evaluate(floats.Clamp(crisp, v.dom.Lo(), v.dom.Hi()))
}

// Fuzzify evaluates every term's membership at a crisp value.
func (v *Variable) Fuzzify(crisp float64) map[string]float64 {
	x := floats.Clamp(crisp, v.dom.Lo(), v.dom.Hi())
	degrees := make(map[string]float64, len(v.order))
	for name, t := range v.terms {
		degrees[name] = t.Func.Evaluate(x)
	}
	return degrees
}
