// Package rules models linguistic if-then rules over fuzzy variables: an
// antecedent expression tree combined with min/max, a consequent term, and a
// firing weight. Rule bases are immutable after construction and safe to
// share read-only across goroutines.
package rules

import (
	"example.com/fuzzy-control/core/fuzzy"
)

// An Expr is an antecedent expression over term memberships. Eval assumes
// inputs have been validated to contain every referenced variable; the
// inference engine checks this before firing any rule.
type Expr interface {
	// Eval returns the expression's degree in [0, 1] for the given crisp
	// inputs, keyed by variable name.
	Eval(inputs map[string]float64) float64
	// Walk visits every term reference in the expression.
	Walk(visit func(v *fuzzy.Variable, term string))
}

type termRef struct {
	v    *fuzzy.Variable
	term string
}

func (r termRef) Eval(inputs map[string]float64) float64 {
	return r.v.Degree(r.term, inputs[r.v.Name()])
}

func (r termRef) Walk(visit func(v *fuzzy.Variable, term string)) {
	visit(r.v, r.term)
}

// Is references a single term membership: "v is term".
func Is(v *fuzzy.Variable, term string) Expr {
	return termRef{v: v, term: term}
}

type andExpr []Expr

func (e andExpr) Eval(inputs map[string]float64) float64 {
	deg := e[0].Eval(inputs)
	for _, sub := range e[1:] {
		if d := sub.Eval(inputs); d < deg {
			deg = d
		}
	}
	return deg
}

func (e andExpr) Walk(visit func(v *fuzzy.Variable, term string)) {
	for _, sub := range e {
		sub.Walk(visit)
	}
}

// And combines expressions by fuzzy intersection (minimum).
func And(exprs ...Expr) Expr {
	if len(exprs) == 0 {
		panic("unexpected number of expressions")
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return andExpr(exprs)
}

type orExpr []Expr

func (e orExpr) Eval(inputs map[string]float64) float64 {
	deg := e[0].Eval(inputs)
	for _, sub := range e[1:] {
		if d := sub.Eval(inputs); d > deg {
			deg = d
		}
	}
	return deg
}

func (e orExpr) Walk(visit func(v *fuzzy.Variable, term string)) {
	for _, sub := range e {
		sub.Walk(visit)
	}
}

// Or combines expressions by fuzzy union (maximum).
func Or(exprs ...Expr) Expr {
	if len(exprs) == 0 {
		panic("unexpected number of expressions")
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return orExpr(exprs)
}
