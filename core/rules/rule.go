package rules

import (
	"errors"
	"fmt"

	"example.com/fuzzy-control/core/fuzzy"
)

var (
	ErrInvalidRule   = errors.New("invalid rule")
	ErrInvalidWeight = errors.New("rule weight outside [0, 1]")
	ErrUnknownTerm   = errors.New("unknown term")
	ErrInvalidBase   = errors.New("invalid rule base")
)

// A Consequent names the output term a rule asserts.
type Consequent struct {
	Var  *fuzzy.Variable
	Term string
}

// A Rule pairs an antecedent expression with a consequent term and a firing
// weight. Immutable after construction.
type Rule struct {
	when   Expr
	then   Consequent
	weight float64
}

// New builds a rule with the default weight of 1.
func New(when Expr, thenVar *fuzzy.Variable, thenTerm string) (Rule, error) {
	return NewWeighted(when, thenVar, thenTerm, 1.0)
}

func NewWeighted(when Expr, thenVar *fuzzy.Variable, thenTerm string, weight float64) (Rule, error) {
	if when == nil {
		return Rule{}, fmt.Errorf("%w: no antecedent", ErrInvalidRule)
	}
	if thenVar == nil {
		return Rule{}, fmt.Errorf("%w: no consequent variable", ErrInvalidRule)
	}
	if !(weight >= 0 && weight <= 1) {
		return Rule{}, fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	if _, ok := thenVar.Term(thenTerm); !ok {
		return Rule{}, fmt.Errorf("%w: %s.%s", ErrUnknownTerm, thenVar.Name(), thenTerm)
	}
	if thenVar.Kind() != fuzzy.Output {
		return Rule{}, fmt.Errorf("%w: consequent variable %q is not an output", ErrInvalidRule, thenVar.Name())
	}
	var leafErr error
	when.Walk(func(v *fuzzy.Variable, term string) {
		if leafErr != nil {
			return
		}
		if _, ok := v.Term(term); !ok {
			leafErr = fmt.Errorf("%w: %s.%s", ErrUnknownTerm, v.Name(), term)
			return
		}
		if v.Kind() != fuzzy.Input {
			leafErr = fmt.Errorf("%w: antecedent variable %q is not an input", ErrInvalidRule, v.Name())
		}
	})
	if leafErr != nil {
		return Rule{}, leafErr
	}
	return Rule{when: when, then: Consequent{Var: thenVar, Term: thenTerm}, weight: weight}, nil
}

func (r Rule) Consequent() Consequent { return r.then }
func (r Rule) Weight() float64        { return r.weight }

// Strength evaluates the antecedent for the given crisp inputs and scales it
// by the rule weight. The result is the rule's firing strength in [0, 1].
func (r Rule) Strength(inputs map[string]float64) float64 {
	return r.when.Eval(inputs) * r.weight
}

// Walk visits every term reference in the rule's antecedent.
func (r Rule) Walk(visit func(v *fuzzy.Variable, term string)) {
	r.when.Walk(visit)
}
