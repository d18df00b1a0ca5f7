// Package inference implements Mamdani-style fuzzy inference over an
// immutable rule base: fuzzify crisp inputs, fire rules, clip consequent
// terms at each rule's firing strength (min-implication), aggregate clipped
// curves by pointwise maximum, and defuzzify the aggregate.
package inference

import (
	"fmt"

	"go.uber.org/zap"

	"example.com/fuzzy-control/core/rules"
)

// An Engine runs inference calls against one rule base. It holds no state
// across calls; a single engine is safe for concurrent use.
type Engine struct {
	log    *zap.Logger
	base   *rules.Base
	defuzz Defuzzifier
}

func NewEngine(log *zap.Logger, base *rules.Base) *Engine {
	if base == nil {
		panic("rule base must not be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log, base: base, defuzz: Centroid{}}
}

func (e *Engine) Base() *rules.Base { return e.base }

// SetDefuzzifier replaces the default centroid method. Configure before the
// engine is shared across goroutines.
func (e *Engine) SetDefuzzifier(d Defuzzifier) {
	if d == nil {
		panic("defuzzifier must not be nil")
	}
	e.defuzz = d
}

// An Evaluation carries the crisp outputs of one inference call plus the
// intermediate curves a display collaborator plots.
type Evaluation struct {
	// Outputs maps each output variable name to its defuzzified value.
	Outputs map[string]float64
	// Fuzzified maps each input variable name to its per-term degrees.
	Fuzzified map[string]map[string]float64
	// Strengths holds one firing strength per rule, in rule-base order.
	Strengths []float64
	// Aggregated maps each output variable name to its aggregated
	// membership curve over the variable's domain grid.
	Aggregated map[string][]float64
}

// Infer computes one crisp output per output variable. It either succeeds
// for all output variables or returns a single typed error and no outputs.
func (e *Engine) Infer(inputs map[string]float64) (map[string]float64, error) {
	ev, err := e.Evaluate(inputs)
	if err != nil {
		return nil, err
	}
	return ev.Outputs, nil
}

// Evaluate is Infer with diagnostics: per-term fuzzified degrees, per-rule
// firing strengths, and the aggregated output curves.
func (e *Engine) Evaluate(inputs map[string]float64) (*Evaluation, error) {
	for _, v := range e.base.Inputs() {
		if _, ok := inputs[v.Name()]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, v.Name())
		}
	}

	rs := e.base.Rules()
	strengths := make([]float64, len(rs))
	for i, r := range rs {
		strengths[i] = r.Strength(inputs)
	}

	ev := &Evaluation{
		Outputs:    make(map[string]float64),
		Fuzzified:  make(map[string]map[string]float64),
		Strengths:  strengths,
		Aggregated: make(map[string][]float64),
	}
	for _, v := range e.base.Inputs() {
		ev.Fuzzified[v.Name()] = v.Fuzzify(inputs[v.Name()])
	}

	for _, out := range e.base.Outputs() {
		dom := out.Domain()
		agg := make([]float64, dom.Len())
		fired := false
		for i, r := range rs {
			c := r.Consequent()
			if c.Var != out || strengths[i] == 0 {
				continue
			}
			fired = true
			term, _ := out.Term(c.Term)
			w := strengths[i]
			for j := 0; j < dom.Len(); j++ {
				clipped := term.Func.Evaluate(dom.Sample(j))
				if clipped > w {
					clipped = w
				}
				if clipped > agg[j] {
					agg[j] = clipped
				}
			}
		}
		if !fired {
			return nil, fmt.Errorf("%w: output %q has zero aggregate membership", ErrNoRuleFired, out.Name())
		}
		crisp, ok := e.defuzz.Defuzzify(dom, agg)
		if !ok {
			return nil, fmt.Errorf("%w: output %q has zero aggregate membership", ErrNoRuleFired, out.Name())
		}
		ev.Aggregated[out.Name()] = agg
		ev.Outputs[out.Name()] = crisp

		e.log.Debug("defuzzified output",
			zap.String("variable", out.Name()),
			zap.Float64("value", crisp),
		)
	}
	return ev, nil
}
