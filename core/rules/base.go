package rules

import (
	"fmt"
	"sort"

	"example.com/fuzzy-control/core/fuzzy"
)

// A Base is an ordered, immutable sequence of rules sharing a common set of
// input and output variables. Build it once at startup and share it by
// reference across inference calls.
type Base struct {
	rules   []Rule
	inputs  []*fuzzy.Variable
	outputs []*fuzzy.Variable
}

func NewBase(rs ...Rule) (*Base, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrInvalidBase)
	}
	byName := make(map[string]*fuzzy.Variable)
	var collectErr error
	collect := func(v *fuzzy.Variable) {
		if collectErr != nil {
			return
		}
		if prev, ok := byName[v.Name()]; ok {
			if prev != v {
				collectErr = fmt.Errorf("%w: two distinct variables named %q", ErrInvalidBase, v.Name())
			}
			return
		}
		byName[v.Name()] = v
	}
	for _, r := range rs {
		r.Walk(func(v *fuzzy.Variable, _ string) { collect(v) })
		collect(r.Consequent().Var)
	}
	if collectErr != nil {
		return nil, collectErr
	}

	b := &Base{rules: make([]Rule, len(rs))}
	copy(b.rules, rs)
	for _, v := range byName {
		switch v.Kind() {
		case fuzzy.Input:
			b.inputs = append(b.inputs, v)
		case fuzzy.Output:
			b.outputs = append(b.outputs, v)
		}
	}
	sort.Slice(b.inputs, func(i, j int) bool { return b.inputs[i].Name() < b.inputs[j].Name() })
	sort.Slice(b.outputs, func(i, j int) bool { return b.outputs[i].Name() < b.outputs[j].Name() })
	return b, nil
}

func (b *Base) Rules() []Rule {
	rs := make([]Rule, len(b.rules))
	copy(rs, b.rules)
	return rs
}

// Inputs returns the antecedent variables referenced by the base, sorted by
// name.
func (b *Base) Inputs() []*fuzzy.Variable {
	vs := make([]*fuzzy.Variable, len(b.inputs))
	copy(vs, b.inputs)
	return vs
}

// Outputs returns the consequent variables referenced by the base, sorted by
// name.
func (b *Base) Outputs() []*fuzzy.Variable {
	vs := make([]*fuzzy.Variable, len(b.outputs))
	copy(vs, b.outputs)
	return vs
}
