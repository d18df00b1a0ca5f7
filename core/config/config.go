// Package config loads fuzzy controller definitions from TOML files:
// variables with their domains and terms, and if-then rules written in a
// small infix antecedent language.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"example.com/fuzzy-control/core/fuzzy"
	"example.com/fuzzy-control/core/rules"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	ListenAddr  string `toml:"listen_address,omitempty"`
	MetricsAddr string `toml:"metrics_address,omitempty"`

	Variables []VariableConfig `toml:"variable"`
	Rules     []RuleConfig     `toml:"rule"`
}

type VariableConfig struct {
	Name  string       `toml:"name"`
	Role  string       `toml:"role"`
	Range []float64    `toml:"range"`
	Step  float64      `toml:"step"`
	Terms []TermConfig `toml:"term"`
}

type TermConfig struct {
	Name   string    `toml:"name"`
	Shape  string    `toml:"shape"`
	Points []float64 `toml:"points"`
}

type RuleConfig struct {
	If     string   `toml:"if"`
	Then   string   `toml:"then"`
	Weight *float64 `toml:"weight,omitempty"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

func Decode(raw []byte) (*Config, error) {
	var cfg Config
	err := toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

func buildShape(tc TermConfig) (fuzzy.MembershipFunc, error) {
	switch tc.Shape {
	case "triangle":
		if len(tc.Points) != 3 {
			return nil, fmt.Errorf("%w: term %q: triangle needs 3 points, got %d",
				ErrInvalidConfig, tc.Name, len(tc.Points))
		}
		return fuzzy.NewTriangular(tc.Points[0], tc.Points[1], tc.Points[2])
	case "trapezoid":
		if len(tc.Points) != 4 {
			return nil, fmt.Errorf("%w: term %q: trapezoid needs 4 points, got %d",
				ErrInvalidConfig, tc.Name, len(tc.Points))
		}
		return fuzzy.NewTrapezoidal(tc.Points[0], tc.Points[1], tc.Points[2], tc.Points[3])
	default:
		return nil, fmt.Errorf("%w: term %q: unknown shape %q", ErrInvalidConfig, tc.Name, tc.Shape)
	}
}

func buildVariable(vc VariableConfig) (*fuzzy.Variable, error) {
	if len(vc.Range) != 2 {
		return nil, fmt.Errorf("%w: variable %q: range needs 2 bounds, got %d",
			ErrInvalidConfig, vc.Name, len(vc.Range))
	}
	dom, err := fuzzy.NewDomain(vc.Range[0], vc.Range[1], vc.Step)
	if err != nil {
		return nil, fmt.Errorf("variable %q: %w", vc.Name, err)
	}
	terms := make([]fuzzy.Term, 0, len(vc.Terms))
	for _, tc := range vc.Terms {
		f, err := buildShape(tc)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", vc.Name, err)
		}
		terms = append(terms, fuzzy.Term{Name: tc.Name, Func: f})
	}
	switch vc.Role {
	case "input":
		return fuzzy.NewInput(vc.Name, dom, terms...)
	case "output":
		return fuzzy.NewOutput(vc.Name, dom, terms...)
	default:
		return nil, fmt.Errorf("%w: variable %q: role must be \"input\" or \"output\", got %q",
			ErrInvalidConfig, vc.Name, vc.Role)
	}
}

// Build constructs the immutable rule base the configuration describes.
func (c *Config) Build() (*rules.Base, error) {
	if len(c.Variables) == 0 {
		return nil, fmt.Errorf("%w: no variables", ErrInvalidConfig)
	}
	if len(c.Rules) == 0 {
		return nil, fmt.Errorf("%w: no rules", ErrInvalidConfig)
	}

	vars := make(map[string]*fuzzy.Variable, len(c.Variables))
	for _, vc := range c.Variables {
		if _, dup := vars[vc.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate variable %q", ErrInvalidConfig, vc.Name)
		}
		v, err := buildVariable(vc)
		if err != nil {
			return nil, err
		}
		vars[vc.Name] = v
	}

	rs := make([]rules.Rule, 0, len(c.Rules))
	for _, rc := range c.Rules {
		when, err := parseExpr(rc.If, vars)
		if err != nil {
			return nil, err
		}
		thenVar, thenTerm, err := parseLeaf(rc.Then)
		if err != nil {
			return nil, err
		}
		out, ok := vars[thenVar]
		if !ok {
			return nil, fmt.Errorf("%w: unknown variable %q", ErrInvalidConfig, thenVar)
		}
		weight := 1.0
		if rc.Weight != nil {
			weight = *rc.Weight
		}
		r, err := rules.NewWeighted(when, out, thenTerm, weight)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rc.If, err)
		}
		rs = append(rs, r)
	}
	return rules.NewBase(rs...)
}
