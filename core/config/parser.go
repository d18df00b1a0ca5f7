package config

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"example.com/fuzzy-control/core/fuzzy"
	"example.com/fuzzy-control/core/rules"
)

// Rule antecedents are written in a small infix language, for example
//
//	temperature is frozen
//	temperature is normal and weight is medium
//	error is negative or (error is zero and error_dot is positive)
//
// "and" binds tighter than "or"; parentheses group.

type exprNode struct {
	Or []*andNode `parser:"@@ ( 'or' @@ )*"`
}

type andNode struct {
	And []*atomNode `parser:"@@ ( 'and' @@ )*"`
}

type atomNode struct {
	Leaf  *leafNode `parser:"( @@"`
	Group *exprNode `parser:"| '(' @@ ')' )"`
}

type leafNode struct {
	Var  string `parser:"@Ident"`
	Term string `parser:"'is' @Ident"`
}

var (
	exprParser = participle.MustBuild(&exprNode{})
	leafParser = participle.MustBuild(&leafNode{})
)

func parseExpr(src string, vars map[string]*fuzzy.Variable) (rules.Expr, error) {
	var node exprNode
	if err := exprParser.ParseString("", src, &node); err != nil {
		return nil, fmt.Errorf("%w: cannot parse %q: %v", ErrInvalidConfig, src, err)
	}
	return node.build(vars)
}

func parseLeaf(src string) (variable, term string, err error) {
	var node leafNode
	if err := leafParser.ParseString("", src, &node); err != nil {
		return "", "", fmt.Errorf("%w: cannot parse %q: %v", ErrInvalidConfig, src, err)
	}
	return node.Var, node.Term, nil
}

func (n *exprNode) build(vars map[string]*fuzzy.Variable) (rules.Expr, error) {
	exprs := make([]rules.Expr, 0, len(n.Or))
	for _, sub := range n.Or {
		e, err := sub.build(vars)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return rules.Or(exprs...), nil
}

func (n *andNode) build(vars map[string]*fuzzy.Variable) (rules.Expr, error) {
	exprs := make([]rules.Expr, 0, len(n.And))
	for _, sub := range n.And {
		e, err := sub.build(vars)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return rules.And(exprs...), nil
}

func (n *atomNode) build(vars map[string]*fuzzy.Variable) (rules.Expr, error) {
	if n.Group != nil {
		return n.Group.build(vars)
	}
	v, ok := vars[n.Leaf.Var]
	if !ok {
		return nil, fmt.Errorf("%w: unknown variable %q", ErrInvalidConfig, n.Leaf.Var)
	}
	return rules.Is(v, n.Leaf.Term), nil
}
