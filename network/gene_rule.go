// SPDX-License-Identifier: MIT

package network

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// GeneRule is a parsed gene-reaction association: an AND/OR expression
// over gene identifiers. AND binds tighter than OR.
//
//	rule   := term { ("or" | "|" | "||") term }
//	term   := factor { ("and" | "&" | "&&") factor }
//	factor := gene | "(" rule ")"
type GeneRule struct {
	root *ruleNode
	src  string
}

type ruleOp int

const (
	opGene ruleOp = iota
	opAnd
	opOr
)

type ruleNode struct {
	op       ruleOp
	gene     string
	children []*ruleNode
}

// ParseGeneRule parses s into a GeneRule.
func ParseGeneRule(s string) (*GeneRule, error) {
	toks, err := tokenizeRule(s)
	if err != nil {
		return nil, err
	}
	p := &ruleParser{toks: toks}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("ParseGeneRule(%q): unexpected %q: %w", s, p.toks[p.pos], ErrGeneRuleSyntax)
	}

	return &GeneRule{root: root, src: strings.TrimSpace(s)}, nil
}

// String returns the rule as written.
func (g *GeneRule) String() string { return g.src }

// Genes returns the sorted, de-duplicated gene ids of the rule.
func (g *GeneRule) Genes() []string {
	var out []string
	var walk func(n *ruleNode)
	walk = func(n *ruleNode) {
		if n.op == opGene {
			out = append(out, n.gene)
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(g.root)
	slices.Sort(out)

	return slices.Compact(out)
}

// Rename returns a copy of g with every gene id passed through fn. The
// copy's String renders the rewritten expression.
func (g *GeneRule) Rename(fn func(string) string) *GeneRule {
	root := renameNode(g.root, fn)

	return &GeneRule{root: root, src: renderRule(root, opOr)}
}

func renameNode(n *ruleNode, fn func(string) string) *ruleNode {
	if n.op == opGene {
		return &ruleNode{op: opGene, gene: fn(n.gene)}
	}
	cp := &ruleNode{op: n.op, children: make([]*ruleNode, len(n.children))}
	for i, c := range n.children {
		cp.children[i] = renameNode(c, fn)
	}

	return cp
}

// renderRule writes n, parenthesised when it binds looser than parent.
func renderRule(n *ruleNode, parent ruleOp) string {
	if n.op == opGene {
		return n.gene
	}
	sep := " or "
	if n.op == opAnd {
		sep = " and "
	}
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = renderRule(c, n.op)
	}
	s := strings.Join(parts, sep)
	if n.op == opOr && parent == opAnd {
		return "(" + s + ")"
	}

	return s
}

// Active reports whether the reaction stays enabled when the genes in
// knocked are deleted (all other genes present).
func (g *GeneRule) Active(knocked map[string]bool) bool {
	return evalRule(g.root, knocked)
}

func evalRule(n *ruleNode, knocked map[string]bool) bool {
	switch n.op {
	case opGene:
		return !knocked[n.gene]
	case opAnd:
		for _, c := range n.children {
			if !evalRule(c, knocked) {
				return false
			}
		}
		return true
	default:
		for _, c := range n.children {
			if evalRule(c, knocked) {
				return true
			}
		}
		return false
	}
}

func tokenizeRule(s string) ([]string, error) {
	var toks []string
	rs := []rune(s)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(' || r == ')':
			toks = append(toks, string(r))
			i++
		case r == '&' || r == '|':
			j := i + 1
			if j < len(rs) && rs[j] == r {
				j++
			}
			if r == '&' {
				toks = append(toks, "and")
			} else {
				toks = append(toks, "or")
			}
			i = j
		case isGeneRune(r):
			j := i
			for j < len(rs) && isGeneRune(rs[j]) {
				j++
			}
			word := string(rs[i:j])
			switch strings.ToLower(word) {
			case "and", "or":
				word = strings.ToLower(word)
			}
			toks = append(toks, word)
			i = j
		default:
			return nil, fmt.Errorf("ParseGeneRule(%q): bad character %q: %w", s, r, ErrGeneRuleSyntax)
		}
	}
	if len(toks) == 0 {
		return nil, fmt.Errorf("ParseGeneRule(%q): empty rule: %w", s, ErrGeneRuleSyntax)
	}

	return toks, nil
}

func isGeneRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("_.:-", r)
}

type ruleParser struct {
	toks []string
	pos  int
}

func (p *ruleParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}

	return ""
}

func (p *ruleParser) parseOr() (*ruleNode, error) {
	return p.parseChain("or", opOr, p.parseAnd)
}

func (p *ruleParser) parseAnd() (*ruleNode, error) {
	return p.parseChain("and", opAnd, p.parseFactor)
}

// parseChain parses next { sep next } and flattens it into one n-ary node.
func (p *ruleParser) parseChain(sep string, op ruleOp, next func() (*ruleNode, error)) (*ruleNode, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}
	if p.peek() != sep {
		return first, nil
	}
	node := &ruleNode{op: op, children: []*ruleNode{first}}
	for p.peek() == sep {
		p.pos++
		child, err := next()
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, child)
	}

	return node, nil
}

func (p *ruleParser) parseFactor() (*ruleNode, error) {
	tok := p.peek()
	switch tok {
	case "":
		return nil, fmt.Errorf("ParseGeneRule: unexpected end of rule: %w", ErrGeneRuleSyntax)
	case "(":
		p.pos++
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("ParseGeneRule: missing ')': %w", ErrGeneRuleSyntax)
		}
		p.pos++
		return n, nil
	case ")", "and", "or":
		return nil, fmt.Errorf("ParseGeneRule: unexpected %q: %w", tok, ErrGeneRuleSyntax)
	default:
		p.pos++
		return &ruleNode{op: opGene, gene: tok}, nil
	}
}
