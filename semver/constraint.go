package semver

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// A whole version with optional prerelease and build suffixes lexes as
// one token, so the hyphen of "1.0.0 - 2.0.0" stays a separate token
// while the hyphen of "0.8.0-beta" does not.
var rangeLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "Version", Pattern: `[0-9xX*]+(\.[0-9xX*]+)?(\.[0-9xX*]+)?(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`},
		{Name: "Operator", Pattern: `\^|~|<=|>=|<|>|=`},
		{Name: "Or", Pattern: `\|\|`},
		{Name: "Hyphen", Pattern: `-`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
	},
})

type rangeSet struct {
	Ranges []*rangeExpr `parser:"@@ { \"||\" @@ }"`
}

type rangeExpr struct {
	Hyphen  *hyphenRange   `parser:"  @@"`
	Simples []*simpleRange `parser:"| @@ { @@ }"`
}

type hyphenRange struct {
	Lower string `parser:"@Version \"-\""`
	Upper string `parser:"@Version"`
}

type simpleRange struct {
	Operator string `parser:"[ @(\"^\" | \"~\" | \"<=\" | \">=\" | \"<\" | \">\" | \"=\") ]"`
	Version  string `parser:"@Version"`
}

var rangeParser = participle.MustBuild[rangeSet](
	participle.Lexer(rangeLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(3),
)

// Constraint is a compiled version range. A version matches when every
// comparator of at least one alternative accepts it.
type Constraint struct {
	raw  string
	sets [][]comparator
}

type comparator struct {
	op string
	v  Version
}

func (c comparator) matches(v Version) bool {
	cmp := v.Compare(c.v)
	switch c.op {
	case "<":
		return cmp < 0
	case "<=":
		return cmp <= 0
	case ">":
		return cmp > 0
	case ">=":
		return cmp >= 0
	}
	return cmp == 0
}

// Parse compiles a constraint expression such as "^0.8.0" or
// ">=0.6.0 <0.8.0 || 0.9.x". An empty expression matches every
// version.
func Parse(expr string) (*Constraint, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return &Constraint{raw: expr, sets: [][]comparator{nil}}, nil
	}
	set, err := rangeParser.ParseString("", trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid version constraint %q: %w", expr, err)
	}
	c := &Constraint{raw: expr}
	for _, r := range set.Ranges {
		comps, err := resolveRange(r)
		if err != nil {
			return nil, fmt.Errorf("invalid version constraint %q: %w", expr, err)
		}
		c.sets = append(c.sets, comps)
	}
	return c, nil
}

// MustParse is Parse for expressions known to be valid, panicking on
// error.
func MustParse(expr string) *Constraint {
	c, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches reports whether the version satisfies the constraint.
// Prerelease versions take part in ordering like any other version.
func (c *Constraint) Matches(v Version) bool {
	for _, set := range c.sets {
		if matchesAll(set, v) {
			return true
		}
	}
	return false
}

func matchesAll(set []comparator, v Version) bool {
	for _, comp := range set {
		if !comp.matches(v) {
			return false
		}
	}
	return true
}

// String returns the expression the constraint was parsed from.
func (c *Constraint) String() string { return c.raw }

func resolveRange(r *rangeExpr) ([]comparator, error) {
	if r.Hyphen != nil {
		return resolveHyphen(r.Hyphen)
	}
	var comps []comparator
	for _, s := range r.Simples {
		resolved, err := resolveSimple(s)
		if err != nil {
			return nil, err
		}
		comps = append(comps, resolved...)
	}
	return comps, nil
}

// resolveHyphen fills the lower bound down and, when the upper bound is
// partial, lifts it past everything it covers: "1.2 - 2.3" means
// >=1.2.0 <2.4.0 while "1.2.0 - 2.3.4" keeps the inclusive upper end.
func resolveHyphen(h *hyphenRange) ([]comparator, error) {
	lower, err := parsePartial(h.Lower)
	if err != nil {
		return nil, err
	}
	upper, err := parsePartial(h.Upper)
	if err != nil {
		return nil, err
	}
	comps := []comparator{{op: ">=", v: lower.version()}}
	switch {
	case upper.precision == 3:
		comps = append(comps, comparator{op: "<=", v: upper.version()})
	case upper.precision > 0:
		comps = append(comps, comparator{op: "<", v: upper.bump()})
	}
	return comps, nil
}

func resolveSimple(s *simpleRange) ([]comparator, error) {
	p, err := parsePartial(s.Version)
	if err != nil {
		return nil, err
	}
	switch s.Operator {
	case "", "=":
		return exactRange(p), nil
	case "^":
		if p.precision == 0 {
			return nil, nil
		}
		return []comparator{{op: ">=", v: p.version()}, {op: "<", v: caretUpper(p)}}, nil
	case "~":
		if p.precision == 0 {
			return nil, nil
		}
		return []comparator{{op: ">=", v: p.version()}, {op: "<", v: tildeUpper(p)}}, nil
	case ">=":
		return []comparator{{op: ">=", v: p.version()}}, nil
	case "<":
		return []comparator{{op: "<", v: p.version()}}, nil
	case ">":
		if p.precision < 3 {
			// ">0.8" excludes all of 0.8.x, so it lifts to the next minor.
			return []comparator{{op: ">=", v: p.bump()}}, nil
		}
		return []comparator{{op: ">", v: p.version()}}, nil
	case "<=":
		if p.precision < 3 {
			return []comparator{{op: "<", v: p.bump()}}, nil
		}
		return []comparator{{op: "<=", v: p.version()}}, nil
	}
	return nil, fmt.Errorf("unsupported operator %q", s.Operator)
}

// exactRange turns a bare partial into its covered interval: "1.2" is
// >=1.2.0 <1.3.0, a full "1.2.3" pins that one version and "*" covers
// everything.
func exactRange(p partial) []comparator {
	switch p.precision {
	case 0:
		return nil
	case 3:
		return []comparator{{op: "=", v: p.version()}}
	}
	return []comparator{{op: ">=", v: p.version()}, {op: "<", v: p.bump()}}
}

// caretUpper bounds a caret range at the next change of the leftmost
// nonzero component: ^1.2.3 stays below 2.0.0, ^0.8.1 below 0.9.0 and
// ^0.0.3 below 0.0.4.
func caretUpper(p partial) Version {
	switch {
	case p.major != 0 || p.precision == 1:
		return Version{Major: p.major + 1}
	case p.minor != 0 || p.precision == 2:
		return Version{Major: p.major, Minor: p.minor + 1}
	}
	return Version{Major: p.major, Minor: p.minor, Patch: p.patch + 1}
}

// tildeUpper bounds a tilde range at the next minor when one is given,
// otherwise at the next major: ~1.2.3 stays below 1.3.0, ~1 below
// 2.0.0.
func tildeUpper(p partial) Version {
	if p.precision <= 1 {
		return Version{Major: p.major + 1}
	}
	return Version{Major: p.major, Minor: p.minor + 1}
}
