// Package predicate is a small immutable boolean expression tree over catalog columns.
// An expression can be evaluated in memory against a Row or compiled to a SQL
// fragment with positional "?" placeholders for gorm's Raw/Where.
package predicate

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Column is a qualified column name ("s.width", "p.brand_id").
type Column string

type valueKind uint8

const (
	kindNumber valueKind = iota
	kindString
	kindBool
)

// Value is a typed literal. Numbers are exact decimals so that bolt circle
// pitches compare without float rounding.
type Value struct {
	kind     valueKind
	num      decimal.Decimal
	integral bool
	str      string
	flag     bool
}

func Num(d decimal.Decimal) Value { return Value{kind: kindNumber, num: d} }

func Int(i int64) Value { return Value{kind: kindNumber, num: decimal.NewFromInt(i), integral: true} }

func Str(s string) Value { return Value{kind: kindString, str: s} }

func Bool(b bool) Value { return Value{kind: kindBool, flag: b} }

// Decimal returns the numeric content of v (zero for non-numbers).
func (v Value) Decimal() decimal.Decimal { return v.num }

// Arg is the driver argument bound for v.
func (v Value) Arg() any {
	switch v.kind {
	case kindString:
		return v.str
	case kindBool:
		return v.flag
	}
	if v.integral {
		return v.num.IntPart()
	}
	return v.num
}

func (v Value) String() string {
	switch v.kind {
	case kindString:
		return fmt.Sprintf("%q", v.str)
	case kindBool:
		return fmt.Sprintf("%t", v.flag)
	}
	return v.num.String()
}

// compare returns -1/0/1 and false when the kinds cannot be ordered.
func (v Value) compare(o Value) (int, bool) {
	if v.kind != o.kind {
		return 0, false
	}
	switch v.kind {
	case kindNumber:
		return v.num.Cmp(o.num), true
	case kindString:
		return strings.Compare(v.str, o.str), true
	default:
		if v.flag == o.flag {
			return 0, true
		}
		return 0, false
	}
}

// Row resolves column values for in-memory evaluation. ok=false means NULL.
type Row interface {
	Value(col Column) (v Value, ok bool)
}

// Expr is a boolean predicate.
type Expr interface {
	Eval(r Row) bool
	SQL() (string, []any)
	String() string
}

type op string

const (
	opEq  op = "="
	opGte op = ">="
	opLte op = "<="
)

type cmp struct {
	col Column
	op  op
	val Value
}

func Eq(col Column, v Value) Expr  { return cmp{col: col, op: opEq, val: v} }
func Gte(col Column, v Value) Expr { return cmp{col: col, op: opGte, val: v} }
func Lte(col Column, v Value) Expr { return cmp{col: col, op: opLte, val: v} }

func (c cmp) Eval(r Row) bool {
	got, ok := r.Value(c.col)
	if !ok {
		return false
	}
	res, ok := got.compare(c.val)
	if !ok {
		return false
	}
	switch c.op {
	case opEq:
		return res == 0
	case opGte:
		return res >= 0
	default:
		return res <= 0
	}
}

func (c cmp) SQL() (string, []any) {
	return fmt.Sprintf("%s %s ?", c.col, c.op), []any{c.val.Arg()}
}

func (c cmp) String() string { return fmt.Sprintf("%s %s %s", c.col, c.op, c.val) }

type between struct {
	col    Column
	lo, hi Value
}

// Between is the closed interval lo <= col <= hi.
func Between(col Column, lo, hi Value) Expr { return between{col: col, lo: lo, hi: hi} }

func (b between) Eval(r Row) bool {
	return cmp{col: b.col, op: opGte, val: b.lo}.Eval(r) && cmp{col: b.col, op: opLte, val: b.hi}.Eval(r)
}

func (b between) SQL() (string, []any) {
	return fmt.Sprintf("%s BETWEEN ? AND ?", b.col), []any{b.lo.Arg(), b.hi.Arg()}
}

func (b between) String() string { return fmt.Sprintf("%s BETWEEN %s AND %s", b.col, b.lo, b.hi) }

type in struct {
	col  Column
	vals []Value
}

// In is set membership. An empty set matches nothing.
func In(col Column, vals ...Value) Expr {
	return in{col: col, vals: append([]Value(nil), vals...)}
}

func (s in) Eval(r Row) bool {
	for _, v := range s.vals {
		if (cmp{col: s.col, op: opEq, val: v}).Eval(r) {
			return true
		}
	}
	return false
}

func (s in) SQL() (string, []any) {
	if len(s.vals) == 0 {
		return "1 = 0", nil
	}
	marks := make([]string, len(s.vals))
	args := make([]any, len(s.vals))
	for i, v := range s.vals {
		marks[i] = "?"
		args[i] = v.Arg()
	}
	return fmt.Sprintf("%s IN (%s)", s.col, strings.Join(marks, ", ")), args
}

func (s in) String() string {
	parts := make([]string, len(s.vals))
	for i, v := range s.vals {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s IN (%s)", s.col, strings.Join(parts, ", "))
}

type notNull struct{ col Column }

func NotNull(col Column) Expr { return notNull{col: col} }

func (n notNull) Eval(r Row) bool {
	_, ok := r.Value(n.col)
	return ok
}

func (n notNull) SQL() (string, []any) { return fmt.Sprintf("%s IS NOT NULL", n.col), nil }

func (n notNull) String() string { return fmt.Sprintf("%s IS NOT NULL", n.col) }

type junction struct {
	and   bool
	parts []Expr
}

// And is the conjunction of parts. An empty And is always true.
func And(parts ...Expr) Expr { return join(true, parts) }

// Or is the disjunction of parts. An empty Or is always false.
func Or(parts ...Expr) Expr { return join(false, parts) }

func join(and bool, parts []Expr) Expr {
	flat := flatten(and, parts)
	if len(flat) == 1 {
		return flat[0]
	}
	return junction{and: and, parts: flat}
}

// flatten copies parts, splicing nested junctions of the same kind and
// dropping nils, so callers can never mutate a built tree.
func flatten(and bool, parts []Expr) []Expr {
	out := make([]Expr, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			continue
		}
		if j, ok := p.(junction); ok && j.and == and {
			out = append(out, j.parts...)
			continue
		}
		out = append(out, p)
	}
	return out
}

func (j junction) Eval(r Row) bool {
	for _, p := range j.parts {
		if p.Eval(r) != j.and {
			return !j.and
		}
	}
	return j.and
}

func (j junction) SQL() (string, []any) {
	if len(j.parts) == 0 {
		if j.and {
			return "1 = 1", nil
		}
		return "1 = 0", nil
	}
	sep := " OR "
	if j.and {
		sep = " AND "
	}
	clauses := make([]string, 0, len(j.parts))
	var args []any
	for _, p := range j.parts {
		s, a := p.SQL()
		if _, nested := p.(junction); nested {
			s = "(" + s + ")"
		}
		clauses = append(clauses, s)
		args = append(args, a...)
	}
	return strings.Join(clauses, sep), args
}

func (j junction) String() string {
	s, _ := j.SQL()
	if len(j.parts) == 0 {
		return s
	}
	parts := make([]string, len(j.parts))
	for i, p := range j.parts {
		parts[i] = p.String()
		if _, nested := p.(junction); nested {
			parts[i] = "(" + parts[i] + ")"
		}
	}
	if j.and {
		return strings.Join(parts, " AND ")
	}
	return strings.Join(parts, " OR ")
}
