package query

import (
	sq "github.com/Masterminds/squirrel"
)

// Predicate is a condition over static columns. Value positions render as
// placeholders.
type Predicate interface {
	sqlizer(qualify bool) sq.Sqlizer
}

func render(p Predicate, qualify bool) sq.Sqlizer {
	if p == nil {
		return nil
	}
	return p.sqlizer(qualify)
}

type comparison struct {
	col Column
	op  string
}

func (c comparison) sqlizer(qualify bool) sq.Sqlizer {
	return sq.Expr(c.col.render(qualify) + " " + c.op + " ?")
}

// Eq matches col = ?.
func Eq(col Column) Predicate { return comparison{col: col, op: "="} }

// NotEq matches col <> ?.
func NotEq(col Column) Predicate { return comparison{col: col, op: "<>"} }

// Lt matches col < ?.
func Lt(col Column) Predicate { return comparison{col: col, op: "<"} }

// Le matches col <= ?.
func Le(col Column) Predicate { return comparison{col: col, op: "<="} }

// Gt matches col > ?.
func Gt(col Column) Predicate { return comparison{col: col, op: ">"} }

// Ge matches col >= ?.
func Ge(col Column) Predicate { return comparison{col: col, op: ">="} }

type nullCheck struct {
	col Column
	not bool
}

func (n nullCheck) sqlizer(qualify bool) sq.Sqlizer {
	if n.not {
		return sq.Expr(n.col.render(qualify) + " IS NOT NULL")
	}
	return sq.Expr(n.col.render(qualify) + " IS NULL")
}

// IsNull matches col IS NULL. It binds no value.
func IsNull(col Column) Predicate { return nullCheck{col: col} }

// NotNull matches col IS NOT NULL. It binds no value.
func NotNull(col Column) Predicate { return nullCheck{col: col, not: true} }

type columnsEqual struct {
	left, right Column
}

func (c columnsEqual) sqlizer(bool) sq.Sqlizer {
	return sq.Expr(c.left.Qualified() + " = " + c.right.Qualified())
}

// On compares two columns for a join. It is always table-qualified and binds
// no value.
func On(left, right Column) Predicate { return columnsEqual{left: left, right: right} }

type group struct {
	any   bool
	preds []Predicate
}

func (g group) sqlizer(qualify bool) sq.Sqlizer {
	parts := make([]sq.Sqlizer, 0, len(g.preds))
	for _, p := range g.preds {
		if s := render(p, qualify); s != nil {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	if g.any {
		return sq.Or(parts)
	}
	return sq.And(parts)
}

// All holds when every predicate holds.
func All(preds ...Predicate) Predicate { return group{preds: preds} }

// Any holds when at least one predicate holds.
func Any(preds ...Predicate) Predicate { return group{any: true, preds: preds} }
