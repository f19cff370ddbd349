// Package query builds parameterized SQL from static table and column
// descriptors. Every value position is rendered as a "?" placeholder; callers
// pass the values to the gateway in placeholder order. No caller-supplied
// value is ever formatted into the statement text.
package query

import (
	"errors"

	sq "github.com/Masterminds/squirrel"
)

var (
	// ErrNoTable is returned when a statement has no target table.
	ErrNoTable = errors.New("query: table is required")
	// ErrNoColumns is returned when a statement needs columns and has none.
	ErrNoColumns = errors.New("query: at least one column is required")
)

// placeholder renders a bare positional parameter and binds nothing.
var placeholder = sq.Expr("?")

// Table is a static table identifier.
type Table string

// Col returns a column descriptor belonging to t.
func (t Table) Col(name string) Column {
	return Column{Table: t, Name: name}
}

// Column is a static column identifier.
type Column struct {
	Table Table
	Name  string
}

// Qualified returns the table-qualified column name.
func (c Column) Qualified() string {
	return string(c.Table) + "." + c.Name
}

func (c Column) render(qualify bool) string {
	if qualify {
		return c.Qualified()
	}
	return c.Name
}

// Insert describes an INSERT with one placeholder per column.
type Insert struct {
	Table   Table
	Columns []Column
}

// SQL renders the statement.
func (i Insert) SQL() (string, error) {
	if i.Table == "" {
		return "", ErrNoTable
	}
	if len(i.Columns) == 0 {
		return "", ErrNoColumns
	}
	names := make([]string, len(i.Columns))
	values := make([]any, len(i.Columns))
	for k, c := range i.Columns {
		names[k] = c.Name
		values[k] = placeholder
	}
	stmt, _, err := sq.Insert(string(i.Table)).Columns(names...).Values(values...).ToSql()
	return stmt, err
}

// Join is one INNER JOIN with an explicit ON predicate.
type Join struct {
	Table Table
	On    Predicate
}

// Select describes a SELECT. When Joins is non-empty every column and
// predicate is rendered table-qualified.
type Select struct {
	From     Table
	Joins    []Join
	Columns  []Column
	Where    Predicate
	Distinct bool
	OrderBy  []Column
	// Desc sorts every OrderBy column descending.
	Desc  bool
	Limit uint64
}

// SQL renders the statement.
func (s Select) SQL() (string, error) {
	if s.From == "" {
		return "", ErrNoTable
	}
	if len(s.Columns) == 0 {
		return "", ErrNoColumns
	}
	qualify := len(s.Joins) > 0

	cols := make([]string, len(s.Columns))
	for k, c := range s.Columns {
		if qualify {
			cols[k] = c.Qualified() + " AS " + c.Name
		} else {
			cols[k] = c.Name
		}
	}

	b := sq.Select(cols...).From(string(s.From))
	if s.Distinct {
		b = b.Distinct()
	}
	for _, j := range s.Joins {
		if j.Table == "" {
			return "", ErrNoTable
		}
		on, _, err := renderSQL(j.On, true)
		if err != nil {
			return "", err
		}
		clause := string(j.Table)
		if on != "" {
			clause += " ON " + on
		}
		b = b.InnerJoin(clause)
	}
	if where := render(s.Where, qualify); where != nil {
		b = b.Where(where)
	}
	if len(s.OrderBy) > 0 {
		order := make([]string, len(s.OrderBy))
		for k, c := range s.OrderBy {
			order[k] = c.render(qualify)
			if s.Desc {
				order[k] += " DESC"
			}
		}
		b = b.OrderBy(order...)
	}
	if s.Limit > 0 {
		b = b.Limit(s.Limit)
	}

	stmt, _, err := b.ToSql()
	return stmt, err
}

// Update describes an UPDATE whose SET clauses take one placeholder each, in
// the order given.
type Update struct {
	Table Table
	Set   []Column
	Where Predicate
}

// SQL renders the statement. A nil Where updates every row.
func (u Update) SQL() (string, error) {
	if u.Table == "" {
		return "", ErrNoTable
	}
	if len(u.Set) == 0 {
		return "", ErrNoColumns
	}
	b := sq.Update(string(u.Table))
	for _, c := range u.Set {
		b = b.Set(c.Name, placeholder)
	}
	if where := render(u.Where, false); where != nil {
		b = b.Where(where)
	}
	stmt, _, err := b.ToSql()
	return stmt, err
}

// Delete describes a DELETE.
type Delete struct {
	Table Table
	Where Predicate
}

// SQL renders the statement. A nil Where deletes every row.
func (d Delete) SQL() (string, error) {
	if d.Table == "" {
		return "", ErrNoTable
	}
	b := sq.Delete(string(d.Table))
	if where := render(d.Where, false); where != nil {
		b = b.Where(where)
	}
	stmt, _, err := b.ToSql()
	return stmt, err
}

func renderSQL(p Predicate, qualify bool) (string, []any, error) {
	s := render(p, qualify)
	if s == nil {
		return "", nil, nil
	}
	return s.ToSql()
}
