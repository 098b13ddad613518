package repository

import (
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/bookalchemy/internal/database"
)

// Query describes a read: projected columns, joins, AND-ed predicates and order keys.
// The zero Query selects every row of the repository's table in storage order.
type Query struct {
	Columns    []string
	Joins      []string
	Predicates []Predicate
	Orders     []Order
}

// Predicate is a single SQL condition with its bound arguments.
type Predicate struct {
	SQL  string
	Args []any
}

// Order is a single ORDER BY key.
type Order struct {
	Column string
	Desc   bool
}

// Select returns a copy of q projecting the given columns.
func (q Query) Select(columns ...string) Query {
	q.Columns = append(append([]string(nil), q.Columns...), columns...)
	return q
}

// Join returns a copy of q with an extra raw JOIN clause.
func (q Query) Join(clause string) Query {
	q.Joins = append(append([]string(nil), q.Joins...), clause)
	return q
}

// Where returns a copy of q with additional predicates. Empty predicates are dropped.
func (q Query) Where(predicates ...Predicate) Query {
	out := append([]Predicate(nil), q.Predicates...)
	for _, p := range predicates {
		if p.SQL != "" {
			out = append(out, p)
		}
	}
	q.Predicates = out
	return q
}

// OrderBy returns a copy of q with additional order keys.
func (q Query) OrderBy(orders ...Order) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), orders...)
	return q
}

// Scope renders q onto a gorm statement.
func (q Query) Scope() func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(q.Columns) > 0 {
			db = db.Select(q.Columns)
		}
		for _, j := range q.Joins {
			db = db.Joins(j)
		}
		for _, p := range q.Predicates {
			db = db.Where(p.SQL, p.Args...)
		}
		for _, o := range q.Orders {
			if o.Desc {
				db = db.Order(o.Column + " DESC")
			} else {
				db = db.Order(o.Column + " ASC")
			}
		}
		return db
	}
}

// Eq matches rows whose column equals value.
func Eq(column string, value any) Predicate {
	return Predicate{SQL: column + " = ?", Args: []any{value}}
}

// ContainsFold matches rows where any of the columns contains term as a literal
// substring, ignoring case. An empty term yields an empty predicate, which
// Query.Where drops.
func ContainsFold(term string, columns ...string) Predicate {
	if term == "" || len(columns) == 0 {
		return Predicate{}
	}

	pattern := "%" + escapeLike(database.Casefold(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, column := range columns {
		clauses[i] = "casefold(" + column + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}

	return Predicate{
		SQL:  "(" + strings.Join(clauses, " OR ") + ")",
		Args: args,
	}
}

// Asc orders by column ascending.
func Asc(column string) Order {
	return Order{Column: column}
}

// Desc orders by column descending.
func Desc(column string) Order {
	return Order{Column: column, Desc: true}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
