// Package schema declares the three dataset tables the pipeline moves through
// the system: customers, products, and orders. The column lists are the single
// source of truth for extraction coercion, the loader's DDL, and the secondary
// indexes that back the reporting queries.
package schema

// Kind is the logical column type. Backends map kinds onto their own SQL
// type names.
type Kind string

const (
	KindInt  Kind = "int"
	KindReal Kind = "real"
	KindText Kind = "text"
	// KindDate columns arrive as "2006-01-02" strings, are coerced to
	// time.Time during transform, and are stored back as date text.
	KindDate Kind = "date"
)

// Column describes one column of a dataset table.
type Column struct {
	Name    string
	Kind    Kind
	NotNull bool

	// Derived marks columns added by the transform stage; they are absent
	// from the generated source files but present in the loaded tables.
	Derived bool
}

// Table pairs a table name with its ordered column set.
type Table struct {
	Name    string
	Columns []Column
}

// Customers is the customer table: base columns as generated, plus the
// transform-derived days_since_signup.
var Customers = Table{
	Name: "customers",
	Columns: []Column{
		{Name: "customer_id", Kind: KindInt, NotNull: true},
		{Name: "name", Kind: KindText, NotNull: true},
		{Name: "email", Kind: KindText, NotNull: true},
		{Name: "signup_date", Kind: KindDate, NotNull: true},
		{Name: "location", Kind: KindText, NotNull: true},
		{Name: "age", Kind: KindInt, NotNull: true},
		{Name: "customer_segment", Kind: KindText, NotNull: true},
		{Name: "days_since_signup", Kind: KindInt, Derived: true},
	},
}

// Products is the product catalog table plus the derived profit_margin
// percentage.
var Products = Table{
	Name: "products",
	Columns: []Column{
		{Name: "product_id", Kind: KindInt, NotNull: true},
		{Name: "name", Kind: KindText, NotNull: true},
		{Name: "category", Kind: KindText, NotNull: true},
		{Name: "price", Kind: KindReal, NotNull: true},
		{Name: "cost", Kind: KindReal, NotNull: true},
		{Name: "stock_quantity", Kind: KindInt, NotNull: true},
		{Name: "profit_margin", Kind: KindReal, Derived: true},
	},
}

// Orders is the order table plus the derived month/year buckets.
var Orders = Table{
	Name: "orders",
	Columns: []Column{
		{Name: "order_id", Kind: KindInt, NotNull: true},
		{Name: "customer_id", Kind: KindInt, NotNull: true},
		{Name: "order_date", Kind: KindDate, NotNull: true},
		{Name: "total_amount", Kind: KindReal, NotNull: true},
		{Name: "status", Kind: KindText, NotNull: true},
		{Name: "order_month", Kind: KindText, Derived: true},
		{Name: "order_year", Kind: KindInt, Derived: true},
	},
}

// Tables lists every dataset table in load order.
func Tables() []Table { return []Table{Customers, Products, Orders} }

// Base returns the non-derived columns, i.e. the columns expected in the
// source files.
func (t Table) Base() []Column {
	out := make([]Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if !c.Derived {
			out = append(out, c)
		}
	}
	return out
}

// ColumnNames returns the ordered names of all columns.
func (t Table) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
