// Package query turns loosely-typed request parameters into SQL predicates
// and pagination windows for the property search engine.
package query

import "strings"

// Matcher selects how a clause compares its field against its value.
type Matcher int

const (
	// MatchEquals is an exact comparison, used for enum-like fields.
	MatchEquals Matcher = iota
	// MatchSubstringCI is a case-insensitive contains comparison.
	MatchSubstringCI
	// MatchFlag is a contains comparison against the textual form of a
	// stored flag.  The legacy system matched boolean-ish columns with a
	// contains operator; that behavior is kept as-is.
	MatchFlag
)

// Field names the known filterable targets.  Only these can produce
// clauses, so a typo'd query parameter can never silently filter on the
// wrong column.
type Field int

const (
	// FieldActive is the relational properties.is_active column.
	FieldActive Field = iota
	// FieldTitle is the details.title path inside the embedded document.
	FieldTitle
	// FieldListingType is the details.listingType path.
	FieldListingType
	// FieldPropertyType is the details.propertyType path.
	FieldPropertyType
)

// Clause is one predicate: a field, how to match it, and the value.
type Clause struct {
	Field   Field
	Matcher Matcher
	Value   string
}

// Filter is an ordered, request-scoped set of clauses combined with AND.
// The zero value matches every row.
type Filter struct {
	clauses []Clause
	search  string
}

// PropertyFilterBuilder accumulates optional search parameters into a
// Filter.  Empty inputs simply add no clause; nothing here ever fails.
type PropertyFilterBuilder struct {
	f Filter
}

// NewPropertyFilter starts an empty builder.
func NewPropertyFilter() *PropertyFilterBuilder {
	return &PropertyFilterBuilder{}
}

// TitleContains adds a case-insensitive substring clause on details.title.
func (b *PropertyFilterBuilder) TitleContains(s string) *PropertyFilterBuilder {
	if s = strings.TrimSpace(s); s != "" {
		b.f.clauses = append(b.f.clauses, Clause{Field: FieldTitle, Matcher: MatchSubstringCI, Value: s})
	}
	return b
}

// ListingTypeEquals adds an exact-match clause on details.listingType.
func (b *PropertyFilterBuilder) ListingTypeEquals(s string) *PropertyFilterBuilder {
	if s = strings.TrimSpace(s); s != "" {
		b.f.clauses = append(b.f.clauses, Clause{Field: FieldListingType, Matcher: MatchEquals, Value: s})
	}
	return b
}

// PropertyTypeEquals adds an exact-match clause on details.propertyType.
func (b *PropertyFilterBuilder) PropertyTypeEquals(s string) *PropertyFilterBuilder {
	if s = strings.TrimSpace(s); s != "" {
		b.f.clauses = append(b.f.clauses, Clause{Field: FieldPropertyType, Matcher: MatchEquals, Value: s})
	}
	return b
}

// ActiveFlag adds a contains clause on the is_active column.  The stored
// value is compared textually, mirroring the legacy contains-match on
// boolean-ish fields.
func (b *PropertyFilterBuilder) ActiveFlag(s string) *PropertyFilterBuilder {
	if s = strings.TrimSpace(s); s != "" {
		b.f.clauses = append(b.f.clauses, Clause{Field: FieldActive, Matcher: MatchFlag, Value: s})
	}
	return b
}

// Search sets the generic free-text term.  When present, the built filter
// consists of the search clause alone: the legacy engine computed the
// generic and the structured predicates into the same variable and the
// search computation won.  Kept until product confirms a merge is wanted.
func (b *PropertyFilterBuilder) Search(s string) *PropertyFilterBuilder {
	b.f.search = strings.TrimSpace(s)
	return b
}

// Build finalizes the filter.
func (b *PropertyFilterBuilder) Build() Filter {
	if b.f.search != "" {
		return Filter{clauses: []Clause{{Field: FieldTitle, Matcher: MatchSubstringCI, Value: b.f.search}}}
	}
	return Filter{clauses: b.f.clauses}
}

// Clauses returns the ordered clause list.  Empty means match-all.
func (f Filter) Clauses() []Clause {
	return f.clauses
}

// Empty reports whether the filter constrains anything.
func (f Filter) Empty() bool {
	return len(f.clauses) == 0
}

// sqlTarget maps a field to the SQL expression it is matched against.
// Embedded-document fields go through JSON path extraction so a NULL
// document or a missing key yields NULL, which simply fails the match
// instead of erroring.
func sqlTarget(fld Field) string {
	switch fld {
	case FieldActive:
		return "CAST(p.is_active AS CHAR)"
	case FieldTitle:
		return "JSON_UNQUOTE(JSON_EXTRACT(p.details, '$.title'))"
	case FieldListingType:
		return "JSON_UNQUOTE(JSON_EXTRACT(p.details, '$.listingType'))"
	case FieldPropertyType:
		return "JSON_UNQUOTE(JSON_EXTRACT(p.details, '$.propertyType'))"
	}
	return ""
}

// SQL renders the filter as a WHERE condition plus its arguments.  Zero
// clauses render the neutral condition so callers can always interpolate
// the result.
func (f Filter) SQL() (string, []any) {
	if len(f.clauses) == 0 {
		return "1=1", nil
	}
	conds := make([]string, 0, len(f.clauses))
	args := make([]any, 0, len(f.clauses))
	for _, cl := range f.clauses {
		target := sqlTarget(cl.Field)
		switch cl.Matcher {
		case MatchEquals:
			conds = append(conds, target+" = ?")
			args = append(args, cl.Value)
		case MatchSubstringCI:
			conds = append(conds, "LOWER("+target+") LIKE ?")
			args = append(args, "%"+strings.ToLower(cl.Value)+"%")
		case MatchFlag:
			conds = append(conds, target+" LIKE ?")
			args = append(args, "%"+cl.Value+"%")
		}
	}
	return strings.Join(conds, " AND "), args
}
