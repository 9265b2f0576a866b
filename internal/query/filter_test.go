package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyFilterMatchesAll(t *testing.T) {
	f := NewPropertyFilter().Build()

	assert.True(t, f.Empty())
	cond, args := f.SQL()
	assert.Equal(t, "1=1", cond)
	assert.Empty(t, args)
}

func TestBlankInputsAddNoClause(t *testing.T) {
	f := NewPropertyFilter().
		TitleContains("  ").
		ListingTypeEquals("").
		PropertyTypeEquals("").
		ActiveFlag("").
		Search("").
		Build()

	assert.True(t, f.Empty())
}

func TestTitleContainsIsCaseInsensitiveSubstring(t *testing.T) {
	cond, args := NewPropertyFilter().TitleContains("Lake House").Build().SQL()

	assert.Equal(t, "LOWER(JSON_UNQUOTE(JSON_EXTRACT(p.details, '$.title'))) LIKE ?", cond)
	assert.Equal(t, []any{"%lake house%"}, args)
}

func TestEnumFieldsUseExactMatch(t *testing.T) {
	cond, args := NewPropertyFilter().
		ListingTypeEquals("rent").
		PropertyTypeEquals("apartment").
		Build().SQL()

	assert.Equal(t,
		"JSON_UNQUOTE(JSON_EXTRACT(p.details, '$.listingType')) = ? AND JSON_UNQUOTE(JSON_EXTRACT(p.details, '$.propertyType')) = ?",
		cond)
	assert.Equal(t, []any{"rent", "apartment"}, args)
}

func TestActiveFlagUsesContainsMatch(t *testing.T) {
	// The legacy engine matched boolean-ish columns with a contains
	// operator; that behavior is intentionally preserved.
	cond, args := NewPropertyFilter().ActiveFlag("1").Build().SQL()

	assert.Equal(t, "CAST(p.is_active AS CHAR) LIKE ?", cond)
	assert.Equal(t, []any{"%1%"}, args)
}

func TestClausesCombineWithAnd(t *testing.T) {
	f := NewPropertyFilter().
		TitleContains("villa").
		ListingTypeEquals("sale").
		Build()

	assert.Len(t, f.Clauses(), 2)
	cond, args := f.SQL()
	assert.Contains(t, cond, " AND ")
	assert.Len(t, args, 2)
}

func TestSearchReplacesStructuredClauses(t *testing.T) {
	// The generic search term fully replaces structured clauses built in
	// the same call; kept as observed until product confirms a merge.
	f := NewPropertyFilter().
		TitleContains("villa").
		ListingTypeEquals("sale").
		Search("beach").
		Build()

	clauses := f.Clauses()
	assert.Len(t, clauses, 1)
	assert.Equal(t, FieldTitle, clauses[0].Field)
	assert.Equal(t, MatchSubstringCI, clauses[0].Matcher)
	assert.Equal(t, "beach", clauses[0].Value)

	_, args := f.SQL()
	assert.Equal(t, []any{"%beach%"}, args)
}
