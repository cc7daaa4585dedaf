package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name" validate:"notblank,max=5"`
	Email string `json:"email" validate:"required,email"`
	ISBN  string `validate:"isbn_digits"`
	Score float64
}

func TestStruct_ReportsFieldsByJSONName(t *testing.T) {
	err := Struct(sample{Name: "  ", Email: "nope", ISBN: "12-34"})
	require.Error(t, err)

	fields, ok := Fields(err)
	require.True(t, ok)
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be a valid email address", fields["email"])
	assert.Contains(t, fields["ISBN"], "10 or 13 digits")
	assert.Contains(t, err.Error(), "validation failed")
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "ok", Email: "a@b.io", ISBN: "978-0123456789"}))
}

func TestCollect_MergesExtraRules(t *testing.T) {
	err := Collect(sample{Name: "ok", Email: "a@b.io", ISBN: "0123456789", Score: -1}, func(fields map[string]string) {
		fields["score"] = "must be greater than or equal to 0"
	})
	fields, ok := Fields(err)
	require.True(t, ok)
	assert.Len(t, fields, 1)

	require.NoError(t, Collect(sample{Name: "ok", Email: "a@b.io", ISBN: "0123456789"}, func(map[string]string) {}))
}

type measured struct {
	Rating float64 `validate:"decimals=1"`
	GPA    float64 `validate:"decimals=2"`
}

func TestStruct_DecimalPlaces(t *testing.T) {
	require.NoError(t, Struct(measured{Rating: 4.5, GPA: 3.95}))
	require.NoError(t, Struct(measured{Rating: 0.1, GPA: 0.07}))

	err := Struct(measured{Rating: 4.55, GPA: 3.955})
	fields, ok := Fields(err)
	require.True(t, ok)
	assert.Equal(t, "must have at most 1 decimal places", fields["Rating"])
	assert.Equal(t, "must have at most 2 decimal places", fields["GPA"])
}

func TestFields_PlainError(t *testing.T) {
	_, ok := Fields(errors.New("plain"))
	assert.False(t, ok)
}

func TestValidISBN(t *testing.T) {
	cases := map[string]bool{
		"978-0123456789": true,
		"0-306-40615-2":  true,
		"9780306406157":  true,
		"12345":          false,
		"978-012345678X": false,
		"":               false,
	}
	for isbn, want := range cases {
		assert.Equal(t, want, ValidISBN(isbn), isbn)
	}
}
