package options

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Renewable Energy", Capitalize("renewable energy"))
	assert.Equal(t, "Ai", Capitalize("AI"))
	assert.Equal(t, "Civil  Engineering", Capitalize("civil  engineering"))
	assert.Equal(t, "École Polytechnique", Capitalize("école polytechnique"))
	assert.Equal(t, "", Capitalize(""))
}

func TestCapitalizedOption(t *testing.T) {
	opt := Capitalized("machine learning")
	assert.Equal(t, "Machine Learning", opt.Label)
	assert.Equal(t, "machine learning", opt.Value)
}

func TestSortPrefixFirst(t *testing.T) {
	opts := []Option{
		{Value: "renewable energy"},
		{Value: "energy storage"},
		{Value: "bioenergy"},
		{Value: "energy"},
	}
	sortPrefixFirst(opts, "ener")

	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	assert.Equal(t, []string{"energy", "energy storage", "bioenergy", "renewable energy"}, values)
}
