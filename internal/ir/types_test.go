package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraitSpecConstLookup(t *testing.T) {
	trait := TraitSpec{
		Name: "Shape",
		Consts: []TraitConst{
			{Name: "Sides", Type: "int"},
			{Name: "Label", Type: "string", Default: `"shape"`},
		},
	}

	c, ok := trait.Const("Label")
	require.True(t, ok)
	assert.Equal(t, "string", c.Type)
	assert.Equal(t, `"shape"`, c.Default)

	_, ok = trait.Const("Missing")
	assert.False(t, ok)
}

func TestImplSpecConstLookup(t *testing.T) {
	impl := ImplSpec{
		Name: "Square",
		Consts: []ConstDecl{
			{Name: "Sides", Type: "int", Value: "4"},
		},
	}

	c, ok := impl.Const("Sides")
	require.True(t, ok)
	assert.Equal(t, "4", c.Value)

	_, ok = impl.Const("Sides2")
	assert.False(t, ok)
}

func TestImplSpecJSONOmitsEmptyTrait(t *testing.T) {
	data, err := json.Marshal(ImplSpec{
		Name:   "Color",
		Consts: []ConstDecl{{Name: "Red", Type: "string", Value: `"#ff0000"`}},
	})
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"trait"`)
}
