package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Djberg2/GrndWrkv0/internal/models"
)

func TestCatalogue(t *testing.T) {
	cfg := models.PricingConfig{Services: []models.Service{
		{Name: "Lawn Mowing", BasePrice: 50},
		{Name: ""},
		{Name: "Tree Removal", BasePrice: 150},
	}}

	out := Catalogue(cfg)
	require.Len(t, out, 2)
	assert.Equal(t, "lawn-mowing", out[0].Key)
	assert.Equal(t, "Lawn Mowing", out[0].Label)
	assert.Equal(t, palette[0], out[0].Chip)
	assert.Equal(t, palette[2], out[1].Chip, "colour follows configured position")
}
