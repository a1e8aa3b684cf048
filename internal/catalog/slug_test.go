package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Gold Coast", "gold-coast"},
		{"Water Damage Restoration", "water-damage-restoration"},
		{"  spaced   out  ", "spaced-out"},
		{"Café Noosa", "cafe-noosa"},
		{"AAMI", "aami"},
		{"DIY vs Professional", "diy-vs-professional"},
		{"S500/S520", "s500-s520"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestValidateRejectsUnsafeLocationSlug(t *testing.T) {
	dir := t.TempDir()
	bad := `locations:
  - slug: Gold Coast
    city: Gold Coast
    state: QLD
    population: 640000
    climate: Humid subtropical
    postcode: "4217"
    suburbs: [Surfers Paradise, Southport]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locations.yaml"), []byte(bad), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Equal(t, builderrors.CategoryCatalog, builderrors.CategoryOf(err))
	assert.Contains(t, err.Error(), "slug is not URL-safe")
}

func TestValidateRejectsUnsafeServiceSlug(t *testing.T) {
	dir := t.TempDir()
	bad := `services:
  - slug: Sewage_Cleanup
    label: Sewage Cleanup
    cost_range: $1,500-$12,000
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "services.yaml"), []byte(bad), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug is not URL-safe")
}
