package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildErrorFormatting(t *testing.T) {
	err := New(CategoryCatalog, SeverityFatal, "catalog validation failed").
		WithContext("kind", "locations").
		WithContext("id", "sydney")

	assert.Contains(t, err.Error(), "catalog")
	assert.Contains(t, err.Error(), "fatal")
	assert.Contains(t, err.Error(), "catalog validation failed")
	assert.True(t, err.IsFatal())
}

func TestBuildErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("yaml: line 3: mapping values are not allowed")
	err := Wrap(cause, CategoryCatalog, SeverityFatal, "catalog load failed")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), cause.Error())
}

func TestCategoryOf(t *testing.T) {
	assert.Equal(t, CategoryManifest, CategoryOf(ManifestOverflow(50001, 50000)))
	assert.Equal(t, CategoryInternal, CategoryOf(errors.New("plain")))
}

func TestCLIAdapterExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil error", nil, 0},
		{"catalog validation", CatalogValidation("services", "water-damage", "duplicate id"), 2},
		{"template render", TemplateRender("/services/water-damage/sydney", "city"), 3},
		{"structured data", StructuredData("LocalBusiness", "addressLocality"), 3},
		{"manifest overflow", ManifestOverflow(100000, 50000), 4},
		{"config missing", ConfigNotFound("config.yaml"), 7},
		{"sink write", SinkWrite("public/sitemap.xml", errors.New("disk full")), 11},
		{"plain error", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIAdapterFormat(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)
	msg := adapter.FormatError(DuplicateURL("/services/water-damage/sydney"))
	assert.Contains(t, msg, "duplicate page URL")
	assert.Contains(t, msg, "/services/water-damage/sydney")

	verbose := NewCLIErrorAdapter(true, nil)
	assert.Contains(t, verbose.FormatError(DuplicateURL("/x")), "manifest (fatal)")
}
