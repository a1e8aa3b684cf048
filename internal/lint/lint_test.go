package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/content"
)

func cleanPage() *content.Page {
	return &content.Page{
		URL:             "/services/water-damage/sydney",
		Title:           "Water Damage Restoration Sydney NSW | 24/7 Emergency Response",
		MetaDescription: "Professional water damage restoration in Sydney, NSW.",
		H1:              "Water Damage Restoration Services in Sydney",
		Sections: []content.Section{
			{Name: content.SectionIntro, HTML: "<p>Certified crews across Sydney.</p>"},
			{Name: content.SectionContact, HTML: "<p>Call 1300 814 870.</p>"},
		},
	}
}

func TestCleanPagePasses(t *testing.T) {
	assert.Empty(t, Page(cleanPage()))
}

func TestLeakedTokenDetected(t *testing.T) {
	p := cleanPage()
	p.Sections[0].HTML = "<p>Certified crews across {City}.</p>"

	findings := Page(p)
	require.Len(t, findings, 1)
	assert.Equal(t, content.SectionIntro, findings[0].Section)
	assert.Contains(t, findings[0].Message, "{City}")
}

func TestLeakedTokenInTitleDetected(t *testing.T) {
	p := cleanPage()
	p.Title = "{Service} Sydney NSW"

	findings := Page(p)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "title")
}

func TestEmptySectionDetected(t *testing.T) {
	p := cleanPage()
	p.Sections[1].HTML = "   "

	findings := Page(p)
	require.Len(t, findings, 1)
	assert.Equal(t, content.SectionContact, findings[0].Section)
	assert.Contains(t, findings[0].Message, "empty")
}

func TestEmptyMetaDetected(t *testing.T) {
	p := cleanPage()
	p.MetaDescription = ""

	findings := Page(p)
	require.Len(t, findings, 1)
	assert.Contains(t, findings[0].Message, "metaDescription")
}

func TestMismatchedTagsDetected(t *testing.T) {
	p := cleanPage()
	p.Sections[0].HTML = "<ul><li>one<li>two</li>"

	findings := Page(p)
	require.NotEmpty(t, findings)
	assert.Contains(t, findings[0].Message, "HTML")
}

func TestAssembledCatalogPagesAreClean(t *testing.T) {
	c, err := catalog.Load("")
	require.NoError(t, err)

	for _, loc := range c.Locations() {
		for _, svc := range c.Services() {
			page, err := content.Assemble(loc, svc, "https://disasterrecovery.com.au", content.AssembleOptions{MaxSuburbs: 6})
			require.NoError(t, err)
			assert.Empty(t, Page(page), "%s/%s", svc.Slug, loc.Slug)
		}
	}
}
