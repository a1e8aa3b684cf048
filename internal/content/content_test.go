package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/config"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
)

func manifestPolicy() config.InclusionPolicy {
	return config.Default().Policy
}

const testOrigin = "https://disasterrecovery.com.au"

func defaultCatalogs(t *testing.T) *catalog.Catalogs {
	t.Helper()
	c, err := catalog.Load("")
	require.NoError(t, err)
	return c
}

func sydneyWaterDamage(t *testing.T) (catalog.Location, catalog.Service) {
	t.Helper()
	c := defaultCatalogs(t)
	loc, ok := c.Location("sydney")
	require.True(t, ok)
	svc, ok := c.Service("water-damage")
	require.True(t, ok)
	return loc, svc
}

func TestAssembleSydneyWaterDamage(t *testing.T) {
	loc, svc := sydneyWaterDamage(t)

	page, err := Assemble(loc, svc, testOrigin, AssembleOptions{MaxSuburbs: 6})
	require.NoError(t, err)

	assert.Equal(t, "Water Damage Restoration Sydney NSW | 24/7 Emergency Response", page.Title)
	assert.Equal(t, "Water Damage Restoration Services in Sydney", page.H1)
	assert.Equal(t, "/services/water-damage/sydney", page.URL)
	assert.Contains(t, page.MetaDescription, "Sydney")
	assert.Contains(t, page.MetaDescription, "NSW")
	assert.Len(t, page.StructuredData, 2)
}

func TestAssembleAllSectionsNonEmpty(t *testing.T) {
	c := defaultCatalogs(t)

	for _, loc := range c.Locations() {
		for _, svc := range c.Services() {
			page, err := Assemble(loc, svc, testOrigin, AssembleOptions{MaxSuburbs: 6})
			require.NoError(t, err, "%s/%s", svc.Slug, loc.Slug)

			require.Len(t, page.Sections, len(CanonicalSections))
			for i, kind := range CanonicalSections {
				assert.Equal(t, kind, page.Sections[i].Name)
				assert.NotEmpty(t, page.Sections[i].HTML,
					"section %s empty for %s/%s", kind, svc.Slug, loc.Slug)
			}
		}
	}
}

func TestAssembleDeterministic(t *testing.T) {
	loc, svc := sydneyWaterDamage(t)
	opts := AssembleOptions{MaxSuburbs: 6}

	a, err := Assemble(loc, svc, testOrigin, opts)
	require.NoError(t, err)
	b, err := Assemble(loc, svc, testOrigin, opts)
	require.NoError(t, err)

	aj, err := a.Marshal()
	require.NoError(t, err)
	bj, err := b.Marshal()
	require.NoError(t, err)
	assert.Equal(t, aj, bj)
}

func TestAssembleNoUnresolvedTokens(t *testing.T) {
	c := defaultCatalogs(t)

	for _, loc := range c.Locations() {
		for _, svc := range c.Services() {
			page, err := Assemble(loc, svc, testOrigin, AssembleOptions{MaxSuburbs: 6})
			require.NoError(t, err)
			data, err := page.Marshal()
			require.NoError(t, err)
			for _, token := range []string{"{City}", "{State}", "{Service", "{Suburb", "{Climate", "{Storm", "{Insurer", "{Cost", "{Urgency", "{Population", "{First", "{Water", "{Seasonal", "{Humidity"} {
				assert.NotContains(t, string(data), token, "%s/%s", svc.Slug, loc.Slug)
			}
		}
	}
}

func TestAssembleSuburbCap(t *testing.T) {
	loc, svc := sydneyWaterDamage(t)
	require.Greater(t, len(loc.Suburbs), 6, "fixture needs more than six suburbs")

	page, err := Assemble(loc, svc, testOrigin, AssembleOptions{MaxSuburbs: 6})
	require.NoError(t, err)

	areas := page.Section(SectionServiceAreas)
	require.NotEmpty(t, areas)
	for _, s := range loc.Suburbs[:6] {
		assert.Contains(t, areas, s)
	}
	for _, s := range loc.Suburbs[6:] {
		assert.NotContains(t, areas, s)
	}
}

func TestAssembleMissingCityRejectsPage(t *testing.T) {
	_, svc := sydneyWaterDamage(t)
	bad := catalog.Location{Slug: "nowhere", State: "NSW"}

	_, err := Assemble(bad, svc, testOrigin, AssembleOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere")
}

func TestVariantSeedStable(t *testing.T) {
	a := VariantSeed("sydney", "water-damage", SectionIntro)
	b := VariantSeed("sydney", "water-damage", SectionIntro)
	assert.Equal(t, a, b)

	// Distinct tuples produce distinct seeds for these fixtures.
	assert.NotEqual(t, a, VariantSeed("melbourne", "water-damage", SectionIntro))
	assert.NotEqual(t, a, VariantSeed("sydney", "fire-damage", SectionIntro))
	assert.NotEqual(t, a, VariantSeed("sydney", "water-damage", SectionContact))
}

func TestVariantSelectionVariesAcrossPages(t *testing.T) {
	c := defaultCatalogs(t)
	svc, ok := c.Service("water-damage")
	require.True(t, ok)

	intros := make(map[string]struct{})
	for _, loc := range c.Locations() {
		seed := VariantSeed(loc.Slug, svc.Slug, SectionIntro)
		intros[pick(seed, introVariants)] = struct{}{}
	}
	assert.Greater(t, len(intros), 1, "all locations selected the same intro variant")
}

func TestAssembleKeyCoversEveryManifestEntry(t *testing.T) {
	c := defaultCatalogs(t)
	m, err := manifest.Build(c, testOrigin, manifestPolicy())
	require.NoError(t, err)

	for _, e := range m.Entries {
		page, err := AssembleKey(c, e.Key, testOrigin, AssembleOptions{MaxSuburbs: 6})
		require.NoError(t, err, "%s", e.URL)
		assert.Equal(t, e.Key.URLPath(), page.URL)
		assert.NotEmpty(t, page.Title)
		assert.NotEmpty(t, page.MetaDescription)
		assert.NotEmpty(t, page.H1)
		assert.NotEmpty(t, page.Sections)
	}
}

func TestAssembleCostGuideTitle(t *testing.T) {
	loc, svc := sydneyWaterDamage(t)
	page := assembleCostGuide(loc, svc)
	assert.Equal(t, "Water Damage Restoration Cost Sydney NSW | Price Guide $2,000-$15,000", page.Title)
	assert.Equal(t, "/cost/sydney-water-damage", page.URL)
}

func TestAssembleFAQEmbedsStructuredData(t *testing.T) {
	_, svc := sydneyWaterDamage(t)
	page, err := assembleFAQ(svc)
	require.NoError(t, err)
	require.Len(t, page.StructuredData, 1)
	assert.Contains(t, string(page.StructuredData[0]), `"@type":"FAQPage"`)
}

func TestAssembleGuideRendersMarkdown(t *testing.T) {
	c := defaultCatalogs(t)
	guides := c.Guides()
	require.NotEmpty(t, guides)

	page, err := assembleGuide(guides[0])
	require.NoError(t, err)
	body := page.Section(SectionIntro)
	assert.True(t, strings.Contains(body, "<h") || strings.Contains(body, "<p>"),
		"guide body should contain rendered HTML, got %q", body)
	assert.NotContains(t, body, "## ")
}

func TestWeatherSectionExpandsStormSeverity(t *testing.T) {
	loc, svc := sydneyWaterDamage(t)
	r := newReplacer(loc, svc, AssembleOptions{MaxSuburbs: 6})

	got := r.expand(weatherVariants[1])
	assert.NotContains(t, got, "{StormSeverity}")
	assert.Contains(t, got, "severe intensity")
}

func TestClimateFallback(t *testing.T) {
	f := climateFor("Unknown climate class")
	assert.Equal(t, climateTable["Temperate"], f)

	p := stormFor("ZZ")
	assert.NotEmpty(t, p.description)
	assert.NotEmpty(t, seasonalRisks("ZZ"))
}
