package manifest

import (
	"sort"
	"strings"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/config"
	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
)

// coreRoutes are the fixed top-level pages every build emits. Empty string
// is the home page.
var coreRoutes = []string{
	"",
	"about",
	"contact",
	"get-help",
	"assessment",
	"insurance-claims",
}

// knowledge section prefixes per standalone catalog kind.
var knowledgeSections = []struct {
	section string
	kind    catalog.Kind
}{
	{"property-types", catalog.KindPropertyType},
	{"equipment", catalog.KindEquipment},
	{"insurance", catalog.KindInsurer},
	{"certifications", catalog.KindCertification},
	{"compare", catalog.KindComparison},
	{"case-studies", catalog.KindCaseStudy},
}

// Build enumerates every admitted page combination under the inclusion
// policy and returns the deduplicated, deterministically ordered manifest.
// Building twice from identical catalogs and policy yields an identical
// manifest.
func Build(c *catalog.Catalogs, origin string, policy config.InclusionPolicy) (*Manifest, error) {
	origin = strings.TrimSuffix(origin, "/")

	enabled := kindSet(policy.Kinds)
	var keys []PageKey

	add := func(k PageKey) {
		if _, ok := enabled[k.Kind]; ok {
			keys = append(keys, k)
		}
	}

	for _, route := range coreRoutes {
		add(PageKey{Kind: KindCore, Extra: route})
	}

	services := c.Services()
	for _, svc := range services {
		add(PageKey{Kind: KindService, Service: svc.Slug})
		add(PageKey{Kind: KindFAQ, Service: svc.Slug})
	}

	locations := c.Locations()
	comboServices := services
	if policy.MaxServicesPerCombination > 0 && len(comboServices) > policy.MaxServicesPerCombination {
		comboServices = comboServices[:policy.MaxServicesPerCombination]
	}
	costCities := locations
	if policy.MaxCostGuideCities > 0 && len(costCities) > policy.MaxCostGuideCities {
		costCities = costCities[:policy.MaxCostGuideCities]
	}

	for _, loc := range locations {
		add(PageKey{Kind: KindLocation, Location: loc.Slug})
		for _, svc := range comboServices {
			add(PageKey{Kind: KindCombination, Location: loc.Slug, Service: svc.Slug})
		}
	}
	for _, loc := range costCities {
		for _, svc := range comboServices {
			add(PageKey{Kind: KindCostGuide, Location: loc.Slug, Service: svc.Slug})
		}
	}

	for _, et := range c.EmergencyTimes() {
		add(PageKey{Kind: KindEmergency, Extra: et.Slug})
	}
	for _, g := range c.Guides() {
		add(PageKey{Kind: KindKnowledge, Section: "resources", Extra: g.Slug})
	}
	for _, ks := range knowledgeSections {
		for _, item := range c.Items(ks.kind) {
			add(PageKey{Kind: KindKnowledge, Section: ks.section, Extra: item.Slug})
		}
	}

	if policy.MaxPages > 0 && len(keys) > policy.MaxPages {
		return nil, builderrors.ManifestOverflow(len(keys), policy.MaxPages)
	}

	entries := make([]Entry, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		url := origin + k.URLPath()
		if _, dup := seen[url]; dup {
			return nil, builderrors.DuplicateURL(url)
		}
		seen[url] = struct{}{}

		attrs := AttrsFor(k.Kind)
		entries = append(entries, Entry{
			Key:        k,
			URL:        url,
			Priority:   attrs.Priority,
			ChangeFreq: attrs.ChangeFreq,
			Family:     FamilyFor(k.Kind),
		})
	}

	// Deterministic merge order: priority descending, then URL ascending.
	// Shard contents and the index depend on this order, so it runs here,
	// single-threaded, regardless of how page generation parallelises.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].URL < entries[j].URL
	})

	return &Manifest{Origin: origin, Entries: entries}, nil
}

func kindSet(kinds []string) map[PageKind]struct{} {
	all := []PageKind{
		KindCore, KindService, KindLocation, KindCombination,
		KindEmergency, KindKnowledge, KindCostGuide, KindFAQ,
	}
	set := make(map[PageKind]struct{}, len(all))
	if len(kinds) == 0 {
		for _, k := range all {
			set[k] = struct{}{}
		}
		return set
	}
	for _, k := range kinds {
		set[PageKind(k)] = struct{}{}
	}
	return set
}
