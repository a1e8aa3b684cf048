// Package manifest computes the bounded, deduplicated set of pages a build
// generates and indexes. The manifest is recomputed in full from the
// catalogs and inclusion policy on every build; it is never persisted or
// mutated incrementally.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
)

// PageKind classifies a page for priority, change frequency, and sitemap
// family assignment.
type PageKind string

const (
	KindCore        PageKind = "core"
	KindService     PageKind = "service"
	KindLocation    PageKind = "location"
	KindCombination PageKind = "combination"
	KindEmergency   PageKind = "emergency"
	KindKnowledge   PageKind = "knowledge"
	KindCostGuide   PageKind = "cost-guide"
	KindFAQ         PageKind = "faq"
)

// Family groups page kinds into sitemap shard files.
type Family string

const (
	FamilyMain      Family = "main"
	FamilyServices  Family = "services"
	FamilyLocations Family = "locations"
	FamilyKnowledge Family = "knowledge"
)

// PageKey is the composite identifier of one generated page. Every PageKey
// maps to exactly one canonical URL path and the mapping is injective.
type PageKey struct {
	Kind PageKind `json:"kind"`

	// Location and Service carry catalog slugs for the kinds keyed on them.
	Location string `json:"location,omitempty"`
	Service  string `json:"service,omitempty"`

	// Section is the URL section for knowledge sub-kinds (resources,
	// property-types, equipment, insurance, certifications, compare,
	// case-studies); empty otherwise.
	Section string `json:"section,omitempty"`

	// Extra is the standalone slug: the core route, emergency window,
	// guide, property type, and so on.
	Extra string `json:"extra,omitempty"`
}

// URLPath returns the canonical site-relative path for the key.
func (k PageKey) URLPath() string {
	switch k.Kind {
	case KindCore:
		if k.Extra == "" {
			return "/"
		}
		return "/" + k.Extra
	case KindService:
		return "/services/" + k.Service
	case KindLocation:
		return "/locations/" + k.Location
	case KindCombination:
		return "/services/" + k.Service + "/" + k.Location
	case KindCostGuide:
		return "/cost/" + k.Location + "-" + k.Service
	case KindEmergency:
		return "/emergency/" + k.Extra
	case KindFAQ:
		return "/faq/" + k.Service
	case KindKnowledge:
		return "/" + k.Section + "/" + k.Extra
	default:
		return "/" + k.Extra
	}
}

// ArtifactPath returns the content-root-relative path the page artifact is
// written to. The routing layer resolves inbound requests against the same
// scheme.
func (k PageKey) ArtifactPath() string {
	p := strings.TrimPrefix(k.URLPath(), "/")
	if p == "" {
		p = "index"
	}
	return "pages/" + p + ".json"
}

// Attrs assigns priority and change frequency per page kind. Fixed table;
// never derived from content.
type Attrs struct {
	Priority   float64
	ChangeFreq string
}

var kindAttrs = map[PageKind]Attrs{
	KindCore:        {1.0, "daily"},
	KindService:     {0.8, "weekly"},
	KindLocation:    {0.7, "weekly"},
	KindCombination: {0.6, "monthly"},
	KindEmergency:   {0.8, "weekly"},
	KindKnowledge:   {0.6, "monthly"},
	KindCostGuide:   {0.6, "monthly"},
	KindFAQ:         {0.6, "monthly"},
}

var kindFamily = map[PageKind]Family{
	KindCore:        FamilyMain,
	KindEmergency:   FamilyMain,
	KindService:     FamilyServices,
	KindFAQ:         FamilyServices,
	KindLocation:    FamilyLocations,
	KindCombination: FamilyLocations,
	KindCostGuide:   FamilyLocations,
	KindKnowledge:   FamilyKnowledge,
}

// AttrsFor returns the priority/changefreq pair for a page kind.
func AttrsFor(kind PageKind) Attrs {
	return kindAttrs[kind]
}

// FamilyFor returns the sitemap family for a page kind.
func FamilyFor(kind PageKind) Family {
	return kindFamily[kind]
}

// Entry is one admitted page: its key, canonical absolute URL, and sitemap
// attributes.
type Entry struct {
	Key        PageKey  `json:"key"`
	URL        string   `json:"url"`
	Priority   float64  `json:"priority"`
	ChangeFreq string   `json:"changefreq"`
	Family     Family   `json:"family"`
}

// Manifest is the complete page set for one build, in deterministic order:
// priority descending, then URL ascending.
type Manifest struct {
	Origin  string  `json:"origin"`
	Entries []Entry `json:"entries"`
}

// Len returns the number of admitted pages.
func (m *Manifest) Len() int { return len(m.Entries) }

// ByKind returns the entries of one kind, preserving manifest order.
func (m *Manifest) ByKind(kind PageKind) []Entry {
	var out []Entry
	for _, e := range m.Entries {
		if e.Key.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Remove returns a copy of the manifest without the given URLs. Used when
// non-strict builds reject pages: the sitemap must never reference a route
// that was not emitted.
func (m *Manifest) Remove(urls map[string]struct{}) *Manifest {
	if len(urls) == 0 {
		return m
	}
	kept := make([]Entry, 0, len(m.Entries))
	for _, e := range m.Entries {
		if _, drop := urls[e.URL]; !drop {
			kept = append(kept, e)
		}
	}
	return &Manifest{Origin: m.Origin, Entries: kept}
}

// Hash computes a deterministic sha256 over the canonical entry list, used
// to detect whether two builds produced an identical page set.
func (m *Manifest) Hash() (string, error) {
	data, err := json.Marshal(m.Entries)
	if err != nil {
		return "", fmt.Errorf("marshal for hash: %w", err)
	}
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%x", sum), nil
}
