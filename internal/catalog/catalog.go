// Package catalog provides the immutable, validated entity collections that
// drive page generation. Catalogs are loaded once per build and never
// mutated; all generation code receives a *Catalogs value explicitly.
package catalog

// Location is one serviced city.
type Location struct {
	Slug         string   `yaml:"slug"`
	City         string   `yaml:"city"`
	State        string   `yaml:"state"`
	Population   int      `yaml:"population"`
	Climate      string   `yaml:"climate"`
	Postcode     string   `yaml:"postcode"`
	Latitude     float64  `yaml:"latitude,omitempty"`
	Longitude    float64  `yaml:"longitude,omitempty"`
	CommonIssues []string `yaml:"common_issues"`
	Landmarks    []string `yaml:"landmarks"`
	Suburbs      []string `yaml:"suburbs"`
}

// Service is one restoration service offering.
type Service struct {
	Slug             string   `yaml:"slug"`
	Label            string   `yaml:"label"`
	Category         string   `yaml:"category"`
	Urgency          string   `yaml:"urgency"`
	CostRange        string   `yaml:"cost_range"`
	Keywords         []string `yaml:"keywords"`
	LocalFactors     []string `yaml:"local_factors"`
	SeasonalConcerns []string `yaml:"seasonal_concerns"`
	RegulatoryNotes  []string `yaml:"regulatory_notes"`
}

// Item is the shape shared by the standalone catalogs (emergency windows,
// property types, equipment, insurers, certifications, comparisons, case
// studies). Detail carries the kind-specific second line: the time window
// for emergency pages, the purpose for equipment, the standard for
// certifications.
type Item struct {
	Slug   string `yaml:"slug"`
	Name   string `yaml:"name"`
	Detail string `yaml:"detail,omitempty"`
	Window string `yaml:"window,omitempty"`
}

// Guide is a knowledge-base article with a markdown body template.
type Guide struct {
	Slug    string `yaml:"slug"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
	Body    string `yaml:"body"`
}

// Kind names one catalog collection.
type Kind string

const (
	KindLocation      Kind = "locations"
	KindService       Kind = "services"
	KindEmergencyTime Kind = "emergency_times"
	KindPropertyType  Kind = "property_types"
	KindEquipment     Kind = "equipment"
	KindInsurer       Kind = "insurers"
	KindCertification Kind = "certifications"
	KindComparison    Kind = "comparisons"
	KindCaseStudy     Kind = "case_studies"
	KindGuide         Kind = "guides"
)

// Catalogs is the validated, immutable registry of every catalog. The
// field slices keep catalog file order, which manifest enumeration relies on
// for deterministic output.
type Catalogs struct {
	locations      []Location
	services       []Service
	emergencyTimes []Item
	propertyTypes  []Item
	equipment      []Item
	insurers       []Item
	certifications []Item
	comparisons    []Item
	caseStudies    []Item
	guides         []Guide

	locationBySlug map[string]int
	serviceBySlug  map[string]int
}

// Locations returns the locations in catalog order.
func (c *Catalogs) Locations() []Location {
	out := make([]Location, len(c.locations))
	copy(out, c.locations)
	return out
}

// Services returns the services in catalog order.
func (c *Catalogs) Services() []Service {
	out := make([]Service, len(c.services))
	copy(out, c.services)
	return out
}

// Location looks a location up by slug.
func (c *Catalogs) Location(slug string) (Location, bool) {
	i, ok := c.locationBySlug[slug]
	if !ok {
		return Location{}, false
	}
	return c.locations[i], true
}

// Service looks a service up by slug.
func (c *Catalogs) Service(slug string) (Service, bool) {
	i, ok := c.serviceBySlug[slug]
	if !ok {
		return Service{}, false
	}
	return c.services[i], true
}

// EmergencyTimes returns the time-based emergency page catalog.
func (c *Catalogs) EmergencyTimes() []Item { return copyItems(c.emergencyTimes) }

// PropertyTypes returns the property type catalog.
func (c *Catalogs) PropertyTypes() []Item { return copyItems(c.propertyTypes) }

// Equipment returns the equipment catalog.
func (c *Catalogs) Equipment() []Item { return copyItems(c.equipment) }

// Insurers returns the insurer catalog.
func (c *Catalogs) Insurers() []Item { return copyItems(c.insurers) }

// Certifications returns the certification catalog.
func (c *Catalogs) Certifications() []Item { return copyItems(c.certifications) }

// Comparisons returns the comparison page catalog.
func (c *Catalogs) Comparisons() []Item { return copyItems(c.comparisons) }

// CaseStudies returns the case study catalog.
func (c *Catalogs) CaseStudies() []Item { return copyItems(c.caseStudies) }

// Guides returns the knowledge guide catalog.
func (c *Catalogs) Guides() []Guide {
	out := make([]Guide, len(c.guides))
	copy(out, c.guides)
	return out
}

// Items returns the standalone catalog for kind, or nil for the structured
// kinds (locations, services, guides).
func (c *Catalogs) Items(kind Kind) []Item {
	switch kind {
	case KindEmergencyTime:
		return c.EmergencyTimes()
	case KindPropertyType:
		return c.PropertyTypes()
	case KindEquipment:
		return c.Equipment()
	case KindInsurer:
		return c.Insurers()
	case KindCertification:
		return c.Certifications()
	case KindComparison:
		return c.Comparisons()
	case KindCaseStudy:
		return c.CaseStudies()
	default:
		return nil
	}
}

// Counts returns per-catalog entry counts for the build summary.
func (c *Catalogs) Counts() map[Kind]int {
	return map[Kind]int{
		KindLocation:      len(c.locations),
		KindService:       len(c.services),
		KindEmergencyTime: len(c.emergencyTimes),
		KindPropertyType:  len(c.propertyTypes),
		KindEquipment:     len(c.equipment),
		KindInsurer:       len(c.insurers),
		KindCertification: len(c.certifications),
		KindComparison:    len(c.comparisons),
		KindCaseStudy:     len(c.caseStudies),
		KindGuide:         len(c.guides),
	}
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
