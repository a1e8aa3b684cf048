// Package content assembles page prose from catalog entities. All assembly
// is pure: output depends only on the entity tuple and the variant seed
// derived from it, so repeated builds against unchanged catalogs reproduce
// identical text.
package content

import (
	"encoding/json"
	"fmt"
)

// SectionKind names one of the canonical page sections, in render order.
type SectionKind string

const (
	SectionIntro             SectionKind = "intro"
	SectionIssues            SectionKind = "issues"
	SectionServiceAreas      SectionKind = "service-areas"
	SectionWeatherContext    SectionKind = "weather-context"
	SectionRegulations       SectionKind = "regulations"
	SectionEmergencyResponse SectionKind = "emergency-response"
	SectionInsurance         SectionKind = "insurance"
	SectionPrevention        SectionKind = "prevention"
	SectionTestimonial       SectionKind = "testimonial"
	SectionContact           SectionKind = "contact"
)

// CanonicalSections is the full ordered section set of a location+service
// page. Every section must render non-empty.
var CanonicalSections = []SectionKind{
	SectionIntro,
	SectionIssues,
	SectionServiceAreas,
	SectionWeatherContext,
	SectionRegulations,
	SectionEmergencyResponse,
	SectionInsurance,
	SectionPrevention,
	SectionTestimonial,
	SectionContact,
}

// Section is one named, ordered prose block.
type Section struct {
	Name SectionKind `json:"name"`
	HTML string      `json:"html"`
}

// Page is the generated artifact for one manifest entry. It is handed to
// the routing layer and is not this system's durable output.
type Page struct {
	URL             string            `json:"url"`
	Title           string            `json:"title"`
	MetaDescription string            `json:"metaDescription"`
	H1              string            `json:"h1"`
	Sections        []Section         `json:"sections"`
	StructuredData  []json.RawMessage `json:"structuredData,omitempty"`
}

// Section returns the text of the named section, or "" if absent.
func (p *Page) Section(kind SectionKind) string {
	for _, s := range p.Sections {
		if s.Name == kind {
			return s.HTML
		}
	}
	return ""
}

// Marshal serialises the page artifact deterministically.
func (p *Page) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal page %s: %w", p.URL, err)
	}
	return append(data, '\n'), nil
}
