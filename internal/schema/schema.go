// Package schema builds schema.org structured data objects for generated
// pages. The rendering layer embeds the marshalled objects verbatim as
// JSON-LD blocks, so every schema-required field must be present before an
// object leaves this package.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
)

const (
	context   = "https://schema.org"
	phone     = "1300 814 870"
	country   = "AU"
	brandName = "Disaster Recovery"
)

// PostalAddress is a schema.org PostalAddress.
type PostalAddress struct {
	Type           string `json:"@type"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion  string `json:"addressRegion"`
	PostalCode     string `json:"postalCode,omitempty"`
	AddressCountry string `json:"addressCountry"`
}

// OpeningHours is a schema.org OpeningHoursSpecification.
type OpeningHours struct {
	Type      string   `json:"@type"`
	DayOfWeek []string `json:"dayOfWeek"`
	Opens     string   `json:"opens"`
	Closes    string   `json:"closes"`
}

// GeoCoordinates is a schema.org GeoCoordinates descriptor.
type GeoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// AreaServed is a schema.org City descriptor.
type AreaServed struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// LocalBusiness is a schema.org LocalBusiness object for one location page.
type LocalBusiness struct {
	Context      string         `json:"@context"`
	Type         string         `json:"@type"`
	ID           string         `json:"@id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	URL          string         `json:"url"`
	Telephone    string         `json:"telephone"`
	Address      PostalAddress  `json:"address"`
	Geo          GeoCoordinates `json:"geo"`
	AreaServed   AreaServed     `json:"areaServed"`
	PriceRange   string         `json:"priceRange"`
	OpeningHours OpeningHours   `json:"openingHoursSpecification"`
}

// Question is one schema.org Question with its accepted answer.
type Question struct {
	Type           string `json:"@type"`
	Name           string `json:"name"`
	AcceptedAnswer Answer `json:"acceptedAnswer"`
}

// Answer is a schema.org Answer.
type Answer struct {
	Type string `json:"@type"`
	Text string `json:"text"`
}

// FAQPage is a schema.org FAQPage object.
type FAQPage struct {
	Context    string     `json:"@context"`
	Type       string     `json:"@type"`
	MainEntity []Question `json:"mainEntity"`
}

var allDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Geographic centre of Australia, used when a location has no coordinates.
const (
	defaultLatitude  = -25.2744
	defaultLongitude = 133.7751
)

func geoFor(loc catalog.Location) GeoCoordinates {
	lat, lng := loc.Latitude, loc.Longitude
	if lat == 0 && lng == 0 {
		lat, lng = defaultLatitude, defaultLongitude
	}
	return GeoCoordinates{Type: "GeoCoordinates", Latitude: lat, Longitude: lng}
}

// BuildLocalBusiness maps a location into a LocalBusiness object. Missing
// locality or region is fatal: a page must never ship malformed structured
// data.
func BuildLocalBusiness(loc catalog.Location, svc catalog.Service, origin string) (*LocalBusiness, error) {
	if loc.City == "" {
		return nil, builderrors.StructuredData("LocalBusiness", "addressLocality")
	}
	if loc.State == "" {
		return nil, builderrors.StructuredData("LocalBusiness", "addressRegion")
	}

	return &LocalBusiness{
		Context:     context,
		Type:        "LocalBusiness",
		ID:          fmt.Sprintf("%s/%s-%s", origin, svc.Category, loc.Slug),
		Name:        fmt.Sprintf("%s %s", brandName, loc.City),
		Description: fmt.Sprintf("Professional %s services in %s, %s", svc.Label, loc.City, loc.State),
		URL:         origin,
		Telephone:   phone,
		Address: PostalAddress{
			Type:            "PostalAddress",
			AddressLocality: loc.City,
			AddressRegion:   loc.State,
			PostalCode:      loc.Postcode,
			AddressCountry:  country,
		},
		Geo:        geoFor(loc),
		AreaServed: AreaServed{Type: "City", Name: loc.City},
		PriceRange: "$$",
		OpeningHours: OpeningHours{
			Type:      "OpeningHoursSpecification",
			DayOfWeek: allDays,
			Opens:     "00:00",
			Closes:    "23:59",
		},
	}, nil
}

// BuildFAQ produces the FAQPage object for a location+service pair. The
// question set mirrors the page's visible FAQ section; the first question
// always names the city.
func BuildFAQ(loc catalog.Location, svc catalog.Service) (*FAQPage, error) {
	if loc.City == "" {
		return nil, builderrors.StructuredData("FAQPage", "addressLocality")
	}
	if svc.Label == "" {
		return nil, builderrors.StructuredData("FAQPage", "service")
	}

	suburbs := loc.Suburbs
	if len(suburbs) > 3 {
		suburbs = suburbs[:3]
	}
	suburbList := ""
	for i, s := range suburbs {
		if i > 0 {
			suburbList += ", "
		}
		suburbList += s
	}

	qas := []struct{ q, a string }{
		{
			fmt.Sprintf("How quickly can you respond to %s emergencies in %s?", svc.Label, loc.City),
			fmt.Sprintf("We provide 24/7 emergency response across all %s suburbs with average arrival times of 45-90 minutes. Our teams are positioned throughout %s for rapid deployment.", loc.City, loc.City),
		},
		{
			fmt.Sprintf("What areas of %s do you service?", loc.City),
			fmt.Sprintf("We service all %s postcodes including %s. From the %s CBD to outer suburbs, our teams provide comprehensive coverage.", loc.City, suburbList, loc.City),
		},
		{
			fmt.Sprintf("Is %s covered by insurance in %s?", svc.Label, loc.State),
			fmt.Sprintf("Most %s insurance policies cover %s when it results from sudden, accidental events. We work directly with all major insurers and can manage your claim in %s.", loc.State, svc.Label, loc.City),
		},
		{
			fmt.Sprintf("How much does %s cost in %s?", svc.Label, loc.City),
			fmt.Sprintf("%s costs in %s typically range from %s depending on damage extent. We provide free assessments and direct insurance billing.", svc.Label, loc.City, svc.CostRange),
		},
	}

	questions := make([]Question, 0, len(qas))
	for _, qa := range qas {
		questions = append(questions, Question{
			Type: "Question",
			Name: qa.q,
			AcceptedAnswer: Answer{
				Type: "Answer",
				Text: qa.a,
			},
		})
	}

	return &FAQPage{
		Context:    context,
		Type:       "FAQPage",
		MainEntity: questions,
	}, nil
}

// MarshalJSONLD serialises a structured data object in the form the
// rendering layer embeds.
func MarshalJSONLD(obj any) ([]byte, error) {
	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal JSON-LD: %w", err)
	}
	return data, nil
}
