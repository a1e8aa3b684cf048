package content

import (
	"fmt"
	"strings"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/errors"
	"github.com/disasterrecoveryau/sitegen/internal/schema"
)

// AssembleOptions tunes combination page assembly.
type AssembleOptions struct {
	// MaxSuburbs caps the suburb list rendered into the service-areas
	// section. Zero means no cap.
	MaxSuburbs int
}

// Assemble builds the full combination page for one location+service pair.
// It returns a template error when the location is missing the city or
// state fields the templates require; such errors reject the single page,
// not the build.
func Assemble(loc catalog.Location, svc catalog.Service, origin string, opts AssembleOptions) (*Page, error) {
	if loc.City == "" || loc.State == "" {
		return nil, errors.TemplateRender(
			fmt.Sprintf("/services/%s/%s", svc.Slug, loc.Slug),
			fmt.Sprintf("location %q missing city or state", loc.Slug))
	}
	if svc.Label == "" {
		return nil, errors.TemplateRender(
			fmt.Sprintf("/services/%s/%s", svc.Slug, loc.Slug),
			fmt.Sprintf("service %q missing label", svc.Slug))
	}

	r := newReplacer(loc, svc, opts)

	page := &Page{
		URL:             fmt.Sprintf("/services/%s/%s", svc.Slug, loc.Slug),
		Title:           fmt.Sprintf("%s %s %s | 24/7 Emergency Response", svc.Label, loc.City, loc.State),
		MetaDescription: r.expandVariant(loc, svc, "meta", metaVariants),
		H1:              fmt.Sprintf("%s Services in %s", svc.Label, loc.City),
	}

	for _, kind := range CanonicalSections {
		html, err := renderSection(kind, loc, svc, r)
		if err != nil {
			return nil, err
		}
		page.Sections = append(page.Sections, Section{Name: kind, HTML: html})
	}

	lb, err := schema.BuildLocalBusiness(loc, svc, origin)
	if err != nil {
		return nil, err
	}
	faq, err := schema.BuildFAQ(loc, svc)
	if err != nil {
		return nil, err
	}
	for _, obj := range []any{lb, faq} {
		raw, err := schema.MarshalJSONLD(obj)
		if err != nil {
			return nil, err
		}
		page.StructuredData = append(page.StructuredData, raw)
	}
	return page, nil
}

// replacer carries the substitution table for one location+service pair.
type replacer struct {
	pairs []string
}

func newReplacer(loc catalog.Location, svc catalog.Service, opts AssembleOptions) *replacer {
	cf := climateFor(loc.Climate)
	storm := stormFor(loc.State)

	suburbs := loc.Suburbs
	if opts.MaxSuburbs > 0 && len(suburbs) > opts.MaxSuburbs {
		suburbs = suburbs[:opts.MaxSuburbs]
	}
	suburbList := joinAnd(suburbs)
	if suburbList == "" {
		suburbList = "the greater " + loc.City + " area"
	}

	landmark := "the city centre"
	if len(loc.Landmarks) > 0 {
		landmark = loc.Landmarks[0]
	}

	urgencyNote := "Standard jobs are scheduled within 24 hours."
	if svc.Urgency == "critical" || svc.Urgency == "high" {
		urgencyNote = "This is a time-critical service: damage compounds by the hour, so call the moment you discover it."
	}

	costRange := svc.CostRange
	if costRange == "" {
		costRange = "$1,000-$10,000"
	}

	return &replacer{pairs: []string{
		"{City}", loc.City,
		"{State}", loc.State,
		"{Postcode}", loc.Postcode,
		"{Service}", svc.Label,
		"{ServiceLower}", strings.ToLower(svc.Label),
		"{SuburbList}", suburbList,
		"{FirstLandmark}", landmark,
		"{PopulationNote}", populationNote(loc.Population),
		"{ClimateLower}", strings.ToLower(loc.Climate),
		"{ClimateDescription}", cf.description,
		"{ClimateDescriptionCap}", capitalise(cf.description),
		"{WaterRisk}", cf.waterRisk,
		"{HumidityLevel}", cf.humidity,
		"{StormDescription}", storm.description,
		"{StormDescriptionLower}", lowerFirst(storm.description),
		"{StormSeverity}", storm.severity,
		"{StormSeason}", storm.season,
		"{SeasonalRisks}", joinAnd(seasonalRisks(loc.State)),
		"{InsurerList}", joinAnd(insurancePartners),
		"{CostRange}", costRange,
		"{UrgencyNote}", urgencyNote,
	}}
}

func (r *replacer) expand(template string) string {
	return strings.NewReplacer(r.pairs...).Replace(template)
}

// expandVariant picks one template from the pool by the pair's stable seed
// and expands it. The extra discriminator keeps distinct pools from always
// co-selecting the same index.
func (r *replacer) expandVariant(loc catalog.Location, svc catalog.Service, discriminator SectionKind, pool []string) string {
	seed := VariantSeed(loc.Slug, svc.Slug, discriminator)
	return r.expand(pick(seed, pool))
}

func renderSection(kind SectionKind, loc catalog.Location, svc catalog.Service, r *replacer) (string, error) {
	switch kind {
	case SectionIntro:
		return r.expandVariant(loc, svc, kind, introVariants), nil
	case SectionIssues:
		return renderIssues(loc, svc, r), nil
	case SectionServiceAreas:
		return r.expandVariant(loc, svc, kind, areasLeadVariants), nil
	case SectionWeatherContext:
		return r.expandVariant(loc, svc, kind, weatherVariants), nil
	case SectionRegulations:
		return renderRegulations(loc, svc, r), nil
	case SectionEmergencyResponse:
		return r.expandVariant(loc, svc, kind, emergencyVariants), nil
	case SectionInsurance:
		return r.expandVariant(loc, svc, kind, insuranceVariants), nil
	case SectionPrevention:
		return r.expandVariant(loc, svc, kind, preventionVariants), nil
	case SectionTestimonial:
		seed := VariantSeed(loc.Slug, svc.Slug, kind)
		return r.expand(pick(seed, testimonialPool(svc.Category))), nil
	case SectionContact:
		return r.expandVariant(loc, svc, kind, contactVariants), nil
	default:
		return "", errors.TemplateRender(
			fmt.Sprintf("/services/%s/%s", svc.Slug, loc.Slug),
			fmt.Sprintf("unknown section kind %q", kind))
	}
}

func renderIssues(loc catalog.Location, svc catalog.Service, r *replacer) string {
	var b strings.Builder
	b.WriteString(r.expandVariant(loc, svc, SectionIssues, issuesLeadVariants))
	b.WriteString("<ul>")
	issues := loc.CommonIssues
	if len(issues) == 0 {
		issues = []string{"storm and flood water intrusion", "hidden moisture behind wall cavities", "secondary mould growth after water events"}
	}
	for _, issue := range issues {
		b.WriteString("<li>")
		b.WriteString(capitalise(issue))
		b.WriteString("</li>")
	}
	for _, factor := range svc.LocalFactors {
		b.WriteString("<li>")
		b.WriteString(capitalise(factor))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func renderRegulations(loc catalog.Location, svc catalog.Service, r *replacer) string {
	base := r.expandVariant(loc, svc, SectionRegulations, regulationsVariants)
	if len(svc.RegulatoryNotes) == 0 {
		return base
	}
	var b strings.Builder
	b.WriteString(base)
	b.WriteString("<ul>")
	for _, note := range svc.RegulatoryNotes {
		b.WriteString("<li>")
		b.WriteString(capitalise(note))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func populationNote(pop int) string {
	switch {
	case pop >= 1_000_000:
		return fmt.Sprintf("a metropolitan population over %.1f million", float64(pop)/1_000_000)
	case pop > 0:
		return fmt.Sprintf("a population of around %d,000 residents", pop/1000)
	default:
		return "a growing residential and commercial base"
	}
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func capitalise(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
