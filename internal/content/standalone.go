package content

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/errors"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
	"github.com/disasterrecoveryau/sitegen/internal/schema"
)

// AssembleKey dispatches page assembly for any manifest key. Combination
// pages route through Assemble; every other kind has a fixed template.
func AssembleKey(c *catalog.Catalogs, key manifest.PageKey, origin string, opts AssembleOptions) (*Page, error) {
	switch key.Kind {
	case manifest.KindCombination:
		loc, svc, err := resolvePair(c, key)
		if err != nil {
			return nil, err
		}
		return Assemble(loc, svc, origin, opts)
	case manifest.KindCore:
		return assembleCore(key), nil
	case manifest.KindService:
		svc, ok := c.Service(key.Service)
		if !ok {
			return nil, missingEntity(key, "service", key.Service)
		}
		return assembleService(c, svc), nil
	case manifest.KindLocation:
		loc, ok := c.Location(key.Location)
		if !ok {
			return nil, missingEntity(key, "location", key.Location)
		}
		return assembleLocation(c, loc, opts)
	case manifest.KindCostGuide:
		loc, svc, err := resolvePair(c, key)
		if err != nil {
			return nil, err
		}
		return assembleCostGuide(loc, svc), nil
	case manifest.KindEmergency:
		item, ok := findItem(c.EmergencyTimes(), key.Extra)
		if !ok {
			return nil, missingEntity(key, "emergency window", key.Extra)
		}
		return assembleEmergency(item), nil
	case manifest.KindFAQ:
		svc, ok := c.Service(key.Service)
		if !ok {
			return nil, missingEntity(key, "service", key.Service)
		}
		return assembleFAQ(svc)
	case manifest.KindKnowledge:
		return assembleKnowledge(c, key)
	default:
		return nil, errors.TemplateRender(key.URLPath(),
			fmt.Sprintf("unknown page kind %q", key.Kind))
	}
}

func resolvePair(c *catalog.Catalogs, key manifest.PageKey) (catalog.Location, catalog.Service, error) {
	loc, ok := c.Location(key.Location)
	if !ok {
		return catalog.Location{}, catalog.Service{}, missingEntity(key, "location", key.Location)
	}
	svc, ok := c.Service(key.Service)
	if !ok {
		return catalog.Location{}, catalog.Service{}, missingEntity(key, "service", key.Service)
	}
	return loc, svc, nil
}

func missingEntity(key manifest.PageKey, what, slug string) error {
	return errors.TemplateRender(key.URLPath(), fmt.Sprintf("%s %q not in catalog", what, slug))
}

func findItem(items []catalog.Item, slug string) (catalog.Item, bool) {
	for _, it := range items {
		if it.Slug == slug {
			return it, true
		}
	}
	return catalog.Item{}, false
}

var coreCopy = map[string]struct{ title, meta, h1, body string }{
	"": {
		"Disaster Recovery Australia | 24/7 Emergency Restoration Services",
		"Australia's trusted disaster recovery specialists. Water, fire, mould and storm damage restoration nationwide with 24/7 emergency response. Call 1300 814 870.",
		"24/7 Emergency Disaster Recovery Services",
		"<p>When disaster strikes your home or business, Disaster Recovery responds. Our IICRC-certified technicians handle water damage, fire and smoke restoration, mould remediation and storm recovery across Australia, 24 hours a day, every day of the year.</p>",
	},
	"about": {
		"About Us | Disaster Recovery Australia",
		"Learn about Disaster Recovery's certified restoration teams, nationwide coverage and insurance-approved processes. Call 1300 814 870.",
		"About Disaster Recovery",
		"<p>Disaster Recovery is a national restoration company built on certified processes and rapid response. Every technician holds current IICRC certification and every job follows the S500 and S520 standards for water and mould restoration.</p>",
	},
	"contact": {
		"Contact Us | Disaster Recovery Australia",
		"Contact Disaster Recovery 24/7 for emergency restoration anywhere in Australia. Call 1300 814 870 or request an online assessment.",
		"Contact Disaster Recovery",
		"<p>Our emergency line 1300 814 870 is answered 24 hours a day. For non-urgent enquiries, submit an online assessment request and a local coordinator will call you back.</p>",
	},
	"get-help": {
		"Get Help Now | Disaster Recovery Australia",
		"Emergency restoration help, 24/7 across Australia. Tell us what happened and a certified crew mobilises immediately. Call 1300 814 870.",
		"Get Emergency Help Now",
		"<p>Tell us what happened and where. A certified technician triages your situation immediately, a crew is dispatched, and mitigation starts on the first visit.</p>",
	},
	"assessment": {
		"Free Damage Assessment | Disaster Recovery Australia",
		"Request a free property damage assessment from certified restoration technicians anywhere in Australia. Call 1300 814 870.",
		"Free Damage Assessment",
		"<p>Every restoration starts with an honest assessment. We inspect the damage, map moisture with thermal imaging, and give you a written scope of works before any work begins.</p>",
	},
	"insurance-claims": {
		"Insurance Claims Assistance | Disaster Recovery Australia",
		"We manage your restoration insurance claim end to end: documentation, direct billing and assessor liaison with all major Australian insurers. Call 1300 814 870.",
		"Insurance Claims Made Simple",
		"<p>We work with every major Australian insurer. Our team prepares the scope of works, moisture logs and photographic evidence your claim needs, bills the insurer directly, and keeps you informed at every stage.</p>",
	},
}

func assembleCore(key manifest.PageKey) *Page {
	copyBlock, ok := coreCopy[key.Extra]
	if !ok {
		copyBlock = coreCopy[""]
	}
	return &Page{
		URL:             key.URLPath(),
		Title:           copyBlock.title,
		MetaDescription: copyBlock.meta,
		H1:              copyBlock.h1,
		Sections: []Section{
			{Name: SectionIntro, HTML: copyBlock.body},
			{Name: SectionContact, HTML: "<p>Call 1300 814 870 now, 24 hours a day, 7 days a week.</p>"},
		},
	}
}

func assembleService(c *catalog.Catalogs, svc catalog.Service) *Page {
	var areas strings.Builder
	areas.WriteString("<p>Available in:</p><ul>")
	for _, loc := range c.Locations() {
		fmt.Fprintf(&areas, "<li>%s, %s</li>", loc.City, loc.State)
	}
	areas.WriteString("</ul>")

	intro := fmt.Sprintf(
		"<p>%s from Australia's certified restoration specialists. %s response nationwide, with typical costs in the %s range and direct insurance billing.</p>",
		svc.Label, capitalise(svc.Urgency), displayCost(svc))

	return &Page{
		URL:             "/services/" + svc.Slug,
		Title:           fmt.Sprintf("%s Australia | 24/7 Emergency Response", svc.Label),
		MetaDescription: fmt.Sprintf("Professional %s across Australia. 24/7 emergency response, IICRC certified, insurance approved. Call 1300 814 870.", strings.ToLower(svc.Label)),
		H1:              svc.Label,
		Sections: []Section{
			{Name: SectionIntro, HTML: intro},
			{Name: SectionServiceAreas, HTML: areas.String()},
			{Name: SectionContact, HTML: "<p>Call 1300 814 870 for immediate " + strings.ToLower(svc.Label) + " anywhere in Australia.</p>"},
		},
	}
}

func assembleLocation(c *catalog.Catalogs, loc catalog.Location, opts AssembleOptions) (*Page, error) {
	if loc.City == "" || loc.State == "" {
		return nil, errors.TemplateRender("/locations/"+loc.Slug,
			fmt.Sprintf("location %q missing city or state", loc.Slug))
	}

	suburbs := loc.Suburbs
	if opts.MaxSuburbs > 0 && len(suburbs) > opts.MaxSuburbs {
		suburbs = suburbs[:opts.MaxSuburbs]
	}

	var services strings.Builder
	services.WriteString("<p>Restoration services in " + loc.City + ":</p><ul>")
	for _, svc := range c.Services() {
		fmt.Fprintf(&services, "<li>%s</li>", svc.Label)
	}
	services.WriteString("</ul>")

	cf := climateFor(loc.Climate)
	weather := fmt.Sprintf("<p>%s's %s climate brings %s. %s.</p>",
		loc.City, strings.ToLower(loc.Climate), cf.waterRisk, capitalise(cf.description))

	areaList := joinAnd(suburbs)
	if areaList == "" {
		areaList = "all " + loc.City + " suburbs"
	}

	return &Page{
		URL:             "/locations/" + loc.Slug,
		Title:           fmt.Sprintf("Disaster Recovery %s %s | 24/7 Emergency Response", loc.City, loc.State),
		MetaDescription: fmt.Sprintf("Emergency restoration services in %s, %s. Water, fire, mould and storm damage specialists available 24/7. Call 1300 814 870.", loc.City, loc.State),
		H1:              fmt.Sprintf("Disaster Recovery Services in %s", loc.City),
		Sections: []Section{
			{Name: SectionIntro, HTML: fmt.Sprintf("<p>Complete disaster restoration for %s, %s. Local crews, certified processes and 24/7 dispatch across %s.</p>", loc.City, loc.State, areaList)},
			{Name: SectionServiceAreas, HTML: services.String()},
			{Name: SectionWeatherContext, HTML: weather},
			{Name: SectionContact, HTML: "<p>Call 1300 814 870 for emergency response anywhere in " + loc.City + ".</p>"},
		},
	}, nil
}

func assembleCostGuide(loc catalog.Location, svc catalog.Service) *Page {
	cost := displayCost(svc)
	return &Page{
		URL:             fmt.Sprintf("/cost/%s-%s", loc.Slug, svc.Slug),
		Title:           fmt.Sprintf("%s Cost %s %s | Price Guide %s", svc.Label, loc.City, loc.State, cost),
		MetaDescription: fmt.Sprintf("%s costs in %s, %s typically range %s. Free assessments, transparent pricing and direct insurance billing. Call 1300 814 870.", svc.Label, loc.City, loc.State, cost),
		H1:              fmt.Sprintf("How Much Does %s Cost in %s?", svc.Label, loc.City),
		Sections: []Section{
			{Name: SectionIntro, HTML: fmt.Sprintf("<p>%s in %s typically costs %s depending on the extent of damage, property size and materials affected. Insurance covers most sudden and accidental events, and we bill your insurer directly.</p>", svc.Label, loc.City, cost)},
			{Name: SectionInsurance, HTML: fmt.Sprintf("<p>Most %s home and contents policies cover %s. We document the loss to assessor standards and manage the claim for you.</p>", loc.State, strings.ToLower(svc.Label))},
			{Name: SectionContact, HTML: "<p>Call 1300 814 870 for a free, no-obligation assessment in " + loc.City + ".</p>"},
		},
	}
}

func assembleEmergency(item catalog.Item) *Page {
	window := item.Window
	if window == "" {
		window = "24/7"
	}
	detail := item.Detail
	if detail == "" {
		detail = fmt.Sprintf("Disaster strikes on its own schedule, which is why our %s crews never stand down", strings.ToLower(item.Name))
	}
	return &Page{
		URL:             "/emergency/" + item.Slug,
		Title:           fmt.Sprintf("%s | Emergency Response %s", item.Name, window),
		MetaDescription: fmt.Sprintf("%s anywhere in Australia. Certified crews on call %s with immediate dispatch. Call 1300 814 870 now.", item.Name, window),
		H1:              item.Name,
		Sections: []Section{
			{Name: SectionIntro, HTML: fmt.Sprintf("<p>%s. Crews are staffed and dispatching %s: call and a certified technician mobilises immediately with the equipment the job needs.</p>", detail, window)},
			{Name: SectionEmergencyResponse, HTML: "<p>Phone triage, immediate dispatch, mitigation on first visit. Damage compounds by the hour, so do not wait until morning.</p>"},
			{Name: SectionContact, HTML: "<p>Call 1300 814 870 now. Lines answered every hour of every day.</p>"},
		},
	}
}

func assembleFAQ(svc catalog.Service) (*Page, error) {
	faq, err := schema.BuildFAQ(nationalLocation, svc)
	if err != nil {
		return nil, err
	}
	raw, err := schema.MarshalJSONLD(faq)
	if err != nil {
		return nil, err
	}

	var body strings.Builder
	for _, q := range faq.MainEntity {
		fmt.Fprintf(&body, "<h2>%s</h2><p>%s</p>", q.Name, q.AcceptedAnswer.Text)
	}

	return &Page{
		URL:             "/faq/" + svc.Slug,
		Title:           fmt.Sprintf("%s FAQ | Disaster Recovery Australia", svc.Label),
		MetaDescription: fmt.Sprintf("Answers to the most common %s questions: response times, insurance cover, costs and process. Call 1300 814 870.", strings.ToLower(svc.Label)),
		H1:              fmt.Sprintf("%s: Frequently Asked Questions", svc.Label),
		Sections: []Section{
			{Name: SectionIntro, HTML: body.String()},
			{Name: SectionContact, HTML: "<p>Still have questions? Call 1300 814 870 any time.</p>"},
		},
		StructuredData: []json.RawMessage{raw},
	}, nil
}

// nationalLocation stands in for FAQ pages that are not city-scoped.
var nationalLocation = catalog.Location{
	Slug:  "australia",
	City:  "Australia",
	State: "AU",
}

func assembleKnowledge(c *catalog.Catalogs, key manifest.PageKey) (*Page, error) {
	if key.Section == "resources" {
		for _, g := range c.Guides() {
			if g.Slug == key.Extra {
				return assembleGuide(g)
			}
		}
		return nil, missingEntity(key, "guide", key.Extra)
	}

	kind, ok := sectionCatalog[key.Section]
	if !ok {
		return nil, errors.TemplateRender(key.URLPath(),
			fmt.Sprintf("unknown knowledge section %q", key.Section))
	}
	item, found := findItem(c.Items(kind), key.Extra)
	if !found {
		return nil, missingEntity(key, key.Section+" entry", key.Extra)
	}

	copyBlock := knowledgeCopy[key.Section]
	detail := item.Detail
	if detail == "" {
		detail = copyBlock.fallbackDetail
	}

	return &Page{
		URL:             key.URLPath(),
		Title:           fmt.Sprintf(copyBlock.titleFormat, item.Name),
		MetaDescription: fmt.Sprintf(copyBlock.metaFormat, item.Name),
		H1:              fmt.Sprintf(copyBlock.h1Format, item.Name),
		Sections: []Section{
			{Name: SectionIntro, HTML: fmt.Sprintf("<p>%s</p>", detail)},
			{Name: SectionContact, HTML: "<p>Speak to a restoration specialist on 1300 814 870, 24/7.</p>"},
		},
	}, nil
}

func assembleGuide(g catalog.Guide) (*Page, error) {
	body, err := renderGuideBody(g)
	if err != nil {
		return nil, err
	}
	return &Page{
		URL:             "/resources/" + g.Slug,
		Title:           fmt.Sprintf("%s | Disaster Recovery Resources", g.Title),
		MetaDescription: g.Summary,
		H1:              g.Title,
		Sections: []Section{
			{Name: SectionIntro, HTML: body},
			{Name: SectionContact, HTML: "<p>Need hands-on help? Call 1300 814 870 any time.</p>"},
		},
	}, nil
}

var sectionCatalog = map[string]catalog.Kind{
	"property-types": catalog.KindPropertyType,
	"equipment":      catalog.KindEquipment,
	"insurance":      catalog.KindInsurer,
	"certifications": catalog.KindCertification,
	"compare":        catalog.KindComparison,
	"case-studies":   catalog.KindCaseStudy,
}

var knowledgeCopy = map[string]struct {
	titleFormat    string
	metaFormat     string
	h1Format       string
	fallbackDetail string
}{
	"property-types": {
		"%s Restoration | Disaster Recovery Australia",
		"Specialist restoration for %s properties across Australia. Certified crews, insurance approved. Call 1300 814 870.",
		"%s Restoration Services",
		"Purpose-built restoration processes for this property type, from assessment to clearance.",
	},
	"equipment": {
		"%s | Restoration Equipment Guide",
		"How professional restorers use the %s, and why equipment grade determines restoration outcomes. Call 1300 814 870.",
		"%s",
		"Industrial-grade equipment deployed on every qualifying job.",
	},
	"insurance": {
		"%s Restoration Claims | Direct Billing",
		"We bill %s directly for restoration work: documentation, assessor liaison and claim management included. Call 1300 814 870.",
		"Working With %s",
		"Direct billing and full claim documentation for this insurer.",
	},
	"certifications": {
		"%s Certification | Disaster Recovery Australia",
		"What %s certification means for your restoration job and why it matters. Call 1300 814 870.",
		"%s Certified",
		"A certification our technicians hold and maintain.",
	},
	"compare": {
		"%s | Restoration Comparison Guide",
		"An honest comparison: %s. Understand your options before you commit. Call 1300 814 870.",
		"%s",
		"A side-by-side look at the options property owners weigh most often.",
	},
	"case-studies": {
		"%s | Restoration Case Study",
		"Case study: %s. Real timelines, real costs, real outcomes from our restoration crews. Call 1300 814 870.",
		"Case Study: %s",
		"A completed restoration, documented from first call to clearance.",
	},
}

func displayCost(svc catalog.Service) string {
	if svc.CostRange != "" {
		return svc.CostRange
	}
	return "$1,000-$10,000"
}
