package catalog

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	builderrors "github.com/disasterrecoveryau/sitegen/internal/errors"
)

//go:embed data/*.yaml
var defaultData embed.FS

// catalog file names, both embedded and on disk when a catalog dir is used.
const (
	locationsFile  = "locations.yaml"
	servicesFile   = "services.yaml"
	standaloneFile = "standalone.yaml"
	guidesFile     = "guides.yaml"
)

type locationsDoc struct {
	Locations []Location `yaml:"locations"`
}

type servicesDoc struct {
	Services []Service `yaml:"services"`
}

type standaloneDoc struct {
	EmergencyTimes []Item `yaml:"emergency_times"`
	PropertyTypes  []Item `yaml:"property_types"`
	Equipment      []Item `yaml:"equipment"`
	Insurers       []Item `yaml:"insurers"`
	Certifications []Item `yaml:"certifications"`
	Comparisons    []Item `yaml:"comparisons"`
	CaseStudies    []Item `yaml:"case_studies"`
}

type guidesDoc struct {
	Guides []Guide `yaml:"guides"`
}

// Load reads and validates every catalog. When dir is non-empty each catalog
// file is read from it, falling back to the embedded default for files the
// directory doesn't carry. Any invariant violation is fatal.
func Load(dir string) (*Catalogs, error) {
	var locs locationsDoc
	if err := readCatalogFile(dir, locationsFile, &locs); err != nil {
		return nil, builderrors.CatalogLoad(string(KindLocation), err)
	}

	var svcs servicesDoc
	if err := readCatalogFile(dir, servicesFile, &svcs); err != nil {
		return nil, builderrors.CatalogLoad(string(KindService), err)
	}

	var standalone standaloneDoc
	if err := readCatalogFile(dir, standaloneFile, &standalone); err != nil {
		return nil, builderrors.CatalogLoad("standalone", err)
	}

	var guides guidesDoc
	if err := readCatalogFile(dir, guidesFile, &guides); err != nil {
		return nil, builderrors.CatalogLoad(string(KindGuide), err)
	}

	c := &Catalogs{
		locations:      locs.Locations,
		services:       svcs.Services,
		emergencyTimes: standalone.EmergencyTimes,
		propertyTypes:  standalone.PropertyTypes,
		equipment:      standalone.Equipment,
		insurers:       standalone.Insurers,
		certifications: standalone.Certifications,
		comparisons:    standalone.Comparisons,
		caseStudies:    standalone.CaseStudies,
		guides:         guides.Guides,
		locationBySlug: make(map[string]int, len(locs.Locations)),
		serviceBySlug:  make(map[string]int, len(svcs.Services)),
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func readCatalogFile(dir, name string, out any) error {
	var data []byte
	var err error
	if dir != "" {
		data, err = os.ReadFile(filepath.Join(dir, name))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if data == nil {
		data, err = defaultData.ReadFile("data/" + name)
		if err != nil {
			return err
		}
	}
	return yaml.Unmarshal(data, out)
}

// validate enforces the registry invariants: unique identifying keys, unique
// postal code and city+state pair, and required fields on every record.
func (c *Catalogs) validate() error {
	postcodes := make(map[string]string)
	cityState := make(map[string]string)
	for i, loc := range c.locations {
		switch {
		case loc.Slug == "":
			return builderrors.CatalogValidation(string(KindLocation), loc.City, "missing slug")
		case loc.City == "":
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug, "missing city")
		case loc.State == "":
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug, "missing state")
		case loc.Postcode == "":
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug, "missing postcode")
		case loc.Climate == "":
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug, "missing climate")
		case len(loc.Suburbs) == 0:
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug, "missing suburbs")
		case loc.Slug != Slugify(loc.Slug):
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug, "slug is not URL-safe")
		}
		if prev, dup := c.locationBySlug[loc.Slug]; dup {
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug,
				fmt.Sprintf("duplicate slug (also %s)", c.locations[prev].City))
		}
		if prev, dup := postcodes[loc.Postcode]; dup {
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug,
				fmt.Sprintf("duplicate postcode %s (also %s)", loc.Postcode, prev))
		}
		key := loc.City + "/" + loc.State
		if prev, dup := cityState[key]; dup {
			return builderrors.CatalogValidation(string(KindLocation), loc.Slug,
				fmt.Sprintf("duplicate city+state %s (also %s)", key, prev))
		}
		c.locationBySlug[loc.Slug] = i
		postcodes[loc.Postcode] = loc.Slug
		cityState[key] = loc.Slug
	}

	for i, svc := range c.services {
		switch {
		case svc.Slug == "":
			return builderrors.CatalogValidation(string(KindService), svc.Label, "missing slug")
		case svc.Label == "":
			return builderrors.CatalogValidation(string(KindService), svc.Slug, "missing label")
		case svc.CostRange == "":
			return builderrors.CatalogValidation(string(KindService), svc.Slug, "missing cost_range")
		case svc.Slug != Slugify(svc.Slug):
			return builderrors.CatalogValidation(string(KindService), svc.Slug, "slug is not URL-safe")
		}
		if _, dup := c.serviceBySlug[svc.Slug]; dup {
			return builderrors.CatalogValidation(string(KindService), svc.Slug, "duplicate slug")
		}
		c.serviceBySlug[svc.Slug] = i
	}

	itemKinds := []struct {
		kind  Kind
		items []Item
	}{
		{KindEmergencyTime, c.emergencyTimes},
		{KindPropertyType, c.propertyTypes},
		{KindEquipment, c.equipment},
		{KindInsurer, c.insurers},
		{KindCertification, c.certifications},
		{KindComparison, c.comparisons},
		{KindCaseStudy, c.caseStudies},
	}
	for _, ik := range itemKinds {
		seen := make(map[string]struct{}, len(ik.items))
		for _, item := range ik.items {
			if item.Slug == "" {
				return builderrors.CatalogValidation(string(ik.kind), item.Name, "missing slug")
			}
			if item.Name == "" {
				return builderrors.CatalogValidation(string(ik.kind), item.Slug, "missing name")
			}
			if item.Slug != Slugify(item.Slug) {
				return builderrors.CatalogValidation(string(ik.kind), item.Slug, "slug is not URL-safe")
			}
			if _, dup := seen[item.Slug]; dup {
				return builderrors.CatalogValidation(string(ik.kind), item.Slug, "duplicate slug")
			}
			seen[item.Slug] = struct{}{}
		}
	}

	seenGuides := make(map[string]struct{}, len(c.guides))
	for _, g := range c.guides {
		switch {
		case g.Slug == "":
			return builderrors.CatalogValidation(string(KindGuide), g.Title, "missing slug")
		case g.Title == "":
			return builderrors.CatalogValidation(string(KindGuide), g.Slug, "missing title")
		case g.Body == "":
			return builderrors.CatalogValidation(string(KindGuide), g.Slug, "missing body")
		case g.Slug != Slugify(g.Slug):
			return builderrors.CatalogValidation(string(KindGuide), g.Slug, "slug is not URL-safe")
		}
		if _, dup := seenGuides[g.Slug]; dup {
			return builderrors.CatalogValidation(string(KindGuide), g.Slug, "duplicate slug")
		}
		seenGuides[g.Slug] = struct{}{}
	}

	return nil
}

// WriteDefaults materialises the embedded default catalogs into dir so a new
// deployment can edit them. Existing files are left alone unless force is
// set.
func WriteDefaults(dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create catalog directory: %w", err)
	}
	for _, name := range []string{locationsFile, servicesFile, standaloneFile, guidesFile} {
		dst := filepath.Join(dir, name)
		if _, err := os.Stat(dst); err == nil && !force {
			continue
		}
		data, err := defaultData.ReadFile("data/" + name)
		if err != nil {
			return fmt.Errorf("read embedded catalog %s: %w", name, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write catalog %s: %w", name, err)
		}
	}
	return nil
}
