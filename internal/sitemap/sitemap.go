// Package sitemap renders the page manifest into sitemaps.org protocol
// shard files plus an index. Shards are grouped by page family and split
// whenever a family exceeds the configured URL ceiling, so no emitted file
// ever breaks the protocol's 50,000 URL limit.
package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	"github.com/disasterrecoveryau/sitegen/internal/errors"
	"github.com/disasterrecoveryau/sitegen/internal/manifest"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

// MaxURLsPerShard is the sitemaps.org protocol ceiling. Configuration may
// lower it, never raise it.
const MaxURLsPerShard = 50000

// URL is one <url> element of a shard.
type URL struct {
	Loc        string   `xml:"loc"`
	LastMod    string   `xml:"lastmod"`
	ChangeFreq string   `xml:"changefreq"`
	Priority   priority `xml:"priority"`
}

// priority renders with exactly one decimal place.
type priority float64

func (p priority) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(fmt.Sprintf("%.1f", float64(p)), start)
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	URLs    []URL    `xml:"url"`
}

type indexEntry struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod"`
}

type sitemapindex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Xmlns    string       `xml:"xmlns,attr"`
	Sitemaps []indexEntry `xml:"sitemap"`
}

// Shard is one emitted sitemap file.
type Shard struct {
	// Filename is relative to the content root, e.g. "sitemap-main.xml".
	Filename string
	Family   manifest.Family
	URLs     []URL
}

// Set is the complete sitemap output of one build: every shard plus the
// index that references exactly those shards.
type Set struct {
	Shards []Shard

	// IndexFilename is always "sitemap.xml".
	IndexFilename string

	origin  string
	lastmod string
}

// familyOrder fixes shard emission order independent of map iteration.
var familyOrder = []manifest.Family{
	manifest.FamilyMain,
	manifest.FamilyServices,
	manifest.FamilyLocations,
	manifest.FamilyKnowledge,
}

// Assemble partitions the manifest into family shards, splitting any family
// over maxPerShard URLs into numbered shards. The lastmod timestamp is
// supplied by the caller so rebuilds under a fixed clock reproduce
// byte-identical output.
func Assemble(m *manifest.Manifest, lastmod time.Time, maxPerShard int) (*Set, error) {
	if maxPerShard <= 0 || maxPerShard > MaxURLsPerShard {
		maxPerShard = MaxURLsPerShard
	}
	stamp := lastmod.UTC().Format("2006-01-02")

	byFamily := make(map[manifest.Family][]URL, len(familyOrder))
	for _, e := range m.Entries {
		byFamily[e.Family] = append(byFamily[e.Family], URL{
			Loc:        e.URL,
			LastMod:    stamp,
			ChangeFreq: e.ChangeFreq,
			Priority:   priority(e.Priority),
		})
	}

	set := &Set{IndexFilename: "sitemap.xml", origin: m.Origin, lastmod: stamp}
	for _, fam := range familyOrder {
		urls := byFamily[fam]
		if len(urls) == 0 {
			continue
		}
		if len(urls) <= maxPerShard {
			set.Shards = append(set.Shards, Shard{
				Filename: fmt.Sprintf("sitemap-%s.xml", fam),
				Family:   fam,
				URLs:     urls,
			})
			continue
		}
		for i := 0; len(urls) > 0; i++ {
			n := maxPerShard
			if n > len(urls) {
				n = len(urls)
			}
			set.Shards = append(set.Shards, Shard{
				Filename: fmt.Sprintf("sitemap-%s-%d.xml", fam, i+1),
				Family:   fam,
				URLs:     urls[:n],
			})
			urls = urls[n:]
		}
	}
	return set, nil
}

// EncodeShard renders one shard file.
func (s *Set) EncodeShard(shard Shard) ([]byte, error) {
	return encode(shard.Filename, urlset{Xmlns: xmlns, URLs: shard.URLs})
}

// EncodeIndex renders the sitemap index referencing every shard in order.
func (s *Set) EncodeIndex() ([]byte, error) {
	idx := sitemapindex{Xmlns: xmlns}
	for _, shard := range s.Shards {
		idx.Sitemaps = append(idx.Sitemaps, indexEntry{
			Loc:     s.origin + "/" + shard.Filename,
			LastMod: s.lastmod,
		})
	}
	return encode(s.IndexFilename, idx)
}

// URLCount is the total URL count across all shards.
func (s *Set) URLCount() int {
	n := 0
	for _, shard := range s.Shards {
		n += len(shard.URLs)
	}
	return n
}

func encode(name string, v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.SitemapEncode(name, err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
