// Package lint checks assembled pages before they are written. A finding
// rejects the page the same way a template failure does: the build drops
// the page (or aborts in strict mode) rather than shipping defective
// content.
package lint

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/disasterrecoveryau/sitegen/internal/content"
)

// Finding is one defect in one page.
type Finding struct {
	URL     string
	Section content.SectionKind
	Message string
}

func (f Finding) String() string {
	if f.Section != "" {
		return fmt.Sprintf("%s [%s]: %s", f.URL, f.Section, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.URL, f.Message)
}

// tokenPattern matches a leaked template placeholder like {City}.
var tokenPattern = regexp.MustCompile(`\{[A-Z][A-Za-z]*\}`)

// Page runs every check against one assembled page and returns the
// findings. An empty slice means the page is clean.
func Page(p *content.Page) []Finding {
	var findings []Finding

	add := func(section content.SectionKind, format string, args ...any) {
		findings = append(findings, Finding{
			URL:     p.URL,
			Section: section,
			Message: fmt.Sprintf(format, args...),
		})
	}

	for _, field := range []struct{ name, text string }{
		{"title", p.Title},
		{"metaDescription", p.MetaDescription},
		{"h1", p.H1},
	} {
		if field.text == "" {
			add("", "empty %s", field.name)
		}
		if tok := tokenPattern.FindString(field.text); tok != "" {
			add("", "unresolved token %s in %s", tok, field.name)
		}
	}

	for _, s := range p.Sections {
		if strings.TrimSpace(s.HTML) == "" {
			add(s.Name, "empty section")
			continue
		}
		if tok := tokenPattern.FindString(s.HTML); tok != "" {
			add(s.Name, "unresolved token %s", tok)
		}
		if err := checkFragment(s.HTML); err != nil {
			add(s.Name, "malformed HTML: %v", err)
		}
	}

	return findings
}

// checkFragment parses a section body as an HTML fragment and rejects
// mismatched tags. The parser itself never fails on text input, so the
// check walks the parsed tree and compares it against the source tags.
func checkFragment(fragment string) error {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return err
	}

	var rendered strings.Builder
	for _, n := range nodes {
		if err := html.Render(&rendered, n); err != nil {
			return err
		}
	}

	// A dropped or reordered tag means the parser repaired the fragment;
	// compare tag multisets rather than raw strings so attribute quoting
	// differences don't false-positive.
	if countTags(rendered.String()) != countTags(fragment) {
		return fmt.Errorf("parser repaired fragment, check tag nesting")
	}
	return nil
}

var tagPattern = regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*`)

func countTags(s string) int {
	return len(tagPattern.FindAllString(s, -1))
}
