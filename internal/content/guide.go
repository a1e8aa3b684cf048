package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/disasterrecoveryau/sitegen/internal/catalog"
	"github.com/disasterrecoveryau/sitegen/internal/errors"
)

var guideMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// renderGuideBody converts a guide's markdown body into the HTML embedded
// in the knowledge page artifact.
func renderGuideBody(g catalog.Guide) (string, error) {
	var buf bytes.Buffer
	if err := guideMarkdown.Convert([]byte(g.Body), &buf); err != nil {
		return "", errors.TemplateRender("/resources/"+g.Slug,
			fmt.Sprintf("render guide %q: %v", g.Slug, err))
	}
	return buf.String(), nil
}
