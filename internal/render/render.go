// Package render turns published pages into HTML documents for site visitors.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/skillbanto/internal/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | {{.SiteName}}</title>
</head>
<body>
<main class="page page-{{.Slug}}">
{{range .Blocks}}{{.}}
{{end}}</main>
</body>
</html>
`

// Renderer converts content blocks to sanitized HTML.
type Renderer struct {
	siteName  string
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
	document  *template.Template
}

// New returns a Renderer that titles documents with siteName.
func New(siteName string) *Renderer {
	if strings.TrimSpace(siteName) == "" {
		siteName = "SkillBanto"
	}
	return &Renderer{
		siteName: siteName,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		sanitizer: bluemonday.UGCPolicy(),
		document:  template.Must(template.New("page").Parse(documentTemplate)),
	}
}

// Page renders a full HTML document for page.
func (r *Renderer) Page(page content.Page) ([]byte, error) {
	blocks := make([]template.HTML, 0, len(page.Content))
	for _, block := range page.Content {
		fragment, err := r.Block(block)
		if err != nil {
			return nil, fmt.Errorf("render block %q: %w", block.ID, err)
		}
		if fragment != "" {
			blocks = append(blocks, fragment)
		}
	}

	var buf bytes.Buffer
	err := r.document.Execute(&buf, struct {
		Title    string
		SiteName string
		Slug     string
		Blocks   []template.HTML
	}{
		Title:    page.Title,
		SiteName: r.siteName,
		Slug:     page.Slug,
		Blocks:   blocks,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Block renders a single block. Blocks whose payload cannot be shown safely
// render as an empty fragment.
func (r *Renderer) Block(block content.Block) (template.HTML, error) {
	switch block.Type {
	case content.BlockTypeText:
		return r.text(block)
	case content.BlockTypeHeading:
		return template.HTML(fmt.Sprintf(`<h2 class="block block-heading" data-block-id="%s">%s</h2>`,
			template.HTMLEscapeString(block.ID), template.HTMLEscapeString(strings.TrimSpace(block.Content)))), nil
	case content.BlockTypeImage:
		src, _ := block.ImageURL()
		if !isSafeImageSource(src) {
			return "", nil
		}
		return template.HTML(fmt.Sprintf(`<figure class="block block-image" data-block-id="%s"><img src="%s" alt="" loading="lazy"></figure>`,
			template.HTMLEscapeString(block.ID), template.HTMLEscapeString(src))), nil
	case content.BlockTypeVideo:
		raw, _ := block.VideoURL()
		embed, ok := parseVideoEmbed(raw)
		if !ok {
			return "", nil
		}
		return buildVideoEmbedHTML(block.ID, embed), nil
	default:
		return "", fmt.Errorf("%w: %q", content.ErrUnknownBlockType, block.Type)
	}
}

func (r *Renderer) text(block content.Block) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(block.Content), &buf); err != nil {
		return "", err
	}
	safe := r.sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(fmt.Sprintf(`<div class="block block-text" data-block-id="%s">%s</div>`,
		template.HTMLEscapeString(block.ID), safe)), nil
}

func isSafeImageSource(src string) bool {
	if src == "" {
		return false
	}
	if strings.HasPrefix(src, "/") && !strings.HasPrefix(src, "//") {
		return true
	}
	parsed, err := url.Parse(src)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
