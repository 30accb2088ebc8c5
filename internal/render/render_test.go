package render

import (
	"strings"
	"testing"

	"github.com/skillbanto/internal/content"
)

func TestRenderTextBlockSanitizesMarkdown(t *testing.T) {
	r := New("")
	out, err := r.Block(content.Block{
		ID:      "t1",
		Type:    content.BlockTypeText,
		Content: "**Learn** fast <script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("Block returned error: %v", err)
	}

	html := string(out)
	if !strings.Contains(html, "<strong>Learn</strong>") {
		t.Fatalf("expected markdown to be rendered, got %s", html)
	}
	if strings.Contains(html, "<script") {
		t.Fatalf("expected script to be stripped, got %s", html)
	}
	if !strings.Contains(html, `data-block-id="t1"`) {
		t.Fatalf("expected block id attribute, got %s", html)
	}
}

func TestRenderHeadingEscapes(t *testing.T) {
	out, err := New("").Block(content.Block{ID: "h", Type: content.BlockTypeHeading, Content: "Plans <b>&</b> Pricing"})
	if err != nil {
		t.Fatalf("Block returned error: %v", err)
	}
	want := `<h2 class="block block-heading" data-block-id="h">Plans &lt;b&gt;&amp;&lt;/b&gt; Pricing</h2>`
	if string(out) != want {
		t.Fatalf("unexpected heading html:\n got %s\nwant %s", out, want)
	}
}

func TestRenderImageRejectsUnsafeSources(t *testing.T) {
	r := New("")
	tests := []struct {
		src  string
		want bool
	}{
		{src: "https://placehold.co/800x400", want: true},
		{src: "/static/hero.png", want: true},
		{src: "javascript:alert(1)", want: false},
		{src: "//evil.example/x.png", want: false},
		{src: "", want: false},
	}
	for _, tt := range tests {
		out, err := r.Block(content.Block{ID: "i", Type: content.BlockTypeImage, Content: tt.src})
		if err != nil {
			t.Fatalf("%q: Block returned error: %v", tt.src, err)
		}
		if got := strings.Contains(string(out), "<img"); got != tt.want {
			t.Errorf("%q: expected img=%v, got %v", tt.src, tt.want, got)
		}
	}
}

func TestParseVideoEmbed(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantURL  string
		platform string
		ok       bool
	}{
		{name: "youtube watch", raw: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", wantURL: "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0", platform: "youtube", ok: true},
		{name: "youtube short link with time", raw: "https://youtu.be/dQw4w9WgXcQ?t=1m30s", wantURL: "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0&start=90", platform: "youtube", ok: true},
		{name: "youtube embed", raw: "https://www.youtube.com/embed/dQw4w9WgXcQ", wantURL: "https://www.youtube.com/embed/dQw4w9WgXcQ?rel=0", platform: "youtube", ok: true},
		{name: "vimeo", raw: "https://vimeo.com/76979871", wantURL: "https://player.vimeo.com/video/76979871", platform: "vimeo", ok: true},
		{name: "generic https", raw: "https://player.example.com/v/1", wantURL: "https://player.example.com/v/1", platform: "generic", ok: true},
		{name: "plain http", raw: "http://player.example.com/v/1", ok: false},
		{name: "youtube without id", raw: "https://www.youtube.com/feed", ok: false},
		{name: "garbage", raw: "not a url", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed, ok := parseVideoEmbed(tt.raw)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !tt.ok {
				return
			}
			if embed.EmbedURL != tt.wantURL {
				t.Fatalf("expected embed url %q, got %q", tt.wantURL, embed.EmbedURL)
			}
			if embed.Platform != tt.platform {
				t.Fatalf("expected platform %q, got %q", tt.platform, embed.Platform)
			}
		})
	}
}

func TestRenderPageDocument(t *testing.T) {
	r := New("SkillBanto")
	doc, err := r.Page(content.Page{
		Title: "Pricing",
		Slug:  "pricing",
		Content: []content.Block{
			{ID: "t", Type: content.BlockTypeText, Content: "Pick a plan."},
			{ID: "h", Type: content.BlockTypeHeading, Content: "Our Plans"},
			{ID: "v", Type: content.BlockTypeVideo, Content: "ftp://nope"},
		},
	})
	if err != nil {
		t.Fatalf("Page returned error: %v", err)
	}

	html := string(doc)
	if !strings.Contains(html, "<title>Pricing | SkillBanto</title>") {
		t.Fatalf("missing title in %s", html)
	}
	if !strings.Contains(html, `class="page page-pricing"`) {
		t.Fatalf("missing page class in %s", html)
	}
	if strings.Index(html, `data-block-id="t"`) > strings.Index(html, `data-block-id="h"`) {
		t.Fatalf("blocks rendered out of order: %s", html)
	}
	if strings.Contains(html, "<iframe") {
		t.Fatalf("expected unsafe video to be dropped: %s", html)
	}
}
