package render

import (
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"
)

type videoEmbed struct {
	Platform string
	EmbedURL string
}

// parseVideoEmbed maps watch and share links of known platforms to their
// embed URL. Other https URLs are assumed to be embeddable as they are.
func parseVideoEmbed(raw string) (videoEmbed, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return videoEmbed{}, false
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Host == "" {
		return videoEmbed{}, false
	}
	host := strings.ToLower(parsed.Hostname())

	switch {
	case host == "youtu.be" || isHostOrSubdomain(host, "youtube.com") || isHostOrSubdomain(host, "youtube-nocookie.com"):
		return parseYouTubeEmbed(parsed)
	case isHostOrSubdomain(host, "vimeo.com"):
		return parseVimeoEmbed(parsed)
	}

	if parsed.Scheme != "https" {
		return videoEmbed{}, false
	}
	return videoEmbed{Platform: "generic", EmbedURL: parsed.String()}, true
}

func parseYouTubeEmbed(u *url.URL) (videoEmbed, bool) {
	var videoID string
	path := strings.Trim(u.Path, "/")

	if strings.EqualFold(u.Hostname(), "youtu.be") {
		videoID = path
	} else {
		switch {
		case path == "watch":
			videoID = u.Query().Get("v")
		case strings.HasPrefix(path, "embed/"):
			videoID = strings.TrimPrefix(path, "embed/")
		case strings.HasPrefix(path, "shorts/"):
			videoID = strings.TrimPrefix(path, "shorts/")
		case strings.HasPrefix(path, "live/"):
			videoID = strings.TrimPrefix(path, "live/")
		}
	}
	if i := strings.Index(videoID, "/"); i >= 0 {
		videoID = videoID[:i]
	}
	if videoID == "" {
		return videoEmbed{}, false
	}

	values := url.Values{}
	values.Set("rel", "0")
	if start := parseStartSeconds(u.Query()); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}

	return videoEmbed{
		Platform: "youtube",
		EmbedURL: "https://www.youtube.com/embed/" + url.PathEscape(videoID) + "?" + values.Encode(),
	}, true
}

func parseVimeoEmbed(u *url.URL) (videoEmbed, bool) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	videoID := ""
	for _, segment := range segments {
		if onlyDigits(segment) {
			videoID = segment
		}
	}
	if videoID == "" {
		return videoEmbed{}, false
	}
	return videoEmbed{
		Platform: "vimeo",
		EmbedURL: "https://player.vimeo.com/video/" + videoID,
	}, true
}

// parseStartSeconds reads YouTube's start or t parameter, either plain
// seconds or the 1h2m3s form.
func parseStartSeconds(query url.Values) int {
	value := query.Get("start")
	if value == "" {
		value = query.Get("t")
	}
	value = strings.TrimSuffix(strings.TrimSpace(value), "s")
	if value == "" {
		return 0
	}
	if onlyDigits(value) {
		n, _ := strconv.Atoi(value)
		return n
	}

	total, digits := 0, 0
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= '0' && r <= '9':
			digits = digits*10 + int(r-'0')
		case r == 'h':
			total += digits * 3600
			digits = 0
		case r == 'm':
			total += digits * 60
			digits = 0
		default:
			return 0
		}
	}
	return total + digits
}

func buildVideoEmbedHTML(blockID string, embed videoEmbed) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<div class="block block-video video-embed" data-block-id="%s" data-video-platform="%s">`+
			`<iframe src="%s" title="Video player" loading="lazy" allow="accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
			`</div>`,
		template.HTMLEscapeString(blockID),
		template.HTMLEscapeString(embed.Platform),
		template.HTMLEscapeString(embed.EmbedURL),
	))
}

func onlyDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}

func isHostOrSubdomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
