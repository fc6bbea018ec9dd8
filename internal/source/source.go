// Package source loads the channel list the collector works through.
// Each source is one YouTube channel reference plus passthrough metadata
// from the input CSV; the metadata travels unchanged into persisted rows.
package source

import (
	"strings"
)

type Source struct {
	YoutubeURL    string `json:"youtube_url"`
	Domain        string `json:"domain"`
	BrandName     string `json:"brand_name"`
	Country       string `json:"country"`
	Language      string `json:"language"`
	Rating        string `json:"rating"`
	Score         string `json:"score"`
	Orientation   string `json:"orientation"`
	TypeOfContent string `json:"type_of_content"`
	Topics        string `json:"topics"`
	Owner         string `json:"owner"`
	TypeOfOwner   string `json:"type_of_owner"`
}

// ExtractChannelID pulls a channel ID, @handle, or legacy username out of
// the common YouTube channel URL shapes. Returns "" when the URL carries
// no usable reference.
func ExtractChannelID(url string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}

	// Strip query parameters
	if idx := strings.Index(url, "?"); idx != -1 {
		url = url[:idx]
	}

	firstSegment := func(s string) string {
		if idx := strings.Index(s, "/"); idx != -1 {
			return s[:idx]
		}
		return s
	}

	if idx := strings.Index(url, "/channel/"); idx != -1 {
		return firstSegment(url[idx+len("/channel/"):])
	}
	if idx := strings.Index(url, "/@"); idx != -1 {
		handle := firstSegment(url[idx+len("/@"):])
		if handle == "" {
			return ""
		}
		return "@" + handle
	}
	if idx := strings.Index(url, "/c/"); idx != -1 {
		return firstSegment(url[idx+len("/c/"):])
	}
	if idx := strings.Index(url, "/user/"); idx != -1 {
		return firstSegment(url[idx+len("/user/"):])
	}

	// Bare youtube.com/NAME form
	if idx := strings.Index(url, "youtube.com/"); idx != -1 {
		return firstSegment(url[idx+len("youtube.com/"):])
	}

	return ""
}

// IsChannelID reports whether ref is a canonical channel ID rather than a
// handle or username that still needs resolution.
func IsChannelID(ref string) bool {
	return len(ref) == 24 && strings.HasPrefix(ref, "UC")
}
