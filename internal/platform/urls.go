package platform

import (
	"fmt"
	"strings"
)

// Recognized YouTube hosts
const (
	LongFormHost  = "youtube.com"
	ShortFormHost = "youtu.be"
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
	QuerySeparator = "?"
	PathSeparator  = "/"
)

// WatchURLTemplate is the canonical long form every link is normalized to.
const WatchURLTemplate = "https://www.youtube.com/watch?v=%s"

// IsVideoURL reports whether the string looks like a YouTube video link.
// Anything without a recognized host substring is rejected up front, before
// the resolver is ever invoked.
func IsVideoURL(url string) bool {
	return strings.Contains(url, LongFormHost) || strings.Contains(url, ShortFormHost)
}

// IsPlaylistURL reports whether the link carries a playlist parameter.
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// NormalizeURL canonicalizes a YouTube link: short youtu.be forms are expanded
// to the long watch URL, and trailing tracking parameters are stripped.
// Normalization is idempotent.
func NormalizeURL(url string) string {
	url = strings.TrimSpace(url)

	if strings.Contains(url, ShortFormHost) {
		videoID := extractShortLinkID(url)
		return fmt.Sprintf(WatchURLTemplate, videoID)
	}

	// Long form: everything past the first & is tracking noise.
	if idx := strings.Index(url, ParamSeparator); idx >= 0 {
		return url[:idx]
	}
	return url
}

// extractShortLinkID pulls the video id out of a youtu.be link: the last path
// segment, minus any query string.
func extractShortLinkID(url string) string {
	segments := strings.Split(url, PathSeparator)
	id := segments[len(segments)-1]
	if idx := strings.Index(id, QuerySeparator); idx >= 0 {
		id = id[:idx]
	}
	return id
}
