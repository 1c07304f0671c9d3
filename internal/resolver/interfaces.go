package resolver

import "context"

// Resolver defines the interface for the media resolution service.
type Resolver interface {
	// Discover returns the available video qualities for the URL as a mapping
	// from resolution height to yt-dlp format id. Metadata only, no download.
	Discover(ctx context.Context, url string) (map[int]string, error)

	// Download fetches the video at the given resolution height to path,
	// enforcing the configured size cap.
	Download(ctx context.Context, url string, height int, path string) error
}
