package resolver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"
)

// Download tuning constants
const (
	// DownloadChunkSize keeps transfers resumable at 1MiB granularity.
	DownloadChunkSize = 1024 * 1024

	// DefaultUserAgent is the client identification sent upstream.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// formatTemplate prefers a capped-height mp4 video stream plus m4a audio,
	// falling back to the best combined mp4 stream.
	formatTemplate = "bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]"
)

// Service resolves and downloads videos through yt-dlp.
type Service struct {
	socketTimeout time.Duration
	retries       int
	maxFileSize   int64
	userAgent     string
}

// NewService creates a resolver service. socketTimeout bounds individual
// network stalls, retries applies at both whole-request and fragment
// granularity, and maxFileSize caps the artifact in bytes.
func NewService(socketTimeout time.Duration, retries int, maxFileSize int64) *Service {
	return &Service{
		socketTimeout: socketTimeout,
		retries:       retries,
		maxFileSize:   maxFileSize,
		userAgent:     DefaultUserAgent,
	}
}

// Discover probes the URL for available qualities without downloading.
func (s *Service) Discover(ctx context.Context, url string) (map[int]string, error) {
	dl := ytdlp.New().
		Quiet().
		NoWarnings().
		SkipDownload().
		DumpJSON().
		NoPlaylist().
		SocketTimeout(s.socketTimeout.Seconds()).
		Retries(strconv.Itoa(s.retries))

	result, err := dl.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("probe failed: %w", err)
	}

	return parseProbe(result.Stdout)
}

// Download fetches the video at the chosen height to path. The artifact is
// verified after the run: a missing file yields ErrNoOutput, an oversized one
// a TooLargeError. The caller owns the file and its removal on every path.
func (s *Service) Download(ctx context.Context, url string, height int, path string) error {
	retries := strconv.Itoa(s.retries)

	dl := ytdlp.New().
		Format(fmt.Sprintf(formatTemplate, height)).
		Output(path).
		NoPlaylist().
		Quiet().
		NoWarnings().
		NoProgress().
		SocketTimeout(s.socketTimeout.Seconds()).
		Retries(retries).
		FragmentRetries(retries).
		MaxFileSize(strconv.FormatInt(s.maxFileSize, 10)).
		HTTPChunkSize(strconv.Itoa(DownloadChunkSize)).
		UserAgent(s.userAgent)

	if _, err := dl.Run(ctx, url); err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	return verifyArtifact(path, s.maxFileSize)
}
