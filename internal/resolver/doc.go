package resolver

// Package resolver wraps yt-dlp (via go-ytdlp) behind a small two-call
// contract: Discover enumerates the video qualities available for a URL
// without downloading anything, and Download fetches one chosen quality to a
// local file under a size cap. All extraction, format negotiation, and muxing
// happens inside yt-dlp; this package only shapes the request and classifies
// the outcome.
