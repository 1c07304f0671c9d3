package bot

// User-facing messages. Every failure path ends in one of these; raw internal
// errors never reach the chat.
const (
	msgWelcome = "👋 Welcome to YouTube Downloader Bot!\n" +
		"I can download videos from YouTube for you.\n\n" +
		"Press the button below to start ➡️"

	msgAskLink        = "📥 Please send the YouTube video link:"
	msgInvalidLink    = "⚠️ Please send a valid YouTube URL."
	msgPlaylistLink   = "⚠️ Playlists are not supported. Send a link to a single video."
	msgNoFormats      = "❌ No downloadable formats found. Try another video."
	msgDiscoverFailed = "❌ Error processing link. Please try again."
	msgChooseQuality  = "🎞️ Select video quality:"
	msgSessionExpired = "❌ Session expired. Please send the link again."
	msgDownloading    = "⏳ Downloading in %dp... Please wait."
	msgUploading      = "✅ Download complete! Uploading now..."
	msgDownloadFailed = "❌ Download failed. Please try again."
	msgTooLarge       = "❌ File too large (%.2fMB). Pick a lower quality."
	msgUploadFailed   = "❌ Failed to send the file. Please try again."
	msgDone           = "🎉 Done! Want to download another video?"
)

// Button labels
const (
	labelEnterLink       = "🎥 Enter YouTube Link"
	labelDownloadAnother = "⬇️ Download Another"
)
