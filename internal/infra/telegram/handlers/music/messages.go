package music

const (
	msgGreeting = "🎵 Hi! I download music.\n\n" +
		"Sources: %s\n\n" +
		"Send a song name or /search <query>"

	msgSearchUsage    = "/search <song name>"
	msgSearching      = "🔍 Searching: %s..."
	msgNothingFound   = "😔 Nothing found."
	msgFound          = "🎵 Found %d tracks (%d pages):"
	msgSearchFailed   = "😔 Something went wrong, try again."
	msgExpired        = "Expired, search again"
	msgDownloading    = "⏳ Downloading..."
	msgDownloadStatus = "⏳ [%s] %s - %s..."
	msgTooLarge       = "😔 File is larger than %s"
	msgDownloadFailed = "😔 Could not download"
	msgUploading      = "📤 Uploading..."
	msgDeliveryFailed = "😔 Error"
)
