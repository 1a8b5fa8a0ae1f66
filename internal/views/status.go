package views

// Loader status lines and fallbacks
const (
	StatusLoading  = "Loading sample analytics…"
	StatusUpdated  = "Updated just now"
	StatusTimeout  = "Request timed out. Ensure the prediction backend is running."
	StatusFailed   = "Unable to load dashboard snapshot."
	InsightsFailed = "Unable to load dashboard snapshot. Check the prediction backend."
	Processing     = "Processing..."
)
