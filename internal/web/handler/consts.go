package handler

const (
	// APIBase is the path prefix of the versioned JSON API.
	APIBase = "/api/v1"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"
)
