package middlewares

// gin context keys shared across middlewares and handlers.
const (
	CtxRequestID = "request_id"
)
