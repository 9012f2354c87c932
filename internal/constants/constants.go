package constants

const (
	// 市集識別資訊
	MarketplaceName = "StyleHub"
	Version         = "1.0.0"
)

// for api context
type ContextKey string

const (
	CallerKey        ContextKey = "caller_account"
	AttachedValueKey ContextKey = "attached_value"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)
