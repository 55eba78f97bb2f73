package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 15
	MaxPageSize     = 100

	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderUserAgent     = "User-Agent"
	HeaderReferer       = "Referer"
	HeaderWebhookSecret = "X-Webhook-Secret"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableUsers            = "users"
	TableCards            = "cards"
	TableActivationCodes  = "activation_codes"
	TableActivationEvents = "activation_events"
	TableSystemSettings   = "system_settings"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgCardNotFound        = "card not found"
	ErrMsgUserNotFound        = "user not found"
	ErrMsgCodeNotFound        = "activation code not found"
)
