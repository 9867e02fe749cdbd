package values

type ContextKey string

// ContextTracingKey is the key the tracing context is stored under for every
// request.
const ContextTracingKey = ContextKey("tracing-context")

// Request headers
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderRequestSource = "X-Request-Source"
)

// Response statuses. Handlers return one of these and util.StatusCode maps
// it to the HTTP code, so the taxonomy lives in exactly one place.
const (
	Success        = "success"
	Created        = "created"
	Failed         = "failed"
	Error          = "error"
	BadRequestBody = "bad-request-body"
	Unprocessable  = "unprocessable"
	NotAllowed     = "not-allowed"
	Conflict       = "conflict"
	NotFound       = "not-found"
	NotAuthorised  = "not-authorised"
	TokenExpired   = "token-expired"
	ActiveLogin    = "active-login"
)

const SystemErr = "Something went wrong, please try again later"
