package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/studyplanner/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"
	// UserIDHeader is set by the JWT middleware from the token's user_id claim.
	UserIDHeader = "X-User-ID"

	maxRequestIDLen = 128
)

type userKey struct{}

// Adapter derives a bounded context.Context from a fasthttp request.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach returns a context that expires after the adapter timeout and
// carries the request id and the authenticated user, if any. The request id
// is echoed back in the response headers.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := RequestID(ctx)
	ctx.Response.Header.Set(RequestIDHeader, reqID)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)

	if user := strings.TrimSpace(string(ctx.Request.Header.Peek(UserIDHeader))); user != "" {
		stdCtx = context.WithValue(stdCtx, userKey{}, user)
	}
	return stdCtx, cancel
}

// UserID returns the user attached by Attach.
func UserID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	user, ok := ctx.Value(userKey{}).(string)
	return user, ok && user != ""
}

// RequestID reuses a sane incoming X-Request-ID or mints a new one.
func RequestID(ctx *fasthttp.RequestCtx) string {
	if ctx != nil {
		header := strings.TrimSpace(string(ctx.Request.Header.Peek(RequestIDHeader)))
		if header != "" && len(header) <= maxRequestIDLen {
			return header
		}
	}
	return uuid.NewString()
}
