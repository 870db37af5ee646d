package traceutils

import (
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// CaptureException reports an error to sentry through the hub that the
// sentrygin middleware attached to the request. Outside a request scope it
// is a no-op.
func CaptureException(c *gin.Context, err error) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
}

// AddScopeTag attaches a tag to the current request's sentry scope so that
// later captures carry it.
func AddScopeTag(c *gin.Context, key, value string) {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		hub.Scope().SetTag(key, value)
	}
}

// SetHandlerTag marks which handler the request reached. Every handler calls
// it first so captures can be grouped per endpoint.
func SetHandlerTag(c *gin.Context, handler string) {
	AddScopeTag(c, "handler", handler)
}
