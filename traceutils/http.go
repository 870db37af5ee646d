package traceutils

import (
	"net/http"
	"net/http/httputil"

	"go.uber.org/zap"

	"github.com/pixshare/image-service/log"
)

// DumpRequest renders an http request to a string for diagnostics. A parse
// failure is logged, never propagated.
func DumpRequest(req *http.Request) string {
	dump, err := httputil.DumpRequest(req, true)
	if err != nil {
		log.Error("fail to dump request", zap.Error(err))
	}

	return string(dump)
}

// DumpResponse renders an http response to a string for diagnostics. A parse
// failure is logged, never propagated.
func DumpResponse(resp *http.Response) string {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Error("fail to dump response", zap.Error(err))
	}

	return string(dump)
}
