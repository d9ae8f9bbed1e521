package checkout

import (
	"net/http"

	"github.com/nazeru/contractforge-go/internal/upstream"
	"github.com/nazeru/contractforge-go/pkg/apperrors"
)

const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"

	msgUpstreamUnavailable = "An upstream service is unavailable"
)

var statusByCode = map[string]int{
	CodeInvalidRequest:           http.StatusBadRequest,
	upstream.CodeProductNotFound: http.StatusNotFound,
	upstream.CodeUserNotFound:    http.StatusNotFound,
	upstream.CodePricingAPIError: http.StatusBadGateway,
}

// ResolveError maps any error from the orchestrator to exactly one
// (status, code, message). Codes outside the table collapse into 502
// UPSTREAM_UNAVAILABLE.
func ResolveError(err error) (int, string, string) {
	ae, ok := apperrors.As(err)
	if !ok {
		return http.StatusBadGateway, CodeUpstreamUnavailable, msgUpstreamUnavailable
	}
	msg := ae.Message
	if msg == "" {
		msg = msgUpstreamUnavailable
	}
	if status, known := statusByCode[ae.Code]; known {
		return status, ae.Code, msg
	}
	return http.StatusBadGateway, CodeUpstreamUnavailable, msg
}
