package testutil

import (
	"net/http"

	id "travelpoints/pkg/domain"
	"travelpoints/pkg/requestcontext"
)

// WithUserID authenticates req as userID, as RequireAuth would. A malformed
// userID leaves the request anonymous.
func WithUserID(req *http.Request, userID string) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	return req.WithContext(requestcontext.WithUserID(req.Context(), parsed))
}
