package handler

import "net/http"

// emptyResponse represents an empty HTTP response with only a status code
type emptyResponse struct {
	status int
}

// Render writes the status code without any body content
func (e emptyResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.WriteHeader(e.status)
	return nil
}

// Empty creates an empty response with status 204 (No Content).
// htmx does not swap 204 responses, so use EmptyWithStatus(http.StatusOK)
// when the triggering element should be replaced by nothing.
func Empty() Response {
	return emptyResponse{
		status: http.StatusNoContent,
	}
}

// EmptyWithStatus creates an empty response with a custom status code.
//
// Example:
//
//	// Remove the deleted entry row with hx-swap="outerHTML"
//	return handler.EmptyWithStatus(http.StatusOK)
func EmptyWithStatus(status int) Response {
	return emptyResponse{
		status: status,
	}
}
