package handler

import "errors"

// ErrNilResponse indicates a handler returned nil instead of a Response
var ErrNilResponse = errors.New("handler returned nil response")

// ErrStreamingUnsupported indicates that the response writer cannot flush,
// so a Server-Sent Events stream cannot be opened on it.
var ErrStreamingUnsupported = errors.New("streaming unsupported")
