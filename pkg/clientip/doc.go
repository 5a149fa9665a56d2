// Package clientip resolves the originating client address of a request
// served behind a reverse proxy.
//
// GetIP checks X-Forwarded-For (first valid entry), then X-Real-IP and
// finally the TCP peer address. Middleware stores the result in the request
// context so log records carry it through LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
//
//	r := chi.NewRouter()
//	r.Use(clientip.Middleware)
//
// Forwarding headers are trusted as sent. Only enable the middleware where a
// proxy in front of the server overwrites them.
package clientip
