// Package requestid attaches a correlation identifier to every HTTP request.
//
// Middleware reuses a well-formed "X-Request-ID" header sent by the client or
// generates a UUIDv4 otherwise. The identifier is stored in the request
// context, echoed in the response header and picked up by the logger through
// LoggerExtractor:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
//
// Client supplied identifiers longer than 128 bytes or containing anything
// other than ASCII letters, digits, '-' and '_' are replaced.
package requestid
