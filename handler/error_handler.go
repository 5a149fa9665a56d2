package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"github.com/aserowy/htmx-playground/binder"
	"github.com/aserowy/htmx-playground/core"
	"github.com/aserowy/htmx-playground/pkg/logger"
	"github.com/aserowy/htmx-playground/pkg/requestid"
)

// ErrorPageParams contains data for rendering error pages
type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

// ErrorToastParams contains data for rendering error toasts
type ErrorToastParams struct {
	Message   string
	Type      string // "error", "warning", "info"
	RequestID string
}

// ErrorHandlerConfig configures the default error handler
type ErrorHandlerConfig struct {
	// ErrorPage renders a full error page for regular HTTP requests
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders a toast for htmx and Datastar requests
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget is where toasts are rendered (default: "#notifications")
	ToastTarget string

	// ToastMode is how Datastar merges toasts (default: PatchPrepend)
	ToastMode datastar.ElementPatchMode

	// ToastSwap is the hx-swap value sent with HX-Reswap (default: "afterbegin")
	ToastSwap string
}

// ErrorInfo contains classified error information
type ErrorInfo struct {
	StatusCode int
	Message    string
	Type       string
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

func determineErrorType(statusCode int) string {
	if isClientError(statusCode) {
		return "warning"
	}
	return "error"
}

func determineLogLevel(statusCode int) slog.Level {
	if isClientError(statusCode) {
		return slog.LevelWarn
	}
	return slog.LevelError
}

func setConfigDefaults(cfg ErrorHandlerConfig) ErrorHandlerConfig {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#notifications"
	}
	if cfg.ToastMode == "" {
		cfg.ToastMode = PatchPrepend
	}
	if cfg.ToastSwap == "" {
		cfg.ToastSwap = "afterbegin"
	}
	return cfg
}

// classifyError maps err to the status code and message shown to the client.
// Internal details never reach the message.
func classifyError(err error) ErrorInfo {
	info := ErrorInfo{
		StatusCode: core.ErrInternalServerError.Code,
		Message:    core.ErrInternalServerError.Key,
	}

	var httpErr core.HTTPError
	var validationErr ValidationError
	switch {
	case errors.As(err, &validationErr):
		info.StatusCode = http.StatusBadRequest
		info.Message = validationErr.Message()
		if info.Message == "" {
			info.Message = core.ErrBadRequest.Key
		}
	case errors.As(err, &httpErr):
		info.StatusCode = httpErr.Code
		info.Message = httpErr.Key
	case errors.Is(err, binder.ErrUnsupportedMediaType), errors.Is(err, binder.ErrMissingContentType):
		info.StatusCode = core.ErrUnsupportedMediaType.Code
		info.Message = core.ErrUnsupportedMediaType.Key
	case binder.IsBindingError(err):
		info.StatusCode = core.ErrBadRequest.Code
		info.Message = core.ErrBadRequest.Key
	}

	info.Type = determineErrorType(info.StatusCode)
	info.LogLevel = determineLogLevel(info.StatusCode)

	return info
}

func logError(log *slog.Logger, ctx Context, err error, info ErrorInfo) {
	r := ctx.Request()
	log.LogAttrs(r.Context(), info.LogLevel, "request error",
		logger.Error(err),
		slog.Int("status_code", info.StatusCode),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_htmx", IsHTMX(r)),
		slog.Bool("is_datastar", IsDataStar(r)),
		logger.Component("error_handler"),
	)
}

func toastParams(info ErrorInfo, requestID string) ErrorToastParams {
	return ErrorToastParams{
		Message:   info.Message,
		Type:      info.Type,
		RequestID: requestID,
	}
}

// renderDataStarResponse sends the toast as a patch-elements event.
// SSE responses always carry 200, so no status code is written.
func renderDataStarResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	if cfg.ErrorToast == nil {
		log.Warn("no error toast component configured for Datastar request",
			logger.RequestID(requestID),
			logger.Component("error_handler"),
		)
		return
	}

	response := Templ(
		cfg.ErrorToast(toastParams(info, requestID)),
		WithTarget(cfg.ToastTarget),
		WithPatchMode(cfg.ToastMode),
	)
	if err := response.Render(ctx.ResponseWriter(), ctx.Request()); err != nil {
		log.Error("failed to render error toast",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Event("render_error_toast"),
		)
	}
}

// renderHTMXResponse answers with the error status and retargets the toast
// into the notification area.
func renderHTMXResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	w := ctx.ResponseWriter()
	if cfg.ErrorToast == nil {
		http.Error(w, info.Message, info.StatusCode)
		return
	}

	Retarget(w, cfg.ToastTarget, cfg.ToastSwap)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.StatusCode)

	if err := cfg.ErrorToast(toastParams(info, requestID)).Render(ctx, w); err != nil {
		log.Error("failed to render error toast",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Event("render_error_toast"),
		)
	}
}

func renderHTTPResponse(ctx Context, cfg ErrorHandlerConfig, info ErrorInfo, requestID string, log *slog.Logger) {
	w := ctx.ResponseWriter()
	if cfg.ErrorPage == nil {
		http.Error(w, info.Message, info.StatusCode)
		return
	}

	params := ErrorPageParams{
		Error:      info.Message,
		StatusCode: info.StatusCode,
		RequestID:  requestID,
		RetryURL:   ctx.Request().URL.Path,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(info.StatusCode)
	if err := cfg.ErrorPage(params).Render(ctx, w); err != nil {
		log.Error("failed to render error page",
			logger.RequestID(requestID),
			logger.Error(err),
			logger.Event("render_error_page"),
		)
	}
}

// NewErrorHandler creates the error handler shared by all routes.
// Datastar requests get a toast patch, htmx requests get the toast fragment
// retargeted to the notification area and regular requests get a full error
// page. Without components a plain text body is written.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	cfg = setConfigDefaults(cfg)
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		requestID := requestid.FromContext(ctx.Request().Context())
		info := classifyError(err)
		logError(log, ctx, err, info)

		switch r := ctx.Request(); {
		case IsDataStar(r):
			renderDataStarResponse(ctx, cfg, info, requestID, log)
		case IsHTMX(r):
			renderHTMXResponse(ctx, cfg, info, requestID, log)
		default:
			renderHTTPResponse(ctx, cfg, info, requestID, log)
		}
	}
}
