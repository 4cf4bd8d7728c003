package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"finitefield.org/product-viewer/internal/viewer/requestctx"
)

const contentTypeJSON = "application/json; charset=utf-8"

// Error is the JSON error envelope returned by the viewer's JSON endpoints.
type Error struct {
	Code    string
	Message string
	Status  int
	Details map[string]any
}

// NewError constructs an Error. A zero status means 500.
func NewError(code, message string, status int) Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return Error{
		Code:    sanitize(code, 80),
		Message: sanitize(message, 512),
		Status:  status,
	}
}

// WithDetails attaches additional fields to the envelope.
func (e Error) WithDetails(details map[string]any) Error {
	if len(details) == 0 {
		return e
	}
	copied := make(map[string]any, len(details))
	for k, v := range details {
		copied[k] = v
	}
	e.Details = copied
	return e
}

// WriteError writes err as JSON, stamped with the chi request id when one is present.
func WriteError(ctx context.Context, w http.ResponseWriter, err Error) {
	status := err.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}

	payload := map[string]any{
		"error":   err.Code,
		"message": err.Message,
		"status":  status,
	}
	if id := sanitize(middleware.GetReqID(ctx), 80); id != "" {
		payload["request_id"] = id
	}
	for k, v := range err.Details {
		if _, reserved := payload[k]; !reserved {
			payload[k] = v
		}
	}

	body, marshalErr := json.Marshal(payload)
	if marshalErr != nil {
		requestctx.Logger(ctx).Error("encode error response", zap.Error(marshalErr))
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// WriteJSON encodes payload with the given status. Encoding failures become a 500 envelope.
func WriteJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		requestctx.Logger(ctx).Error("encode response", zap.Error(err))
		WriteError(ctx, w, NewError("encode_failed", "response could not be encoded", http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// NotFound answers unknown JSON routes with the envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(r.Context(), w, NewError("not_found", "no such endpoint: "+r.URL.Path, http.StatusNotFound))
}

// MethodNotAllowed answers JSON routes called with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	WriteError(r.Context(), w, NewError("method_not_allowed", r.Method+" is not supported", http.StatusMethodNotAllowed))
}

func sanitize(value string, limit int) string {
	if limit <= 0 {
		limit = 256
	}
	value = strings.NewReplacer("\n", " ", "\r", " ").Replace(value)
	value = strings.TrimSpace(value)
	if len(value) > limit {
		value = value[:limit]
	}
	return value
}
