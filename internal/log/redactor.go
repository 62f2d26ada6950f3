// Package log provides a slog.Handler wrapper that redacts phone numbers.
// WhatsApp exports commonly use phone numbers as display names, and those
// must not leak into server logs verbatim.
package log

import (
	"context"
	"log/slog"
	"regexp"
)

// phone numbers in international or local notation, 9+ digits with
// optional separators
var phoneRegex = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)

// redactPhones replaces detected phone numbers with a mask, keeping the
// last two digits for correlation.
func redactPhones(text string) string {
	return phoneRegex.ReplaceAllStringFunc(text, func(match string) string {
		return "***" + match[len(match)-2:]
	})
}

// RedactingHandler wraps a slog.Handler and masks phone numbers in the
// message and in string attributes.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler creates a new RedactingHandler.
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	return &RedactingHandler{handler: handler}
}

// Enabled implements slog.Handler.
func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle implements slog.Handler. A fresh record is built so the original
// attributes never reach the wrapped handler unredacted.
func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	r := slog.NewRecord(record.Time, record.Level, redactPhones(record.Message), record.PC)

	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(slog.Attr{
			Key:   a.Key,
			Value: redactValue(a.Value),
		})
		return true
	})

	return h.handler.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		redacted[i] = slog.Attr{
			Key:   attr.Key,
			Value: redactValue(attr.Value),
		}
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(redacted)}
}

// WithGroup implements slog.Handler.
func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

// redactValue recursively masks attribute values.
func redactValue(value slog.Value) slog.Value {
	switch value.Kind() {
	case slog.KindString:
		return slog.StringValue(redactPhones(value.String()))
	case slog.KindAny:
		// errors frequently echo user input, so their text is masked too
		if err, ok := value.Any().(error); ok {
			return slog.StringValue(redactPhones(err.Error()))
		}
		return value
	case slog.KindGroup:
		group := value.Group()
		redacted := make([]slog.Attr, len(group))
		for i, attr := range group {
			redacted[i] = slog.Attr{
				Key:   attr.Key,
				Value: redactValue(attr.Value),
			}
		}
		return slog.GroupValue(redacted...)
	default:
		return value
	}
}

// NewRedactedLogger creates a slog.Logger that masks phone numbers.
func NewRedactedLogger(handler slog.Handler) *slog.Logger {
	return slog.New(NewRedactingHandler(handler))
}
