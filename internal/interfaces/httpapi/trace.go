package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("match-ingest/internal/interfaces/httpapi")

// startHandlerSpan opens a child of the otelhttp server span, tagged with the club the route
// addresses. Untraced requests get the no-op span already in the context.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}

	attrs := []attribute.KeyValue{attribute.String("http.route_name", name)}
	if clubID := strings.TrimSpace(r.PathValue("clubID")); clubID != "" {
		attrs = append(attrs, attribute.String("club_id", clubID))
	}
	return apiTracer.Start(ctx, "httpapi.Handler."+name, trace.WithAttributes(attrs...))
}

func markSpanFailed(span trace.Span, status int, err error) {
	if err == nil || !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.Int("http.response.status_code", status))
	if status >= http.StatusInternalServerError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
