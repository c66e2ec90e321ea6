package httpx

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/flowqa/caseval/internal/httpx"

// Tracing returns a middleware that opens a server span per request,
// continuing any trace context carried in the incoming headers.
func Tracing() func(handler http.Handler) http.Handler {
	tracer := otel.Tracer(tracerName)
	propagator := otel.GetTextMapPropagator()

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.path", r.URL.Path),
					attribute.String("http.host", r.Host),
				),
			)
			defer span.End()

			saw := &statusAwareResponseWriter{ResponseWriter: w}
			handler.ServeHTTP(saw, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", saw.status))
			switch {
			case saw.status >= 500:
				span.SetStatus(codes.Error, "server error")
			case saw.status >= 400:
				span.SetStatus(codes.Error, "client error")
			default:
				span.SetStatus(codes.Ok, "success")
			}
		})
	}
}
