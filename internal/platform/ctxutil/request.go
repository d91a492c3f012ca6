package ctxutil

import "context"

type (
	requestDataKey struct{}
	traceDataKey   struct{}
)

// RequestData is the authenticated caller attached by the auth middleware.
type RequestData struct {
	TokenString string
	UserID      string
}

// TraceData correlates one HTTP request across logs, spans and response headers.
type TraceData struct {
	TraceID   string
	RequestID string
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	rd, _ := ctx.Value(requestDataKey{}).(*RequestData)
	return rd
}

// UserID is the caller's id or "" when the request is anonymous.
func UserID(ctx context.Context) string {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.UserID
	}
	return ""
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	td, _ := ctx.Value(traceDataKey{}).(*TraceData)
	return td
}

// LogFields returns the non-empty trace_id and request_id pairs for a log line.
func LogFields(ctx context.Context) []any {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	var fields []any
	if td.TraceID != "" {
		fields = append(fields, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		fields = append(fields, "request_id", td.RequestID)
	}
	return fields
}
