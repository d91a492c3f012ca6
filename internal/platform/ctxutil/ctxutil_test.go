package ctxutil

import (
	"context"
	"testing"
)

func TestRequestDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	if UserID(ctx) != "" || GetRequestData(ctx) != nil {
		t.Fatalf("empty context should carry no caller")
	}
	ctx = WithRequestData(ctx, &RequestData{UserID: "USER-7"})
	if got := UserID(ctx); got != "USER-7" {
		t.Fatalf("user id: want=USER-7 got=%q", got)
	}
}

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	td := GetTraceData(ctx)
	if td == nil || td.TraceID != "t1" || td.RequestID != "r1" {
		t.Fatalf("unexpected trace data: %+v", td)
	}
}

func TestLogFields(t *testing.T) {
	if fields := LogFields(context.Background()); fields != nil {
		t.Fatalf("no trace data: want nil got=%v", fields)
	}
	ctx := WithTraceData(context.Background(), &TraceData{RequestID: "r1"})
	fields := LogFields(ctx)
	if len(fields) != 2 || fields[0] != "request_id" || fields[1] != "r1" {
		t.Fatalf("fields: got=%v", fields)
	}
}
