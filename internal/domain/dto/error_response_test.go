package dto

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestErrorResponse_Error(t *testing.T) {
	cases := []struct {
		in   ErrorResponse
		want string
	}{
		{in: ErrorResponse{Message: MsgOverCapacity}, want: MsgOverCapacity},
		{in: ErrorResponse{Message: "invalid request", ErrorDetails: "bad date"}, want: "invalid request: bad date"},
	}
	for _, tc := range cases {
		if got := tc.in.Error(); got != tc.want {
			t.Fatalf("want %q got %q", tc.want, got)
		}
	}
}

func TestNewErrorResponse(t *testing.T) {
	e := NewErrorResponse("pattern not found", nil)
	if e.Message != "pattern not found" || e.ErrorDetails != "" {
		t.Fatalf("unexpected %+v", e)
	}
	if e.Timestamp.Location() != time.UTC || time.Since(e.Timestamp) > time.Second {
		t.Fatalf("timestamp not set in UTC: %v", e.Timestamp)
	}

	e2 := NewErrorResponse("invalid request", errors.New("start_date must not be after end_date"))
	if e2.ErrorDetails != "start_date must not be after end_date" {
		t.Fatalf("unexpected %+v", e2)
	}
}

func TestErrorResponse_JSONOmitsEmptyDetails(t *testing.T) {
	b, err := json.Marshal(NewErrorResponse("pattern not found", nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "error_details") {
		t.Fatalf("expected error_details to be omitted, got %s", b)
	}
}
