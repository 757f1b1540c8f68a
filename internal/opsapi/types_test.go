package opsapi

import (
	"testing"
	"time"
)

func TestParseTime_AcceptedLayouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		zero  bool
	}{
		{"rfc3339", "2026-08-26T10:00:00Z", false},
		{"rfc3339 nano", "2026-08-26T10:00:00.123456789Z", false},
		{"backend layout", "2026-08-26 10:00:00", false},
		{"empty", "", true},
		{"garbage", "not a time", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseTime(tt.value)
			if got.IsZero() != tt.zero {
				t.Fatalf("parseTime(%q) = %v, want zero=%v", tt.value, got, tt.zero)
			}
		})
	}
}

func TestUnifiedState_ParsedTimestampOrdering(t *testing.T) {
	older := UnifiedState{Timestamp: "2026-08-26T10:00:00Z"}
	newer := UnifiedState{Timestamp: "2026-08-26T10:00:05Z"}
	if !older.ParsedTimestamp().Before(newer.ParsedTimestamp()) {
		t.Fatal("timestamps did not order")
	}
}

func TestDecodeUnifiedState_RequiresEverySection(t *testing.T) {
	// Present-but-empty sections are fine; absent ones are not.
	body := []byte(`{
		"timestamp": "", "sync_id": "", "convoys": [], "routes": [], "tcps": [],
		"threats": [], "military_assets": [], "scheduling": {}, "metrics": {},
		"ai_analysis": {}, "system_status": {}
	}`)
	if _, err := decodeUnifiedState(body); err != nil {
		t.Fatalf("decodeUnifiedState rejected complete document: %v", err)
	}

	if _, err := decodeUnifiedState([]byte(`{"timestamp": "", "sync_id": ""}`)); err == nil {
		t.Fatal("decodeUnifiedState accepted document missing sections")
	}
}

func TestError_MessageNormalization(t *testing.T) {
	if got := shapeErr("missing section convoys").Error(); got != "shape: missing section convoys" {
		t.Fatalf("shape error message = %q", got)
	}
	if got := httpErr("/x", 503).Error(); got != "http: api /x returned status 503" {
		t.Fatalf("http error message = %q", got)
	}
}

func TestConvoy_ParsedUpdatedAt(t *testing.T) {
	c := Convoy{UpdatedAt: "2026-08-26 09:30:00"}
	want := time.Date(2026, 8, 26, 9, 30, 0, 0, time.Local)
	if !c.ParsedUpdatedAt().Equal(want) {
		t.Fatalf("ParsedUpdatedAt = %v, want %v", c.ParsedUpdatedAt(), want)
	}
}
