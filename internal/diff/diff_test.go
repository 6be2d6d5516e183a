package diff

import (
	"reflect"
	"testing"
)

func TestComputeNoDifference(t *testing.T) {
	before := map[string]string{"id": "1", "amount": "100", "trade_date": "2025-11-25"}
	after := map[string]string{"id": "1", "amount": "100", "trade_date": "2025-11-25"}
	if got := Compute(before, after); len(got) != 0 {
		t.Fatalf("expected empty diff, got %v", got)
	}
}

func TestComputeMultipleFields(t *testing.T) {
	before := map[string]string{"id": "1", "amount": "100", "type": "buy", "trade_date": "2025-11-25"}
	after := map[string]string{"id": "2", "amount": "200", "type": "sell", "trade_date": "2025-11-25"}
	want := map[string]Change{
		"id":     {Previous: "1", New: "2"},
		"amount": {Previous: "100", New: "200"},
		"type":   {Previous: "buy", New: "sell"},
	}
	if got := Compute(before, after); !reflect.DeepEqual(got, want) {
		t.Fatalf("Compute = %v, want %v", got, want)
	}
}

func TestComputeIgnoresDateFields(t *testing.T) {
	before := map[string]string{
		"id":         "1",
		"trade_date": "2025-11-25",
		"value_date": "",
		"created_at": "2025-11-25T08:00:00Z",
		"timestamp":  "2025-11-25T08:00:00Z",
	}
	after := map[string]string{
		"id":         "1",
		"trade_date": "2025-11-26",
		"value_date": "2025-11-27",
		"created_at": "2025-11-26T08:00:00Z",
		"timestamp":  "2025-11-26T08:00:00Z",
	}
	if got := Compute(before, after); len(got) != 0 {
		t.Fatalf("expected date changes to be ignored, got %v", got)
	}
}

func TestComputeMissingKeyDoesNotPanic(t *testing.T) {
	before := map[string]string{"id": "1", "amount": "100"}
	after := map[string]string{"id": "1"}
	got := Compute(before, after)
	want := map[string]Change{"amount": {Previous: "100", New: ""}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Compute = %v, want %v", got, want)
	}

	got = Compute(after, before)
	want = map[string]Change{"amount": {Previous: "", New: "100"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Compute = %v, want %v", got, want)
	}
}

func TestIsDateField(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"trade_date", true},
		{"value_date", true},
		{"delivery_date", true},
		{"created_at", true},
		{"updated_at", true},
		{"timestamp", true},
		{"amount", false},
		{"state", false},
		{"underlying", false},
	}
	for _, tt := range tests {
		if got := IsDateField(tt.name); got != tt.want {
			t.Fatalf("IsDateField(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
