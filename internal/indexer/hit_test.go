package indexer_test

import (
	"encoding/json"
	"testing"

	"discoprowl/internal/indexer"
)

func TestValueIntInterpretation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantOK  bool
		present bool
	}{
		{"integer", `45`, 45, true, true},
		{"float truncates", `45.7`, 45, true, true},
		{"negative float truncates toward zero", `-0.5`, 0, true, true},
		{"string", `"45"`, 45, true, true},
		{"padded string", `" 12 "`, 12, true, true},
		{"non numeric string", `"N/A"`, 0, false, true},
		{"decimal string", `"4.5"`, 0, false, true},
		{"bool", `true`, 0, false, true},
		{"float at int64 overflow", `9223372036854775808`, 0, false, true},
		{"large float in range", `1e18`, 1000000000000000000, true, true},
		{"null", `null`, 0, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit indexer.Hit
			if err := json.Unmarshal([]byte(`{"age":`+tt.raw+`}`), &hit); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			got, ok := hit.Age.Int()
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("Int() = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
			if hit.Age.Present() != tt.present {
				t.Fatalf("Present() = %v, want %v", hit.Age.Present(), tt.present)
			}
		})
	}
}

func TestValueAbsentField(t *testing.T) {
	var hit indexer.Hit
	if err := json.Unmarshal([]byte(`{"fileName":"Halo.zip"}`), &hit); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if hit.Age.Present() || hit.Seeders.Present() {
		t.Fatal("expected absent age and seeders")
	}
	if _, ok := hit.Age.Int(); ok {
		t.Fatal("expected absent age to be malformed")
	}
}

func TestValueKeepsLiteralText(t *testing.T) {
	var hit indexer.Hit
	if err := json.Unmarshal([]byte(`{"seeders":12,"age":"3"}`), &hit); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if hit.Seeders.String() != "12" || hit.Age.String() != "3" {
		t.Fatalf("unexpected literals: %q %q", hit.Seeders.String(), hit.Age.String())
	}

	out, err := json.Marshal(hit.Age)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"3"` {
		t.Fatalf("expected string shape preserved, got %s", out)
	}
}

func TestValueConstructors(t *testing.T) {
	if n, ok := indexer.IntValue(7).Int(); !ok || n != 7 {
		t.Fatalf("IntValue round trip failed: %d %v", n, ok)
	}
	if n, ok := indexer.StringValue("9").Int(); !ok || n != 9 {
		t.Fatalf("StringValue round trip failed: %d %v", n, ok)
	}
	var zero indexer.Value
	if zero.Present() {
		t.Fatal("zero Value should be absent")
	}
}
