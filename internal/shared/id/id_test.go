package id

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestNewRunID(t *testing.T) {
	runID := NewGenerator().NewRunID()

	parts := strings.Split(runID.String(), "_")
	if len(parts) != 2 {
		t.Fatalf("Run ID should have format 'run_ulid', got: %s", runID)
	}
	if parts[0] != RunPrefix {
		t.Errorf("Expected prefix %q, got %q", RunPrefix, parts[0])
	}
	if _, err := Parse(parts[1]); err != nil {
		t.Errorf("ULID part should be valid: %s: %v", parts[1], err)
	}
}

func TestDeterministicGenerator(t *testing.T) {
	at := time.Date(2020, 8, 24, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return at }

	a := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 64)), clock).NewRunID()
	b := NewGeneratorWithEntropy(bytes.NewReader(make([]byte, 64)), clock).NewRunID()

	if a != b {
		t.Errorf("Same entropy and clock should give the same run ID: %s != %s", a, b)
	}

	ts, err := a.Timestamp()
	if err != nil {
		t.Fatalf("Failed to extract timestamp: %v", err)
	}
	if !ts.Equal(at) {
		t.Errorf("Timestamp should be %v, got %v", at, ts)
	}
}

func TestRunIDTimestampRejectsForeignPrefix(t *testing.T) {
	if _, err := RunID("app_01ARZ3NDEKTSV4RRFFQ69G5FAV").Timestamp(); err == nil {
		t.Error("Expected an error for a non-run prefix")
	}
}

func TestParse(t *testing.T) {
	gen := NewGenerator()

	validID := gen.GenerateString()
	if _, err := Parse(validID); err != nil {
		t.Errorf("Generated ULID should parse: %v", err)
	}

	invalidIDs := []string{
		"",
		"invalid",
		"1234567890",
		"zzzzzzzzzzzzzzzzzzzzzzzzzzz", // Invalid characters
	}

	for _, id := range invalidIDs {
		if _, err := Parse(id); err == nil {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestTimestamp(t *testing.T) {
	gen := NewGenerator()

	before := time.Now()
	id := gen.GenerateString()
	after := time.Now()

	ts, err := Timestamp(id)
	if err != nil {
		t.Fatalf("Failed to extract timestamp: %v", err)
	}

	// ULID timestamps have millisecond precision
	if ts.UnixMilli() < before.UnixMilli() || ts.UnixMilli() > after.UnixMilli() {
		t.Errorf("Timestamp should be between %d and %d ms, got %d ms", before.UnixMilli(), after.UnixMilli(), ts.UnixMilli())
	}
}

func TestLexicographicSorting(t *testing.T) {
	gen := NewGenerator()

	ids := make([]RunID, 5)
	for i := range ids {
		ids[i] = gen.NewRunID()
		time.Sleep(2 * time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		if ids[i] <= ids[i-1] {
			t.Errorf("Run IDs should be lexicographically sorted: %s should be > %s", ids[i], ids[i-1])
		}
	}
}

func TestDefaultGenerator(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}
