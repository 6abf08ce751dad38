package accel

import "testing"

func TestNewBatch(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"valid size", 50, 50},
		{"zero uses default", 0, DefaultBatchSize},
		{"negative uses default", -1, DefaultBatchSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch := NewBatch(tt.size)
			if batch.Size() != tt.expected {
				t.Errorf("expected size %d, got %d", tt.expected, batch.Size())
			}
		})
	}
}

func TestSpans(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		n     int
		spans []Span
	}{
		{"empty", 4, 0, nil},
		{"negative", 4, -3, nil},
		{"exact multiple", 2, 4, []Span{{0, 2}, {2, 4}}},
		{"short tail", 3, 7, []Span{{0, 3}, {3, 6}, {6, 7}}},
		{"single span", 10, 3, []Span{{0, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBatch(tt.size).Spans(tt.n)
			if len(got) != len(tt.spans) {
				t.Fatalf("expected %d spans, got %d (%v)", len(tt.spans), len(got), got)
			}
			covered := 0
			for i := range got {
				if got[i] != tt.spans[i] {
					t.Errorf("span %d: expected %v, got %v", i, tt.spans[i], got[i])
				}
				covered += got[i].Len()
			}
			if tt.n > 0 && covered != tt.n {
				t.Errorf("spans cover %d items, want %d", covered, tt.n)
			}
		})
	}
}
