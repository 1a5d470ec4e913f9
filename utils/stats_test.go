package utils

import (
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()
	s.Update(1, 100, 500*time.Millisecond)
	if s.GenerationsPerSecond != 2 {
		t.Fatalf("expected 2 gen/sec, got %v", s.GenerationsPerSecond)
	}
	if s.AveragePopulation != 100 {
		t.Fatalf("expected first sample to seed the average, got %v", s.AveragePopulation)
	}

	s.Update(2, 200, 0)
	if s.AveragePopulation != 110 {
		t.Fatalf("expected moving average 110, got %v", s.AveragePopulation)
	}
	if s.GenerationsPerSecond != 2 {
		t.Fatal("a zero duration must not change the rate")
	}
	if s.TotalGenerations != 2 {
		t.Fatalf("expected 2 generations, got %d", s.TotalGenerations)
	}
}

func TestStatsSummary(t *testing.T) {
	s := NewStats()
	s.TotalGenerations = 12345
	s.RecordTick(1500, 200)
	s.RecordTick(500, 300)

	got := s.Summary(language.English, 2*time.Second)
	for _, want := range []string{"12,345 generations", "2,000 births", "500 deaths", "2.0 seconds"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q missing %q", got, want)
		}
	}
}
