package utils

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	TotalBirths          int
	TotalDeaths          int
	Restarts             int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// RecordTick adds the births and deaths of one generation
func (s *Stats) RecordTick(births, deaths int) {
	s.TotalBirths += births
	s.TotalDeaths += deaths
}

// Summary formats the final run statistics with locale-aware number grouping
func (s *Stats) Summary(tag language.Tag, elapsed time.Duration) string {
	p := message.NewPrinter(tag)
	return p.Sprintf("%d generations in %.1f seconds | %d births, %d deaths | %.1f avg population | %d restarts",
		s.TotalGenerations, elapsed.Seconds(), s.TotalBirths, s.TotalDeaths, s.AveragePopulation, s.Restarts)
}
