package utils

import "time"

// Stats tracks simulation throughput and population
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	StartTime            time.Time

	lastGeneration int
	lastUpdate     time.Time
}

func NewStats() *Stats {
	now := time.Now()
	return &Stats{StartTime: now, lastUpdate: now}
}

// Update records the engine state observed at now
func (s *Stats) Update(generation int, population int, now time.Time) {
	// generation went backwards: the board was reset
	if generation < s.lastGeneration {
		s.lastGeneration = 0
		s.AveragePopulation = 0
	}

	if elapsed := now.Sub(s.lastUpdate); elapsed > 0 && generation > s.lastGeneration {
		s.GenerationsPerSecond = float64(generation-s.lastGeneration) / elapsed.Seconds()
		s.lastGeneration = generation
		s.lastUpdate = now
	}
	s.TotalGenerations = generation

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}
