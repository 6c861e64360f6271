package main

import (
	"encoding/json"
	"log"

	"rival-snake/game/manager"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SessionSummary aggregates every game finished during this run.
type SessionSummary struct {
	GamesPlayed     int     `json:"gamesPlayed"`
	HighScore       int     `json:"highScore"`
	AverageScore    float64 `json:"averageScore"`
	MedianScore     float64 `json:"medianScore"`
	AverageDuration float64 `json:"averageDuration"` // seconds
	MaxDuration     float64 `json:"maxDuration"`     // seconds
	AverageTicks    float64 `json:"averageTicks"`
}

func summarize(sm *manager.StateManager) SessionSummary {
	records := sm.Records()
	summary := SessionSummary{
		GamesPlayed:  len(records),
		HighScore:    sm.GetHighScore(),
		AverageScore: sm.GetAverageScore(),
		MedianScore:  sm.GetMedianScore(),
	}
	if len(records) == 0 {
		return summary
	}

	durations := make([]float64, len(records))
	ticks := make([]float64, len(records))
	for i, r := range records {
		durations[i] = r.Duration().Seconds()
		ticks[i] = float64(r.Ticks)
	}
	summary.AverageDuration = stat.Mean(durations, nil)
	summary.MaxDuration = floats.Max(durations)
	summary.AverageTicks = stat.Mean(ticks, nil)
	return summary
}

func logSummary(logger *log.Logger, sm *manager.StateManager) {
	summary := summarize(sm)
	if summary.GamesPlayed == 0 {
		logger.Println("no finished games this session")
		return
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		logger.Printf("failed to marshal session summary: %v", err)
		return
	}
	logger.Printf("session summary:\n%s", data)
}
