package manager

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// GameRecord describes one finished game.
type GameRecord struct {
	SessionID string    `json:"sessionId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
	Ticks     int       `json:"ticks"`
}

// Duration is the wall-clock length of the game.
func (r GameRecord) Duration() time.Duration {
	return r.EndTime.Sub(r.StartTime)
}

// StateManager keeps the score history of the running process. Nothing is
// written to disk.
type StateManager struct {
	sessionID string
	startTime time.Time
	highScore int
	records   []GameRecord
	now       func() time.Time
}

func NewStateManager() *StateManager {
	sm := &StateManager{
		records: make([]GameRecord, 0),
		now:     time.Now,
	}
	sm.StartSession()
	return sm
}

// StartSession opens a new game with a fresh session id.
func (sm *StateManager) StartSession() string {
	sm.sessionID = uuid.New().String()
	sm.startTime = sm.now()
	return sm.sessionID
}

func (sm *StateManager) SessionID() string {
	return sm.sessionID
}

// EndSession records the final score of the current game.
func (sm *StateManager) EndSession(score, ticks int) GameRecord {
	rec := GameRecord{
		SessionID: sm.sessionID,
		StartTime: sm.startTime,
		EndTime:   sm.now(),
		Score:     score,
		Ticks:     ticks,
	}
	sm.records = append(sm.records, rec)
	sm.UpdateScore(score)
	return rec
}

// UpdateScore raises the high score if score beats it.
func (sm *StateManager) UpdateScore(score int) {
	if score > sm.highScore {
		sm.highScore = score
	}
}

func (sm *StateManager) GetHighScore() int {
	return sm.highScore
}

func (sm *StateManager) GamesPlayed() int {
	return len(sm.records)
}

func (sm *StateManager) Records() []GameRecord {
	return sm.records
}

func (sm *StateManager) scores() []float64 {
	scores := make([]float64, len(sm.records))
	for i, r := range sm.records {
		scores[i] = float64(r.Score)
	}
	return scores
}

// GetAverageScore returns the mean final score, or 0 before any game ended.
func (sm *StateManager) GetAverageScore() float64 {
	if len(sm.records) == 0 {
		return 0
	}
	return stat.Mean(sm.scores(), nil)
}

// GetMedianScore returns the median final score, or 0 before any game ended.
func (sm *StateManager) GetMedianScore() float64 {
	if len(sm.records) == 0 {
		return 0
	}
	scores := sm.scores()
	sort.Float64s(scores)
	mid := len(scores) / 2
	if len(scores)%2 == 0 {
		return (scores[mid-1] + scores[mid]) / 2
	}
	return scores[mid]
}
