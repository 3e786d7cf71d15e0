package slushpool

import (
	"fmt"
	"time"
)

// PoolStats is the mapped pool-wide statistics record.
type PoolStats struct {
	Luck            Luck    `json:"luck"`
	HashRateUnit    string  `json:"hashRateUnit"`
	ScoringHashRate float64 `json:"scoringHashRate"`
	ActiveWorkers   int64   `json:"activeWorkers"`
	Round           Round   `json:"round"`
	// Blocks holds the most recent blocks found by the pool, lowest height first.
	Blocks []Block `json:"blocks"`
}

// Luck is the pool luck over the last 10, 50 and 250 blocks.
type Luck struct {
	Last10  float64 `json:"10"`
	Last50  float64 `json:"50"`
	Last250 float64 `json:"250"`
}

// Round describes the round in progress.
type Round struct {
	StartTime time.Time `json:"startTime"`
	// Duration is in seconds.
	Duration    int64   `json:"duration"`
	Probability float64 `json:"probability"`
}

// Block is a block found by the pool.
type Block struct {
	Number              int64     `json:"number"`
	DateFound           time.Time `json:"dateFound"`
	MiningDuration      int64     `json:"miningDuration"`
	TotalShares         int64     `json:"totalShares"`
	State               string    `json:"state"`
	ConfirmationsLeft   int64     `json:"confirmationsLeft"`
	Value               float64   `json:"value"`
	UserReward          float64   `json:"userReward"`
	PoolScoringHashRate float64   `json:"poolScoringHashRate"`
}

// UserProfile is the mapped account profile.
type UserProfile struct {
	Username string          `json:"username"`
	Reward   ProfileReward   `json:"reward"`
	HashRate ProfileHashRate `json:"hashRate"`
	Workers  WorkerCounts    `json:"workers"`
}

type ProfileReward struct {
	Confirmed   float64 `json:"confirmed"`
	Unconfirmed float64 `json:"unconfirmed"`
	// Estimated is the estimated reward for the current block.
	Estimated     float64 `json:"estimated"`
	SendThreshold float64 `json:"sendThreshold"`
}

type ProfileHashRate struct {
	Unit      string  `json:"unit"`
	Last5Min  float64 `json:"last5min"`
	Last60Min float64 `json:"last60min"`
	Last24Hr  float64 `json:"last24hr"`
	Scoring   float64 `json:"scoring"`
	Yesterday float64 `json:"yesterday"`
}

// WorkerCounts is the number of workers per state.
type WorkerCounts struct {
	OK  int64 `json:"ok"`
	Low int64 `json:"low"`
	Off int64 `json:"off"`
	Dis int64 `json:"dis"`
}

// DailyReward is the reward breakdown for a single day.
type DailyReward struct {
	Date           time.Time `json:"date"`
	TotalReward    float64   `json:"totalReward"`
	MiningReward   float64   `json:"miningReward"`
	BOSPlusReward  float64   `json:"bosPlusReward"`
	ReferralBonus  float64   `json:"referralBonus"`
	ReferralReward float64   `json:"referralReward"`
}

// Worker is a single mining device or session.
type Worker struct {
	// ID is the miner login, e.g. username.worker1.
	ID        string         `json:"id"`
	State     WorkerState    `json:"state"`
	LastShare time.Time      `json:"lastShare"`
	HashRate  WorkerHashRate `json:"hashRate"`
}

type WorkerHashRate struct {
	Unit     string  `json:"unit"`
	Scoring  float64 `json:"scoring"`
	Last5m   float64 `json:"last5m"`
	Last60m  float64 `json:"last60m"`
	Last24hr float64 `json:"last24hr"`
}

// WorkerState is the health of a worker as reported by the pool.
type WorkerState string

const (
	WorkerOK       WorkerState = "ok"
	WorkerLow      WorkerState = "low"
	WorkerOff      WorkerState = "off"
	WorkerDisabled WorkerState = "dis"
)

// ParseWorkerState accepts only the four states the pool reports.
func ParseWorkerState(s string) (WorkerState, error) {
	switch st := WorkerState(s); st {
	case WorkerOK, WorkerLow, WorkerOff, WorkerDisabled:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWorkerState, s)
	}
}
