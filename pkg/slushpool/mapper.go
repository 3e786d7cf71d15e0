package slushpool

import (
	"fmt"
	"slices"
	"strconv"
)

// MapPoolStats converts the raw pool stats payload. Blocks are returned in
// ascending height order.
func MapPoolStats(resp *PoolStatsResponse) (*PoolStats, error) {
	if resp == nil {
		return nil, fmt.Errorf("pool stats response is nil")
	}
	raw := resp.BTC

	var p fieldParser
	stats := &PoolStats{
		Luck: Luck{
			Last10:  p.decimal("luck_b10", raw.LuckB10),
			Last50:  p.decimal("luck_b50", raw.LuckB50),
			Last250: p.decimal("luck_b250", raw.LuckB250),
		},
		HashRateUnit:    raw.HashRateUnit,
		ScoringHashRate: raw.PoolScoringHashRate,
		ActiveWorkers:   raw.PoolActiveWorkers,
		Round: Round{
			StartTime:   UnixSeconds(raw.RoundStarted),
			Duration:    raw.RoundDuration,
			Probability: p.decimal("round_probability", raw.RoundProbability),
		},
	}
	if p.err != nil {
		return nil, p.err
	}

	blocks := make([]Block, 0, raw.Blocks.Len())
	err := raw.Blocks.Each(func(key string, b RawBlock) error {
		block, err := mapBlock(key, b)
		if err != nil {
			return err
		}
		blocks = append(blocks, block)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(blocks, func(a, b Block) int {
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		default:
			return 0
		}
	})
	stats.Blocks = blocks

	return stats, nil
}

func mapBlock(key string, raw RawBlock) (Block, error) {
	height, err := strconv.ParseInt(key, 10, 64)
	if err != nil {
		return Block{}, fmt.Errorf("blocks[%s]: parse height: %w", key, err)
	}

	var p fieldParser
	block := Block{
		Number:              height,
		DateFound:           UnixSeconds(raw.DateFound),
		MiningDuration:      raw.MiningDuration,
		TotalShares:         raw.TotalShares,
		State:               raw.State,
		ConfirmationsLeft:   raw.ConfirmationsLeft,
		Value:               p.decimal("value", raw.Value),
		UserReward:          p.decimal("user_reward", raw.UserReward),
		PoolScoringHashRate: raw.PoolScoringHashRate,
	}
	if p.err != nil {
		return Block{}, fmt.Errorf("blocks[%s].%w", key, p.err)
	}
	return block, nil
}

// MapUserProfile converts the raw profile payload.
func MapUserProfile(resp *UserProfileResponse) (*UserProfile, error) {
	if resp == nil {
		return nil, fmt.Errorf("user profile response is nil")
	}
	raw := resp.BTC

	var p fieldParser
	profile := &UserProfile{
		Username: resp.Username,
		Reward: ProfileReward{
			Confirmed:     p.decimal("confirmed_reward", raw.ConfirmedReward),
			Unconfirmed:   p.decimal("unconfirmed_reward", raw.UnconfirmedReward),
			Estimated:     p.decimal("estimated_reward", raw.EstimatedReward),
			SendThreshold: p.decimal("send_threshold", raw.SendThreshold),
		},
		HashRate: ProfileHashRate{
			Unit:      raw.HashRateUnit,
			Last5Min:  raw.HashRate5m,
			Last60Min: raw.HashRate60m,
			Last24Hr:  raw.HashRate24h,
			Scoring:   raw.HashRateScoring,
			Yesterday: raw.HashRateYesterday,
		},
		Workers: WorkerCounts{
			OK:  raw.OkWorkers,
			Low: raw.LowWorkers,
			Off: raw.OffWorkers,
			Dis: raw.DisWorkers,
		},
	}
	if p.err != nil {
		return nil, p.err
	}
	return profile, nil
}

// MapDailyRewards converts the raw rewards payload, keeping the source order.
func MapDailyRewards(resp *DailyRewardResponse) ([]DailyReward, error) {
	if resp == nil {
		return nil, fmt.Errorf("daily reward response is nil")
	}

	rewards := make([]DailyReward, 0, len(resp.BTC.DailyRewards))
	for i, raw := range resp.BTC.DailyRewards {
		var p fieldParser
		reward := DailyReward{
			Date:           UnixSeconds(raw.Date),
			TotalReward:    p.decimal("total_reward", raw.TotalReward),
			MiningReward:   p.decimal("mining_reward", raw.MiningReward),
			BOSPlusReward:  p.decimal("bos_plus_reward", raw.BOSPlusReward),
			ReferralBonus:  p.decimal("referral_bonus", raw.ReferralBonus),
			ReferralReward: p.decimal("referral_reward", raw.ReferralReward),
		}
		if p.err != nil {
			return nil, fmt.Errorf("daily_rewards[%d].%w", i, p.err)
		}
		rewards = append(rewards, reward)
	}
	return rewards, nil
}

// MapWorkers converts the raw workers payload. Workers keep the key order of
// the source document.
func MapWorkers(resp *WorkerResponse) ([]Worker, error) {
	if resp == nil {
		return nil, fmt.Errorf("worker response is nil")
	}

	workers := make([]Worker, 0, resp.BTC.Workers.Len())
	err := resp.BTC.Workers.Each(func(id string, raw RawWorker) error {
		state, err := ParseWorkerState(raw.State)
		if err != nil {
			return fmt.Errorf("workers[%s].state: %w", id, err)
		}
		workers = append(workers, Worker{
			ID:        id,
			State:     state,
			LastShare: UnixSeconds(raw.LastShare),
			HashRate: WorkerHashRate{
				Unit:     raw.HashRateUnit,
				Scoring:  raw.HashRateScoring,
				Last5m:   raw.HashRate5m,
				Last60m:  raw.HashRate60m,
				Last24hr: raw.HashRate24h,
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return workers, nil
}
