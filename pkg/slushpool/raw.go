package slushpool

// Raw payloads as served by the API. Decimal amounts arrive as strings and
// instants as Unix seconds.

// PoolStatsResponse is the body of the pool stats endpoint.
type PoolStatsResponse struct {
	BTC RawPoolStats `json:"btc"`
}

type RawPoolStats struct {
	LuckB10             string  `json:"luck_b10"`
	LuckB50             string  `json:"luck_b50"`
	LuckB250            string  `json:"luck_b250"`
	HashRateUnit        string  `json:"hash_rate_unit"`
	PoolScoringHashRate float64 `json:"pool_scoring_hash_rate"`
	PoolActiveWorkers   int64   `json:"pool_active_workers"`
	RoundProbability    string  `json:"round_probability"`
	RoundStarted        int64   `json:"round_started"`
	RoundDuration       int64   `json:"round_duration"`
	// Blocks is keyed by block height.
	Blocks KeyedCollection[RawBlock] `json:"blocks"`
}

type RawBlock struct {
	DateFound           int64   `json:"date_found"`
	MiningDuration      int64   `json:"mining_duration"`
	TotalShares         int64   `json:"total_shares"`
	State               string  `json:"state"`
	ConfirmationsLeft   int64   `json:"confirmations_left"`
	Value               string  `json:"value"`
	UserReward          string  `json:"user_reward"`
	PoolScoringHashRate float64 `json:"pool_scoring_hash_rate"`
}

// UserProfileResponse is the body of the profile endpoint.
type UserProfileResponse struct {
	Username string         `json:"username"`
	BTC      RawUserProfile `json:"btc"`
}

type RawUserProfile struct {
	ConfirmedReward   string  `json:"confirmed_reward"`
	UnconfirmedReward string  `json:"unconfirmed_reward"`
	EstimatedReward   string  `json:"estimated_reward"`
	SendThreshold     string  `json:"send_threshold"`
	HashRateUnit      string  `json:"hash_rate_unit"`
	HashRate5m        float64 `json:"hash_rate_5m"`
	HashRate60m       float64 `json:"hash_rate_60m"`
	HashRate24h       float64 `json:"hash_rate_24h"`
	HashRateScoring   float64 `json:"hash_rate_scoring"`
	HashRateYesterday float64 `json:"hash_rate_yesterday"`
	LowWorkers        int64   `json:"low_workers"`
	OffWorkers        int64   `json:"off_workers"`
	OkWorkers         int64   `json:"ok_workers"`
	DisWorkers        int64   `json:"dis_workers"`
}

// DailyRewardResponse is the body of the rewards endpoint.
type DailyRewardResponse struct {
	BTC struct {
		DailyRewards []RawDailyReward `json:"daily_rewards"`
	} `json:"btc"`
}

type RawDailyReward struct {
	Date           int64  `json:"date"`
	TotalReward    string `json:"total_reward"`
	MiningReward   string `json:"mining_reward"`
	BOSPlusReward  string `json:"bos_plus_reward"`
	ReferralBonus  string `json:"referral_bonus"`
	ReferralReward string `json:"referral_reward"`
}

// WorkerResponse is the body of the workers endpoint.
type WorkerResponse struct {
	BTC struct {
		// Workers is keyed by worker id.
		Workers KeyedCollection[RawWorker] `json:"workers"`
	} `json:"btc"`
}

type RawWorker struct {
	State           string  `json:"state"`
	LastShare       int64   `json:"last_share"`
	HashRateUnit    string  `json:"hash_rate_unit"`
	HashRateScoring float64 `json:"hash_rate_scoring"`
	HashRate5m      float64 `json:"hash_rate_5m"`
	HashRate60m     float64 `json:"hash_rate_60m"`
	HashRate24h     float64 `json:"hash_rate_24h"`
}
