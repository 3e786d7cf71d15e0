package slushpool

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFixture[T any](t *testing.T, raw string) *T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return &out
}

func TestMapPoolStats(t *testing.T) {
	stats, err := MapPoolStats(decodeFixture[PoolStatsResponse](t, poolStatsFixture))
	require.NoError(t, err)

	assert.Equal(t, 1.23, stats.Luck.Last10)
	assert.Equal(t, 0.98, stats.Luck.Last50)
	assert.Equal(t, 1.01, stats.Luck.Last250)
	assert.Equal(t, "Gh/s", stats.HashRateUnit)
	assert.Equal(t, 5471264612.0234, stats.ScoringHashRate)
	assert.Equal(t, int64(187324), stats.ActiveWorkers)
	assert.Equal(t, int64(1600000000000), stats.Round.StartTime.UnixMilli())
	assert.Equal(t, int64(3600), stats.Round.Duration)
	assert.Equal(t, 0.42, stats.Round.Probability)

	require.Len(t, stats.Blocks, 2)
	assert.Equal(t, int64(700000), stats.Blocks[0].Number)
	assert.Equal(t, int64(700001), stats.Blocks[1].Number)

	latest := stats.Blocks[1]
	assert.Equal(t, time.Unix(1600000500, 0).UTC(), latest.DateFound)
	assert.Equal(t, int64(2100), latest.MiningDuration)
	assert.Equal(t, int64(8812345678), latest.TotalShares)
	assert.Equal(t, "new", latest.State)
	assert.Equal(t, int64(100), latest.ConfirmationsLeft)
	assert.Equal(t, 6.3856124, latest.Value)
	assert.Equal(t, 0.00012345, latest.UserReward)
	assert.Equal(t, 5400000000.5, latest.PoolScoringHashRate)
}

func TestMapPoolStatsOrdersBlocksByHeight(t *testing.T) {
	blocks := map[string]RawBlock{}
	keys := []string{"9", "700001", "10", "700000"}
	for _, k := range keys {
		blocks[k] = RawBlock{Value: "1", UserReward: "0", State: "confirmed"}
	}
	resp := &PoolStatsResponse{BTC: RawPoolStats{
		LuckB10: "1", LuckB50: "1", LuckB250: "1", RoundProbability: "0",
		Blocks: NewKeyedCollection(keys, blocks),
	}}

	stats, err := MapPoolStats(resp)
	require.NoError(t, err)

	var heights []int64
	for _, b := range stats.Blocks {
		heights = append(heights, b.Number)
	}
	assert.Equal(t, []int64{9, 10, 700000, 700001}, heights)
}

func TestMapPoolStatsRejectsBadHeight(t *testing.T) {
	resp := &PoolStatsResponse{BTC: RawPoolStats{
		LuckB10: "1", LuckB50: "1", LuckB250: "1", RoundProbability: "0",
		Blocks: NewKeyedCollection([]string{"tip"}, map[string]RawBlock{"tip": {Value: "1", UserReward: "1"}}),
	}}

	_, err := MapPoolStats(resp)
	require.Error(t, err)
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))
}

func TestMapPoolStatsRejectsNonNumericValue(t *testing.T) {
	resp := decodeFixture[PoolStatsResponse](t, poolStatsFixture)
	b, ok := resp.BTC.Blocks.Get("700001")
	require.True(t, ok)
	b.Value = "six"
	resp.BTC.Blocks = NewKeyedCollection(resp.BTC.Blocks.Keys(), map[string]RawBlock{
		"700001": b,
		"700000": mustGet(t, resp.BTC.Blocks, "700000"),
	})

	stats, err := MapPoolStats(resp)
	require.Error(t, err)
	assert.Nil(t, stats)
	assert.Contains(t, err.Error(), "blocks[700001].value")
}

func TestMapPoolStatsRejectsMissingLuck(t *testing.T) {
	resp := decodeFixture[PoolStatsResponse](t, poolStatsFixture)
	resp.BTC.LuckB50 = ""

	_, err := MapPoolStats(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "luck_b50")
}

func TestMapUserProfile(t *testing.T) {
	profile, err := MapUserProfile(decodeFixture[UserProfileResponse](t, profileFixture))
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 0.05, profile.Reward.Confirmed)
	assert.Equal(t, 0.0012, profile.Reward.Unconfirmed)
	assert.Equal(t, 0.00003, profile.Reward.Estimated)
	assert.Equal(t, 0.01, profile.Reward.SendThreshold)
	assert.Equal(t, ProfileHashRate{
		Unit:      "Gh/s",
		Last5Min:  14000.5,
		Last60Min: 13950,
		Last24Hr:  13890.25,
		Scoring:   13900,
		Yesterday: 13700,
	}, profile.HashRate)
	assert.Equal(t, WorkerCounts{OK: 5, Low: 1, Off: 2, Dis: 0}, profile.Workers)
}

func TestMapUserProfileRejectsBadReward(t *testing.T) {
	resp := decodeFixture[UserProfileResponse](t, profileFixture)
	resp.BTC.SendThreshold = "0.01 BTC"

	_, err := MapUserProfile(resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send_threshold")
}

func TestMapDailyRewardsPreservesOrder(t *testing.T) {
	rewards, err := MapDailyRewards(decodeFixture[DailyRewardResponse](t, rewardsFixture))
	require.NoError(t, err)

	require.Len(t, rewards, 3)
	assert.Equal(t, int64(1600128000), rewards[0].Date.Unix())
	assert.Equal(t, int64(1600041600), rewards[1].Date.Unix())
	assert.Equal(t, int64(1599955200), rewards[2].Date.Unix())
	assert.Equal(t, 0.0003, rewards[0].TotalReward)
	assert.Equal(t, 0.00028, rewards[0].MiningReward)
	assert.Equal(t, 0.00001, rewards[0].BOSPlusReward)
	assert.Equal(t, 0.000005, rewards[0].ReferralBonus)
	assert.Equal(t, 0.000005, rewards[0].ReferralReward)
	assert.Equal(t, 0.00031, rewards[1].TotalReward)
}

func TestMapDailyRewardsRejectsBadEntry(t *testing.T) {
	resp := decodeFixture[DailyRewardResponse](t, rewardsFixture)
	resp.BTC.DailyRewards[2].ReferralReward = "n/a"

	rewards, err := MapDailyRewards(resp)
	require.Error(t, err)
	assert.Nil(t, rewards)
	assert.Contains(t, err.Error(), "daily_rewards[2].referral_reward")
}

func TestMapDailyRewardsEmpty(t *testing.T) {
	rewards, err := MapDailyRewards(&DailyRewardResponse{})
	require.NoError(t, err)
	assert.Empty(t, rewards)
}

func TestMapWorkers(t *testing.T) {
	workers, err := MapWorkers(decodeFixture[WorkerResponse](t, workersFixture))
	require.NoError(t, err)

	require.Len(t, workers, 2)
	assert.Equal(t, "alice.rig2", workers[0].ID)
	assert.Equal(t, WorkerOff, workers[0].State)
	assert.Equal(t, "alice.rig1", workers[1].ID)
	assert.Equal(t, WorkerOK, workers[1].State)
	assert.Equal(t, time.Unix(1600000200, 0).UTC(), workers[1].LastShare)
	assert.Equal(t, WorkerHashRate{
		Unit:     "Gh/s",
		Scoring:  14000,
		Last5m:   14100,
		Last60m:  13990,
		Last24hr: 13800,
	}, workers[1].HashRate)
}

func TestMapWorkersRejectsUnknownState(t *testing.T) {
	resp := &WorkerResponse{}
	resp.BTC.Workers = NewKeyedCollection([]string{"alice.rig1"}, map[string]RawWorker{
		"alice.rig1": {State: "zzz"},
	})

	_, err := MapWorkers(resp)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownWorkerState))
}

func TestMappersAcceptEmptyArrayCollections(t *testing.T) {
	workers, err := MapWorkers(decodeFixture[WorkerResponse](t, `{"btc": {"workers": []}}`))
	require.NoError(t, err)
	assert.Empty(t, workers)

	resp := decodeFixture[PoolStatsResponse](t, poolStatsFixture)
	require.NoError(t, json.Unmarshal([]byte(`[]`), &resp.BTC.Blocks))
	stats, err := MapPoolStats(resp)
	require.NoError(t, err)
	assert.Empty(t, stats.Blocks)
}

func TestParseWorkerStatePassesKnownStates(t *testing.T) {
	for _, s := range []string{"ok", "low", "off", "dis"} {
		st, err := ParseWorkerState(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(st))
	}
}

func TestMappersAreIdempotent(t *testing.T) {
	statsResp := decodeFixture[PoolStatsResponse](t, poolStatsFixture)
	first, err := MapPoolStats(statsResp)
	require.NoError(t, err)
	second, err := MapPoolStats(statsResp)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	workersResp := decodeFixture[WorkerResponse](t, workersFixture)
	w1, err := MapWorkers(workersResp)
	require.NoError(t, err)
	w2, err := MapWorkers(workersResp)
	require.NoError(t, err)
	assert.Equal(t, w1, w2)

	rewardsResp := decodeFixture[DailyRewardResponse](t, rewardsFixture)
	r1, err := MapDailyRewards(rewardsResp)
	require.NoError(t, err)
	r2, err := MapDailyRewards(rewardsResp)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}

func TestMappersRejectNilResponses(t *testing.T) {
	_, err := MapPoolStats(nil)
	assert.Error(t, err)
	_, err = MapUserProfile(nil)
	assert.Error(t, err)
	_, err = MapDailyRewards(nil)
	assert.Error(t, err)
	_, err = MapWorkers(nil)
	assert.Error(t, err)
}

func TestMappedRecordsUseCamelCaseJSON(t *testing.T) {
	stats, err := MapPoolStats(decodeFixture[PoolStatsResponse](t, poolStatsFixture))
	require.NoError(t, err)

	out, err := json.Marshal(stats)
	require.NoError(t, err)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(out, &generic))
	assert.Contains(t, generic, "hashRateUnit")
	assert.Contains(t, generic, "scoringHashRate")
	luck, ok := generic["luck"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 1.23, luck["10"])
}

func mustGet(t *testing.T, c KeyedCollection[RawBlock], key string) RawBlock {
	t.Helper()
	v, ok := c.Get(key)
	require.True(t, ok)
	return v
}
