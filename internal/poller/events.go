package poller

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/scottypickering/slushpool/internal/accounts"
	"github.com/scottypickering/slushpool/internal/storage"
	"github.com/scottypickering/slushpool/pkg/publishers"
	"github.com/scottypickering/slushpool/pkg/slushpool"
)

// outgoing is an event plus the digest its dedupe key is compared against.
// Snapshots have no key and a zero digest.
type outgoing struct {
	event  publishers.Event
	digest uint64
}

// BlockKey identifies one account's view of a block in a given state.
func BlockKey(accountID string, b slushpool.Block) string {
	return fmt.Sprintf("block:%s:%d:%s", accountID, b.Number, b.State)
}

// RewardKey identifies one account's reward for one day.
func RewardKey(accountID string, r slushpool.DailyReward) string {
	return fmt.Sprintf("reward:%s:%d", accountID, r.Date.Unix())
}

// amountsDigest hashes the amounts whose change must re-publish an event.
func amountsDigest(amounts ...float64) uint64 {
	buf := make([]byte, 8*len(amounts))
	for i, a := range amounts {
		binary.BigEndian.PutUint64(buf[i*8:], math.Float64bits(a))
	}
	return storage.Digest(buf)
}

func blockDigest(b slushpool.Block) uint64 {
	return amountsDigest(b.Value, b.UserReward)
}

func rewardDigest(r slushpool.DailyReward) uint64 {
	return amountsDigest(r.TotalReward, r.MiningReward, r.BOSPlusReward, r.ReferralBonus, r.ReferralReward)
}

func snapshot(acc accounts.Account, kind string, payload any) outgoing {
	return outgoing{event: publishers.NewEvent(acc.ID, acc.Name, kind, "", payload)}
}

func statsEvents(acc accounts.Account, stats *slushpool.PoolStats) []outgoing {
	out := make([]outgoing, 0, len(stats.Blocks)+1)
	out = append(out, snapshot(acc, publishers.KindPoolStats, stats))
	for _, b := range stats.Blocks {
		out = append(out, outgoing{
			event:  publishers.NewEvent(acc.ID, acc.Name, publishers.KindBlock, BlockKey(acc.ID, b), b),
			digest: blockDigest(b),
		})
	}
	return out
}

func profileEvents(acc accounts.Account, profile *slushpool.UserProfile) []outgoing {
	return []outgoing{snapshot(acc, publishers.KindUserProfile, profile)}
}

func rewardEvents(acc accounts.Account, rewards []slushpool.DailyReward) []outgoing {
	out := make([]outgoing, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, outgoing{
			event:  publishers.NewEvent(acc.ID, acc.Name, publishers.KindDailyReward, RewardKey(acc.ID, r), r),
			digest: rewardDigest(r),
		})
	}
	return out
}

func workerEvents(acc accounts.Account, workers []slushpool.Worker) []outgoing {
	return []outgoing{snapshot(acc, publishers.KindWorkers, workers)}
}
