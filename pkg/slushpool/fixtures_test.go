package slushpool

const poolStatsFixture = `{
  "btc": {
    "luck_b10": "1.23",
    "luck_b50": "0.98",
    "luck_b250": "1.01",
    "hash_rate_unit": "Gh/s",
    "pool_scoring_hash_rate": 5471264612.0234,
    "pool_active_workers": 187324,
    "round_probability": "0.42",
    "round_started": 1600000000,
    "round_duration": 3600,
    "blocks": {
      "700001": {
        "date_found": 1600000500,
        "mining_duration": 2100,
        "total_shares": 8812345678,
        "state": "new",
        "confirmations_left": 100,
        "value": "6.38561240",
        "user_reward": "0.00012345",
        "pool_scoring_hash_rate": 5400000000.5
      },
      "700000": {
        "date_found": 1599998400,
        "mining_duration": 1800,
        "total_shares": 7712345678,
        "state": "confirmed",
        "confirmations_left": 0,
        "value": "6.25000000",
        "user_reward": "0.00010000",
        "pool_scoring_hash_rate": 5300000000
      }
    }
  }
}`

const profileFixture = `{
  "username": "alice",
  "btc": {
    "confirmed_reward": "0.05000000",
    "unconfirmed_reward": "0.00120000",
    "estimated_reward": "0.00003000",
    "send_threshold": "0.01000000",
    "hash_rate_unit": "Gh/s",
    "hash_rate_5m": 14000.5,
    "hash_rate_60m": 13950,
    "hash_rate_24h": 13890.25,
    "hash_rate_scoring": 13900,
    "hash_rate_yesterday": 13700,
    "low_workers": 1,
    "off_workers": 2,
    "ok_workers": 5,
    "dis_workers": 0
  }
}`

const rewardsFixture = `{
  "btc": {
    "daily_rewards": [
      {"date": 1600128000, "total_reward": "0.00030000", "mining_reward": "0.00028000", "bos_plus_reward": "0.00001000", "referral_bonus": "0.00000500", "referral_reward": "0.00000500"},
      {"date": 1600041600, "total_reward": "0.00031000", "mining_reward": "0.00029000", "bos_plus_reward": "0.00001000", "referral_bonus": "0.00000500", "referral_reward": "0.00000500"},
      {"date": 1599955200, "total_reward": "0.00029000", "mining_reward": "0.00027000", "bos_plus_reward": "0.00001000", "referral_bonus": "0.00000500", "referral_reward": "0.00000500"}
    ]
  }
}`

const workersFixture = `{
  "btc": {
    "workers": {
      "alice.rig2": {
        "state": "off",
        "last_share": 1600000100,
        "hash_rate_unit": "Gh/s",
        "hash_rate_scoring": 0,
        "hash_rate_5m": 0,
        "hash_rate_60m": 0,
        "hash_rate_24h": 1200.5
      },
      "alice.rig1": {
        "state": "ok",
        "last_share": 1600000200,
        "hash_rate_unit": "Gh/s",
        "hash_rate_scoring": 14000,
        "hash_rate_5m": 14100,
        "hash_rate_60m": 13990,
        "hash_rate_24h": 13800
      }
    }
  }
}`
