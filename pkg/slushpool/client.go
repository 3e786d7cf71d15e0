package slushpool

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/scottypickering/slushpool/pkg/httpclient"
)

// Endpoint URLs and the auth header must match the remote service exactly.
const (
	StatsURL   = "https://slushpool.com/stats/json/btc"
	ProfileURL = "https://slushpool.com/accounts/profile/json/btc"
	RewardsURL = "https://slushpool.com/accounts/rewards/json/btc"
	WorkersURL = "https://slushpool.com/accounts/workers/json/btc"

	AuthHeader = "X-SlushPool-Auth-Token"
)

// Endpoints lists the URL used for each operation.
type Endpoints struct {
	Stats   string
	Profile string
	Rewards string
	Workers string
}

// DefaultEndpoints returns the production endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Stats:   StatsURL,
		Profile: ProfileURL,
		Rewards: RewardsURL,
		Workers: WorkersURL,
	}
}

// Client issues authenticated requests against the pool API. It is safe for
// concurrent use; SetToken may be called between or during requests and only
// affects calls started afterwards.
type Client struct {
	http      httpclient.Client
	endpoints Endpoints

	mu    sync.RWMutex
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default resty-backed transport.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithEndpoints overrides the endpoint URLs. Empty fields keep their default.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) {
		if e.Stats != "" {
			c.endpoints.Stats = e.Stats
		}
		if e.Profile != "" {
			c.endpoints.Profile = e.Profile
		}
		if e.Rewards != "" {
			c.endpoints.Rewards = e.Rewards
		}
		if e.Workers != "" {
			c.endpoints.Workers = e.Workers
		}
	}
}

// WithToken sets the initial token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New builds a Client. Without WithToken every operation fails with
// ErrNoToken until SetToken is called.
func New(opts ...Option) *Client {
	c := &Client{endpoints: DefaultEndpoints()}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(httpclient.DefaultTimeout)
	}
	return c
}

// SetToken stores the account token, replacing any previous one. The value is
// not validated; an empty token leaves the client unconfigured.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Stats fetches the pool statistics.
func (c *Client) Stats(ctx context.Context) (*PoolStats, error) {
	var raw PoolStatsResponse
	if err := c.get(ctx, c.endpoints.Stats, &raw); err != nil {
		return nil, err
	}
	return MapPoolStats(&raw)
}

// Profile fetches the account profile.
func (c *Client) Profile(ctx context.Context) (*UserProfile, error) {
	var raw UserProfileResponse
	if err := c.get(ctx, c.endpoints.Profile, &raw); err != nil {
		return nil, err
	}
	return MapUserProfile(&raw)
}

// Rewards fetches the daily reward history.
func (c *Client) Rewards(ctx context.Context) ([]DailyReward, error) {
	var raw DailyRewardResponse
	if err := c.get(ctx, c.endpoints.Rewards, &raw); err != nil {
		return nil, err
	}
	return MapDailyRewards(&raw)
}

// Workers fetches the account workers.
func (c *Client) Workers(ctx context.Context) ([]Worker, error) {
	var raw WorkerResponse
	if err := c.get(ctx, c.endpoints.Workers, &raw); err != nil {
		return nil, err
	}
	return MapWorkers(&raw)
}

// get performs one GET and decodes the body into out. Transport, status and
// JSON errors are returned as produced, without wrapping.
func (c *Client) get(ctx context.Context, url string, out any) error {
	token := c.currentToken()
	if token == "" {
		return ErrNoToken
	}

	resp, err := c.http.Get(ctx, url, map[string]string{AuthHeader: token})
	if err != nil {
		return err
	}
	if err := httpclient.CheckStatus(resp); err != nil {
		return err
	}
	return json.Unmarshal(resp.Body(), out)
}
