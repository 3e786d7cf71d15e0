package accounts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Endpoint names an API operation an account polls.
type Endpoint string

const (
	EndpointStats   Endpoint = "stats"
	EndpointProfile Endpoint = "profile"
	EndpointRewards Endpoint = "rewards"
	EndpointWorkers Endpoint = "workers"
)

// AllEndpoints lists every operation in polling order.
var AllEndpoints = []Endpoint{EndpointStats, EndpointProfile, EndpointRewards, EndpointWorkers}

// Account is a pool account entry declared in the accounts file.
type Account struct {
	ID        string     `json:"id" yaml:"id"`
	Name      string     `json:"name" yaml:"name"`
	Token     string     `json:"token" yaml:"token"`
	TokenEnv  string     `json:"token_env" yaml:"token_env"`
	Endpoints []Endpoint `json:"endpoints" yaml:"endpoints"`
	Enabled   *bool      `json:"enabled" yaml:"enabled"`
}

type configFile struct {
	Accounts []Account `json:"accounts" yaml:"accounts"`
}

// Registry holds the accounts loaded from file.
type Registry struct {
	mu       sync.RWMutex
	accounts []Account
	idx      map[string]Account
}

// LoadRegistry loads the accounts registry from a YAML/JSON file.
func LoadRegistry(path string) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("accounts file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open accounts file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read accounts file: %w", err)
	}

	cfg, err := parseAccounts(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewRegistry(cfg.Accounts)
}

// NewRegistry sanitizes and validates accounts and indexes them by id.
func NewRegistry(accounts []Account) (*Registry, error) {
	if len(accounts) == 0 {
		return nil, errors.New("accounts file contains no accounts entries")
	}

	reg := &Registry{
		accounts: make([]Account, len(accounts)),
		idx:      make(map[string]Account, len(accounts)),
	}
	for i := range accounts {
		acc := sanitizeAccount(accounts[i])
		if err := validateAccount(acc); err != nil {
			return nil, fmt.Errorf("accounts[%d]: %w", i, err)
		}
		if _, exists := reg.idx[acc.ID]; exists {
			return nil, fmt.Errorf("duplicate account id %q", acc.ID)
		}
		reg.accounts[i] = acc
		reg.idx[acc.ID] = acc
	}
	return reg, nil
}

func parseAccounts(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var cfg configFile
		if err := d.fn(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return configFile{}, errors.New("accounts file format not recognized (expected YAML or JSON)")
}

func sanitizeAccount(acc Account) Account {
	acc.ID = strings.TrimSpace(acc.ID)
	acc.Name = strings.TrimSpace(acc.Name)
	acc.Token = strings.TrimSpace(acc.Token)
	acc.TokenEnv = strings.TrimSpace(acc.TokenEnv)

	if acc.Name == "" {
		acc.Name = acc.ID
	}
	if acc.Token == "" && acc.TokenEnv != "" {
		acc.Token = strings.TrimSpace(os.Getenv(acc.TokenEnv))
	}
	if acc.Enabled == nil {
		def := true
		acc.Enabled = &def
	}

	if len(acc.Endpoints) == 0 {
		acc.Endpoints = append([]Endpoint(nil), AllEndpoints...)
	} else {
		eps := make([]Endpoint, 0, len(acc.Endpoints))
		seen := make(map[Endpoint]bool, len(acc.Endpoints))
		for _, ep := range acc.Endpoints {
			ep = Endpoint(strings.ToLower(strings.TrimSpace(string(ep))))
			if ep == "" || seen[ep] {
				continue
			}
			seen[ep] = true
			eps = append(eps, ep)
		}
		acc.Endpoints = eps
	}
	return acc
}

func validateAccount(acc Account) error {
	if acc.ID == "" {
		return errors.New("id is required")
	}
	for _, ep := range acc.Endpoints {
		if !knownEndpoint(ep) {
			return fmt.Errorf("unknown endpoint %q for account %q", ep, acc.ID)
		}
	}
	if acc.EnabledValue() && acc.Token == "" {
		if acc.TokenEnv != "" {
			return fmt.Errorf("token env %s is empty for account %q", acc.TokenEnv, acc.ID)
		}
		return fmt.Errorf("token or token_env is required for account %q", acc.ID)
	}
	return nil
}

func knownEndpoint(ep Endpoint) bool {
	for _, known := range AllEndpoints {
		if ep == known {
			return true
		}
	}
	return false
}

// ByID returns the account by id.
func (r *Registry) ByID(id string) (Account, bool) {
	if r == nil {
		return Account{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	acc, ok := r.idx[strings.TrimSpace(id)]
	return acc, ok
}

// All returns all configured accounts.
func (r *Registry) All() []Account {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Account, len(r.accounts))
	copy(out, r.accounts)
	return out
}

// Enabled returns accounts that are enabled.
func (r *Registry) Enabled() []Account {
	all := r.All()
	out := make([]Account, 0, len(all))
	for _, acc := range all {
		if acc.EnabledValue() {
			out = append(out, acc)
		}
	}
	return out
}

// EnabledValue returns enabled flag defaulting to true.
func (a Account) EnabledValue() bool {
	if a.Enabled == nil {
		return true
	}
	return *a.Enabled
}

// Polls reports whether the account has ep enabled.
func (a Account) Polls(ep Endpoint) bool {
	for _, e := range a.Endpoints {
		if e == ep {
			return true
		}
	}
	return false
}
