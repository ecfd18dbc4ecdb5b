package community

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Config describes one hosted community. BootstrapAdminEmail is the one
// identity that gets seeded as admin on first signup; it lives here instead
// of in source so deployments can rotate it.
type Config struct {
	CommunityID         string          `json:"community_id"`
	Name                string          `json:"name"`
	BootstrapAdminEmail string          `json:"bootstrap_admin_email"`
	Features            map[string]bool `json:"features"`
}

type File struct {
	Communities []Config `json:"communities"`
}

type Registry struct {
	mu          sync.RWMutex
	communities map[string]*Config
}

func NewRegistry() *Registry {
	return &Registry{
		communities: make(map[string]*Config),
	}
}

func LoadFromFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read communities config: %w", err)
	}

	var file File
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse communities config: %w", err)
	}

	registry := NewRegistry()
	for i := range file.Communities {
		registry.Register(&file.Communities[i])
	}
	return registry, nil
}

func (r *Registry) Register(cfg *Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.communities[cfg.CommunityID] = cfg
}

func (r *Registry) Get(communityID string) *Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.communities[communityID]
}

func (r *Registry) Exists(communityID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.communities[communityID]
	return ok
}

func (r *Registry) HasFeature(communityID, feature string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.communities[communityID]
	if !ok {
		return false
	}
	return cfg.Features[feature]
}

func (r *Registry) All() []*Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Config, 0, len(r.communities))
	for _, cfg := range r.communities {
		result = append(result, cfg)
	}
	return result
}

func (r *Registry) BootstrapAdminEmail(communityID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.communities[communityID]
	if !ok {
		return ""
	}
	return cfg.BootstrapAdminEmail
}
