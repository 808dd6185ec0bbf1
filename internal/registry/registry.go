package registry

import (
	"fmt"
	"sort"

	"github.com/fortuna/services/live-scores-service/internal/sports/basketball"
	"github.com/fortuna/services/live-scores-service/pkg/contracts"
)

// Registry manages available league modules
type Registry struct {
	modules map[string]contracts.LeagueModule
}

// New creates a new league registry with all available leagues
func New() *Registry {
	r := &Registry{
		modules: make(map[string]contracts.LeagueModule),
	}

	r.Register(basketball.NewNBA())
	r.Register(basketball.NewWNBA())

	return r
}

// Register adds a league module to the registry
func (r *Registry) Register(module contracts.LeagueModule) {
	r.modules[module.GetLeagueKey()] = module
}

// GetModule retrieves an enabled league module by key
func (r *Registry) GetModule(leagueKey string) (contracts.LeagueModule, error) {
	module, ok := r.modules[leagueKey]
	if !ok {
		return nil, fmt.Errorf("league module not found: %s", leagueKey)
	}
	if !module.IsEnabled() {
		return nil, fmt.Errorf("league module disabled: %s", leagueKey)
	}
	return module, nil
}

// AllLeagueKeys returns all registered league keys, sorted
func (r *Registry) AllLeagueKeys() []string {
	keys := make([]string, 0, len(r.modules))
	for key := range r.modules {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
