package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/funcsys/internal/shared/types"
)

// Registry routes tool IDs of the form "<service>.<tool>" to providers
type Registry struct {
	services sync.Map
}

// Provider interface for service implementations
type Provider interface {
	Definition() types.Service
	Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error)
}

// NewRegistry creates a new service registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a service provider
func (r *Registry) Register(provider Provider) error {
	def := provider.Definition()
	if def.ID == "" {
		return fmt.Errorf("service ID cannot be empty")
	}
	if _, loaded := r.services.LoadOrStore(def.ID, provider); loaded {
		return fmt.Errorf("service already registered: %s", def.ID)
	}
	return nil
}

// Get retrieves a service by ID
func (r *Registry) Get(serviceID string) (Provider, bool) {
	val, ok := r.services.Load(serviceID)
	if !ok {
		return nil, false
	}
	return val.(Provider), true
}

// List returns all registered services sorted by ID
func (r *Registry) List() []types.Service {
	var services []types.Service
	r.services.Range(func(_, value interface{}) bool {
		services = append(services, value.(Provider).Definition())
		return true
	})
	sort.Slice(services, func(i, j int) bool {
		return services[i].ID < services[j].ID
	})
	return services
}

// Execute runs a service tool. Malformed IDs and unknown services produce
// a failed result rather than an error.
func (r *Registry) Execute(ctx context.Context, toolID string, params map[string]interface{}, appCtx *types.Context) (*types.Result, error) {
	serviceID, _, ok := strings.Cut(toolID, ".")
	if !ok || serviceID == "" {
		return failure(fmt.Sprintf("invalid tool ID format: %s", toolID)), nil
	}

	provider, found := r.Get(serviceID)
	if !found {
		return failure(fmt.Sprintf("service not found: %s", serviceID)), nil
	}
	return provider.Execute(ctx, toolID, params, appCtx)
}

// Stats returns registry statistics
func (r *Registry) Stats() map[string]interface{} {
	var total, totalTools int
	r.services.Range(func(_, value interface{}) bool {
		total++
		totalTools += len(value.(Provider).Definition().Tools)
		return true
	})

	return map[string]interface{}{
		"total_services": total,
		"total_tools":    totalTools,
	}
}

func failure(message string) *types.Result {
	return &types.Result{Success: false, Error: &message}
}
