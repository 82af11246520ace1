// Package service provides the service registry.
//
// Providers register under their service ID and the registry routes tool
// IDs such as "math.sin" to the provider that owns the "math" prefix.
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	registry.Register(mathProvider)
//	result, err := registry.Execute(ctx, "math.system", params, appCtx)
package service
