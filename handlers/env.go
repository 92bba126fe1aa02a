package handlers

import (
	"prepedido/config"
	"prepedido/estimate"
	"prepedido/services"
)

// Env is what every handler needs to serve the pre-order. Mutator is nil for
// read-only deployments; mutation routes then answer with an error toast.
type Env struct {
	Store    *estimate.Store
	Mutator  estimate.Mutator
	Catalog  estimate.Catalog
	Lookups  services.Lookups
	Settings config.Config
	Metrics  *Metrics
}

func (env *Env) editable() bool {
	return env.Mutator != nil
}

func (env *Env) apartmentCount() int {
	return env.Settings.Estimate.ApartmentCount
}
