package services

import (
	portsrepo "github.com/SscSPs/cuadre_caja_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cuadre_caja_app/internal/core/ports/services"
	"github.com/SscSPs/cuadre_caja_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	options := []ServiceOption{
		WithTolerance(cfg.BalanceTolerance),
		WithCancellationCodes(cfg.CancellationCodeTTL, cfg.CancellationCodeLength),
	}

	return &portssvc.ServiceContainer{
		Reconciliation: NewReconciliationService(repos, options...),
		Cancellation:   NewCancellationService(repos, options...),
		Movement:       NewMovementService(repos, options...),
		Corte:          NewCorteService(repos, options...),
	}
}
