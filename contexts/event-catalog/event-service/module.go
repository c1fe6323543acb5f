package eventservice

import (
	"log/slog"

	httpadapter "galavote/contexts/event-catalog/event-service/adapters/http"
	"galavote/contexts/event-catalog/event-service/adapters/memory"
	"galavote/contexts/event-catalog/event-service/application/commands"
	"galavote/contexts/event-catalog/event-service/application/queries"
	"galavote/contexts/event-catalog/event-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Events  ports.EventRepository
	Billing ports.BillingReader
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	eventUseCase := commands.EventUseCase{
		Events:  deps.Events,
		Billing: deps.Billing,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	catalogUseCase := queries.CatalogUseCase{
		Events: deps.Events,
	}
	return Module{
		Handler: httpadapter.Handler{
			Events:  eventUseCase,
			Catalog: catalogUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Events:  store,
		Billing: store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
