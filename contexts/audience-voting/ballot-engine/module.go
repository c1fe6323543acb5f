package ballotengine

import (
	"log/slog"

	httpadapter "galavote/contexts/audience-voting/ballot-engine/adapters/http"
	"galavote/contexts/audience-voting/ballot-engine/adapters/memory"
	"galavote/contexts/audience-voting/ballot-engine/application/commands"
	"galavote/contexts/audience-voting/ballot-engine/application/queries"
	"galavote/contexts/audience-voting/ballot-engine/domain/entities"
	"galavote/contexts/audience-voting/ballot-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Ballots ports.BallotRepository
	Catalog ports.CatalogReader
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

func NewModule(deps Dependencies) Module {
	ballotUseCase := commands.BallotUseCase{
		Ballots: deps.Ballots,
		Catalog: deps.Catalog,
		Clock:   deps.Clock,
		IDGen:   deps.IDGen,
		Logger:  deps.Logger,
	}
	resultsUseCase := queries.ResultsUseCase{
		Ballots: deps.Ballots,
		Catalog: deps.Catalog,
		Clock:   deps.Clock,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Ballots: ballotUseCase,
			Results: resultsUseCase,
			Logger:  deps.Logger,
		},
	}
}

func NewInMemoryModule(seed []entities.Ballot, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Ballots: store,
		Catalog: store,
		Clock:   store,
		IDGen:   store,
		Logger:  logger,
	})
	module.Store = store
	return module
}
