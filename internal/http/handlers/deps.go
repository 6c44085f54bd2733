package handlers

import (
	"pcforge/internal/metrics"
	"pcforge/internal/repos"
	"pcforge/internal/services"
	"pcforge/internal/storage"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Auth    *services.AuthService
	AuthH   *AuthHandler
	API     *APIHandler
	Admin   *AdminHandler
	Metrics *metrics.Collector
}

func NewDeps(db *sqlx.DB, store storage.Storage, m *metrics.Collector) (*Deps, error) {
	compRepo := repos.NewComponentRepo(db)
	presetRepo := repos.NewPresetRepo(db)
	userRepo := repos.NewUserRepo(db)

	compat, err := services.NewCompatService(compRepo)
	if err != nil {
		return nil, err
	}
	compSvc := services.NewComponentService(compRepo, store)
	presetSvc := services.NewPresetService(presetRepo, compat, store)
	authSvc := &services.AuthService{Users: userRepo}

	return &Deps{
		Auth:  authSvc,
		AuthH: &AuthHandler{Auth: authSvc},
		API:   &APIHandler{Components: compSvc, Presets: presetSvc, Compat: compat, Metrics: m},
		Admin: &AdminHandler{
			Components: compSvc,
			Presets:    presetSvc,
			Compat:     compat,
			local:      &localCatalog{components: compSvc, presets: presetSvc, metrics: m},
		},
		Metrics: m,
	}, nil
}
