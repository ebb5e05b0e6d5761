// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/storechain/storechain/app/services/storenode/handlers/v1/storegrp"
	"github.com/storechain/storechain/foundation/events"
	"github.com/storechain/storechain/foundation/nameservice"
	"github.com/storechain/storechain/foundation/store/registry"
	"github.com/storechain/storechain/foundation/store/seed"
	"github.com/storechain/storechain/foundation/web"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log      *zap.SugaredLogger
	Registry *registry.Registry
	NS       *nameservice.NameService
	Evts     *events.Events
	Seed     seed.Seed
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	sgh := storegrp.Handlers{
		Log:      cfg.Log,
		Registry: cfg.Registry,
		NS:       cfg.NS,
		Evts:     cfg.Evts,
		Seed:     cfg.Seed,
	}

	app.Handle(http.MethodGet, version, "/events", sgh.Events)
	app.Handle(http.MethodGet, version, "/seed/list", sgh.SeedInfo)
	app.Handle(http.MethodGet, version, "/stores/list", sgh.List)
	app.Handle(http.MethodGet, version, "/stores/value/:address", sgh.Value)
	app.Handle(http.MethodPost, version, "/stores/deploy", sgh.Deploy)
	app.Handle(http.MethodPost, version, "/stores/set", sgh.Set)
}
