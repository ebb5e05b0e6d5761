package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"

	"github.com/storechain/storechain/app/services/storenode/handlers"
	"github.com/storechain/storechain/foundation/events"
	"github.com/storechain/storechain/foundation/logger"
	"github.com/storechain/storechain/foundation/nameservice"
	"github.com/storechain/storechain/foundation/store"
	"github.com/storechain/storechain/foundation/store/registry"
	"github.com/storechain/storechain/foundation/store/registry/storage/disk"
	"github.com/storechain/storechain/foundation/store/seed"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("STORENODE")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			PublicHost      string        `conf:"default:0.0.0.0:8080"`
		}
		Store struct {
			DBPath         string `conf:"default:zstore/stores/"`
			SeedPath       string `conf:"default:zstore/seed.json"`
			AccountsFolder string `conf:"default:zstore/accounts/"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "copyright information here",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "STORENODE"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Name Service Support

	// The nameservice package provides name resolution for account addresses.
	// The names come from the key file names in the accounts folder.
	if err := os.MkdirAll(cfg.Store.AccountsFolder, 0755); err != nil {
		return fmt.Errorf("unable to create accounts folder: %w", err)
	}

	ns, err := nameservice.New(cfg.Store.AccountsFolder)
	if err != nil {
		return fmt.Errorf("unable to load account name service: %w", err)
	}

	// Logging the accounts for documentation in the logs.
	for accountID, name := range ns.Copy() {
		log.Infow("startup", "status", "nameservice", "name", name, "account", accountID)
	}

	// =========================================================================
	// Store Support

	// The store packages accept a function of this signature to allow the
	// application to log. These raw messages are also sent to any websocket
	// client that is connected into the system through the events package.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
		evts.Send(s)
	}

	// Access the disk serializer the registry persists store records through.
	strg, err := disk.New(cfg.Store.DBPath)
	if err != nil {
		return fmt.Errorf("unable to access storage: %w", err)
	}

	// The registry manages the deployed stores and replays any persisted
	// records from a previous run.
	reg, err := registry.New(registry.Config{
		Serializer: strg,
		EvHandler:  ev,
	})
	if err != nil {
		return fmt.Errorf("unable to construct registry: %w", err)
	}
	defer reg.Shutdown()

	// When the node starts with no persisted stores, deploy the stores the
	// seed file declares.
	sd, err := deploySeed(cfg.Store.SeedPath, reg, log)
	if err != nil {
		return fmt.Errorf("unable to deploy seed stores: %w", err)
	}

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug router started", "host", cfg.Web.DebugHost)

	// The Debug function returns a mux to listen and serve on for all the debug
	// related endpoints. This includes the standard library endpoints.
	debugMux := handlers.DebugMux(build, log)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Service Start/Stop Support

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// =========================================================================
	// Start Public Service

	log.Infow("startup", "status", "initializing V1 public API support")

	// Construct the mux for the public API calls.
	publicMux := handlers.PublicMux(handlers.MuxConfig{
		Shutdown: shutdown,
		Log:      log,
		Registry: reg,
		NS:       ns,
		Evts:     evts,
		Seed:     sd,
	})

	// Construct a server to service the requests against the mux.
	public := http.Server{
		Addr:         cfg.Web.PublicHost,
		Handler:      publicMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "public api router started", "host", public.Addr)
		serverErrors <- public.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		log.Infow("shutdown", "status", "shutdown public API started")
		if err := public.Shutdown(ctx); err != nil {
			public.Close()
			return fmt.Errorf("could not stop public service gracefully: %w", err)
		}
	}

	return nil
}

// deploySeed loads the seed file and deploys the stores it declares when the
// registry holds no stores from a previous run. A missing seed file is not
// an error, the node just starts empty.
func deploySeed(path string, reg *registry.Registry, log *zap.SugaredLogger) (seed.Seed, error) {
	sd, err := seed.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infow("startup", "status", "no seed file", "path", path)
			return seed.Seed{}, nil
		}
		return seed.Seed{}, err
	}

	if reg.Count() > 0 {
		return sd, nil
	}

	for name, sdStore := range sd.Stores {
		owner, err := store.ToAccountID(sdStore.Owner)
		if err != nil {
			return seed.Seed{}, fmt.Errorf("seed store %q: %w", name, err)
		}

		initial, err := store.ParseValue(sdStore.Value)
		if err != nil {
			return seed.Seed{}, fmt.Errorf("seed store %q: %w", name, err)
		}

		addr, err := reg.Deploy(registry.DeployTx{Owner: owner, Initial: initial})
		if err != nil {
			return seed.Seed{}, fmt.Errorf("seed store %q: %w", name, err)
		}

		log.Infow("startup", "status", "seed store deployed", "name", name, "address", addr)
	}

	return sd, nil
}
