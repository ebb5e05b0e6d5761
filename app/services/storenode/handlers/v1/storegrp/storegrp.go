// Package storegrp maintains the group of handlers for store access.
package storegrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/storechain/storechain/business/web/errs"
	"github.com/storechain/storechain/foundation/events"
	"github.com/storechain/storechain/foundation/nameservice"
	"github.com/storechain/storechain/foundation/store"
	"github.com/storechain/storechain/foundation/store/registry"
	"github.com/storechain/storechain/foundation/store/seed"
	"github.com/storechain/storechain/foundation/web"
)

// Handlers manages the set of store endpoints.
type Handlers struct {
	Log      *zap.SugaredLogger
	Registry *registry.Registry
	NS       *nameservice.NameService
	WS       websocket.Upgrader
	Evts     *events.Events
	Seed     seed.Seed
}

// Events handles a web socket to provide the store events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Deploy creates a new store with the specified initial value and returns
// the address handle for interacting with it.
func (h Handlers) Deploy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app newDeploy
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	owner, err := store.ToAccountID(app.Owner)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	initial, err := store.ParseValue(app.Value)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("deploy store", "traceid", v.TraceID, "owner", owner, "value", app.Value)

	addr, err := h.Registry.Deploy(registry.DeployTx{Owner: owner, Initial: initial})
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := deployResult{
		Address:   addr,
		Owner:     owner,
		OwnerName: h.NS.Lookup(owner),
		Value:     initial.String(),
	}

	return web.Respond(ctx, w, resp, http.StatusCreated)
}

// Value returns the current value held by the store at the specified address.
func (h Handlers) Value(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	addr, err := registry.ToAddress(web.Param(r, "address"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	val, err := h.Registry.Get(addr)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("unable to read store [%s]: %w", addr, err)
	}

	resp := valueResult{
		Address: addr,
		Value:   val.String(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Set overwrites the value held by the store at the specified address.
func (h Handlers) Set(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app newSet
	if err := web.Decode(r, &app); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	addr, err := registry.ToAddress(app.Address)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	caller, err := store.ToAccountID(app.Caller)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	val, err := store.ParseValue(app.Value)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("set store", "traceid", v.TraceID, "address", addr, "caller", caller, "value", app.Value)

	if err := h.Registry.Set(addr, caller, val); err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("unable to set store [%s]: %w", addr, err)
	}

	resp := setResult{
		Address: addr,
		Value:   val.String(),
		Status:  "value updated",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// List returns a snapshot of every deployed store and its current value.
func (h Handlers) List(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	recs := h.Registry.Copy()
	if len(recs) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	out := make([]info, len(recs))
	for i, rec := range recs {
		out[i] = info{
			Address:   rec.Address,
			Owner:     rec.Owner,
			OwnerName: h.NS.Lookup(rec.Owner),
			Value:     rec.Value.String(),
		}
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// SeedInfo returns the seed information the node started with.
func (h Handlers) SeedInfo(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.Seed, http.StatusOK)
}
