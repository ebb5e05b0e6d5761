package registry_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storechain/storechain/foundation/store"
	"github.com/storechain/storechain/foundation/store/registry"
	"github.com/storechain/storechain/foundation/store/registry/storage/memory"
)

const (
	owner  = store.AccountID("0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4")
	caller = store.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
)

func newRegistry(t *testing.T, serializer registry.Serializer) *registry.Registry {
	t.Helper()

	reg, err := registry.New(registry.Config{Serializer: serializer})
	require.NoError(t, err)

	return reg
}

func mustValue(t *testing.T, s string) store.Value {
	t.Helper()

	v, err := store.ParseValue(s)
	require.NoError(t, err)

	return v
}

func TestDeployGetSet(t *testing.T) {
	strg, err := memory.New()
	require.NoError(t, err)

	reg := newRegistry(t, strg)

	addr, err := reg.Deploy(registry.DeployTx{Owner: owner, Initial: mustValue(t, "123")})
	require.NoError(t, err)
	require.NotEmpty(t, addr)

	got, err := reg.Get(addr)
	require.NoError(t, err)
	require.Equal(t, "123", got.String())

	require.NoError(t, reg.Set(addr, caller, mustValue(t, "456")))

	got, err = reg.Get(addr)
	require.NoError(t, err)
	require.Equal(t, "456", got.String())
}

func TestNotFound(t *testing.T) {
	strg, err := memory.New()
	require.NoError(t, err)

	reg := newRegistry(t, strg)

	addr, err := registry.ToAddress("0xFef311483Cc040e1A89fb9bb469eeB8A70935EF8")
	require.NoError(t, err)

	_, err = reg.Get(addr)
	require.ErrorIs(t, err, registry.ErrNotFound)

	err = reg.Set(addr, caller, mustValue(t, "456"))
	require.ErrorIs(t, err, registry.ErrNotFound)
}

func TestIsolation(t *testing.T) {
	strg, err := memory.New()
	require.NoError(t, err)

	reg := newRegistry(t, strg)

	addrA, err := reg.Deploy(registry.DeployTx{Owner: owner, Initial: mustValue(t, "123")})
	require.NoError(t, err)

	addrB, err := reg.Deploy(registry.DeployTx{Owner: owner, Initial: mustValue(t, "456")})
	require.NoError(t, err)

	require.NotEqual(t, addrA, addrB)

	gotA, err := reg.Get(addrA)
	require.NoError(t, err)
	require.Equal(t, "123", gotA.String())

	gotB, err := reg.Get(addrB)
	require.NoError(t, err)
	require.Equal(t, "456", gotB.String())

	require.NoError(t, reg.Set(addrA, caller, mustValue(t, "789")))

	gotB, err = reg.Get(addrB)
	require.NoError(t, err)
	require.Equal(t, "456", gotB.String())
}

func TestReplay(t *testing.T) {
	strg, err := memory.New()
	require.NoError(t, err)

	reg := newRegistry(t, strg)

	addr, err := reg.Deploy(registry.DeployTx{Owner: owner, Initial: mustValue(t, "123")})
	require.NoError(t, err)
	require.NoError(t, reg.Set(addr, caller, mustValue(t, "456")))

	// A new registry over the same serializer must reconstruct the
	// latest values.
	reg2 := newRegistry(t, strg)
	require.Equal(t, 1, reg2.Count())

	got, err := reg2.Get(addr)
	require.NoError(t, err)
	require.Equal(t, "456", got.String())

	recs := reg2.Copy()
	require.Len(t, recs, 1)
	require.Equal(t, addr, recs[0].Address)
	require.Equal(t, owner, recs[0].Owner)
}

func TestReset(t *testing.T) {
	strg, err := memory.New()
	require.NoError(t, err)

	reg := newRegistry(t, strg)

	addr, err := reg.Deploy(registry.DeployTx{Owner: owner, Initial: mustValue(t, "123")})
	require.NoError(t, err)

	require.NoError(t, reg.Reset())
	require.Equal(t, 0, reg.Count())

	_, err = reg.Get(addr)
	require.ErrorIs(t, err, registry.ErrNotFound)

	// The serializer must be empty as well.
	reg2 := newRegistry(t, strg)
	require.Equal(t, 0, reg2.Count())
}

func TestEvents(t *testing.T) {
	strg, err := memory.New()
	require.NoError(t, err)

	var events int
	reg, err := registry.New(registry.Config{
		Serializer: strg,
		EvHandler:  func(v string, args ...any) { events++ },
	})
	require.NoError(t, err)

	addr, err := reg.Deploy(registry.DeployTx{Owner: owner, Initial: mustValue(t, "123")})
	require.NoError(t, err)

	require.NoError(t, reg.Set(addr, caller, mustValue(t, "456")))

	_, err = reg.Get(addr)
	require.NoError(t, err)

	// One event for the create, one for the set, one for the get.
	require.Equal(t, 3, events)
}
