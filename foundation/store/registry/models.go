package registry

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/storechain/storechain/foundation/store"
)

// Address represents the stable handle a deployed store is reached through.
type Address string

// ToAddress validates the specified hex string and converts it to an address
// in its checksummed form.
func ToAddress(hex string) (Address, error) {
	if !common.IsHexAddress(hex) {
		return "", errors.New("invalid address format")
	}

	return Address(common.HexToAddress(hex).Hex()), nil
}

// newAddress generates a fresh address for a new deployment. Uniqueness comes
// from the uuid, the keccak hash only shapes it into address form.
func newAddress() Address {
	id := uuid.New()
	hash := crypto.Keccak256(id[:])

	return Address(common.BytesToAddress(hash[12:]).Hex())
}

// =============================================================================

// DeployTx represents a request to create a new store.
type DeployTx struct {
	Owner   store.AccountID
	Initial store.Value
}

// StoreRecord represents the persisted form of a deployed store. The record
// always holds the latest value so replaying records reconstructs the
// current state.
type StoreRecord struct {
	Address Address         `json:"address"`
	Owner   store.AccountID `json:"owner"`
	Value   store.Value     `json:"value"`
}
