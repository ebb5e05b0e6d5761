package storegrp

import (
	"github.com/storechain/storechain/foundation/store"
	"github.com/storechain/storechain/foundation/store/registry"
)

type newDeploy struct {
	Owner string `json:"owner" validate:"required"`
	Value string `json:"value" validate:"required"`
}

type deployResult struct {
	Address   registry.Address `json:"address"`
	Owner     store.AccountID  `json:"owner"`
	OwnerName string           `json:"owner_name,omitempty"`
	Value     string           `json:"value"`
}

type newSet struct {
	Address string `json:"address" validate:"required"`
	Caller  string `json:"caller" validate:"required"`
	Value   string `json:"value" validate:"required"`
}

type setResult struct {
	Address registry.Address `json:"address"`
	Value   string           `json:"value"`
	Status  string           `json:"status"`
}

type valueResult struct {
	Address registry.Address `json:"address"`
	Value   string           `json:"value"`
}

type info struct {
	Address   registry.Address `json:"address"`
	Owner     store.AccountID  `json:"owner"`
	OwnerName string           `json:"owner_name,omitempty"`
	Value     string           `json:"value"`
}
