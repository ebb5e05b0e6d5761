// Package seed maintains access to the seed file holding the stores the node
// deploys the first time it starts.
package seed

import (
	"encoding/json"
	"os"
	"time"
)

// Seed represents the seed file.
type Seed struct {
	Date   time.Time        `json:"date"`
	Name   string           `json:"name"` // A unique name for this running instance.
	Stores map[string]Store `json:"stores"`
}

// Store represents one store deployed when the node first starts. The owner
// and value are kept in their text form and validated at deploy time.
type Store struct {
	Owner string `json:"owner"`
	Value string `json:"value"`
}

// Load opens and consumes the seed file.
func Load(path string) (Seed, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}

	var seed Seed
	if err := json.Unmarshal(content, &seed); err != nil {
		return Seed{}, err
	}

	return seed, nil
}
