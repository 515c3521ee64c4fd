package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/errors"
)

// Genesis file format. Each extension reads its own key of the app options.
type Genesis struct {
	ChainID    string          `json:"chain_id"`
	AppOptions descrow.Options `json:"app_options"`
}

// LoadGenesis tries to load a given file into a Genesis struct
func LoadGenesis(filePath string) (Genesis, error) {
	var gen Genesis

	raw, err := ioutil.ReadFile(filePath)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "loading genesis file: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInvalidInput, "unmarshaling genesis file: %s", err)
	}
	return gen, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...descrow.Initializer) descrow.Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []descrow.Initializer
}

// FromGenesis will pass opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(opts descrow.Options, kv descrow.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
