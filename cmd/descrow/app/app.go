/*
Package app links together all the various components
to construct the descrow application.
*/
package app

import (
	"path/filepath"

	"github.com/iov-one/descrow"
	"github.com/iov-one/descrow/app"
	"github.com/iov-one/descrow/errors"
	"github.com/iov-one/descrow/store"
	"github.com/iov-one/descrow/x"
	"github.com/iov-one/descrow/x/bank"
	"github.com/iov-one/descrow/x/escrow"
	"github.com/iov-one/descrow/x/sigs"
	"github.com/iov-one/descrow/x/utils"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is used for logging.
const Name = "descrow"

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, and recovery
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx don't affect state
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router returns a router dispatching to the escrow and bank handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	control := bank.NewController(bank.NewBucket())
	escrow.RegisterRoutes(r, authFn, control)
	bank.RegisterRoutes(r, authFn, control)
	return r
}

// Stack wires up a standard router with a standard decorator
// chain.
func Stack() descrow.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Initializers returns all extensions that read the genesis file.
func Initializers() descrow.Initializer {
	return app.ChainInitializers(
		bank.Initializer{},
		escrow.Initializer{},
	)
}

// Application returns the descrow application running on top of given
// store.
func Application(db descrow.CacheableKVStore, logger log.Logger) *app.Application {
	return app.NewApplication(Name, db, TxDecoder, Stack()).
		WithInit(Initializers()).
		WithLogger(logger)
}

// OpenStore opens the database kept in the home directory.
func OpenStore(home string) (*store.LevelDB, error) {
	path, err := filepath.Abs(filepath.Join(home, "data"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid home: %s", err)
	}
	return store.OpenLevelDB(path)
}
