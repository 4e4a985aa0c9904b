package middleware

import "github.com/aretw0/stagedup/pkg/ports"

// Middleware allows wrapping a StageStore to add behavior.
type Middleware func(ports.StageStore) ports.StageStore

// Chain applies middlewares so that the first one is the outermost.
func Chain(store ports.StageStore, mws ...Middleware) ports.StageStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
