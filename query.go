package liquid

import (
	"fmt"
)

// Query modifiers select how the query data is interpreted by a
// QueryHandler.
const (
	// KeyQueryMod returns a single entity stored under given key.
	KeyQueryMod = ""
	// PrefixQueryMod returns all entities with a key starting with given
	// bytes.
	PrefixQueryMod = "prefix"
)

// Model is a single key/value result of a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair builds a Model.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler reads the state for a single query path, for example
// "/tokens" or "/balances".
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRouter maps query paths to their handlers.
type QueryRouter struct {
	routes map[string]QueryHandler
}

// NewQueryRouter returns a router without any path registered.
func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// Register binds a handler to the path. Registering the same path twice
// is a programming error and panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler bound to the path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}
