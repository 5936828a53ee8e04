package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/liquid"
	"github.com/iov-one/liquid/errors"
)

// isPath is the RegExp to ensure the routes make sense
var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router allows us to register many handlers with different
// paths and then direct each message to the proper handler.
//
// Minimal interface modeled after net/http.ServeMux
type Router struct {
	routes map[string]liquid.Handler
}

var _ liquid.Registry = (*Router)(nil)
var _ liquid.Handler = (*Router)(nil)

// NewRouter returns a new empty router instance.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]liquid.Handler),
	}
}

// Handle adds a new Handler for the given path. This function panics if a
// handler for given path is already registered.
func (r *Router) Handle(path string, h liquid.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the registered Handler for this path. If no path is found,
// a handler returning ErrNotFound is returned.
func (r *Router) Handler(path string) liquid.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return notFound(path)
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx liquid.Context, store liquid.KVStore, tx liquid.Tx) (*liquid.CheckResult, error) {
	return r.Handler(liquid.GetPath(tx)).Check(ctx, store, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx liquid.Context, store liquid.KVStore, tx liquid.Tx) (*liquid.DeliverResult, error) {
	return r.Handler(liquid.GetPath(tx)).Deliver(ctx, store, tx)
}

// notFound returns a handler that always fails for an unregistered path.
type notFound string

func (path notFound) Check(liquid.Context, liquid.KVStore, liquid.Tx) (*liquid.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path notFound) Deliver(liquid.Context, liquid.KVStore, liquid.Tx) (*liquid.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
