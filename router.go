package conc

import "strings"

// Endpoint is a registered (method, path, callback) tuple (spec.md §3
// Router, §4.G).
type Endpoint struct {
	method   string
	path     string
	callback func(req *Request)
}

// Router dispatches requests to the first registered Endpoint whose
// method (case-insensitive) and path (byte-exact) both match,
// falling back to a built-in 404 handler — grounded on
// original_source/source/lite/2-network.h's linear endpoint scan
// (spec.md §4.G).
type Router struct {
	endpoints []Endpoint
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{}
}

// Register appends an endpoint. Registration order is preserved and
// determines dispatch priority: first match wins (spec.md §3, §4.G).
func (r *Router) Register(method, path string, cb func(req *Request)) {
	r.endpoints = append(r.endpoints, Endpoint{method: method, path: path, callback: cb})
}

// dispatch runs the first matching endpoint's callback, or the default
// 404 endpoint if none match (spec.md §4.G, §7 RouteNotFound). A miss
// is logged as a RouteNotFoundError before falling through to
// notFound, so the condition is observable even though it isn't
// returned to the handler.
func (r *Router) dispatch(req *Request) {
	for _, e := range r.endpoints {
		if strings.EqualFold(e.method, req.Method) && e.path == req.Path {
			e.callback(req)
			return
		}
	}
	if req.conn != nil && req.conn.sched != nil {
		logWarn(req.conn.sched.logger, "router", "no matching route",
			RouteNotFoundError{Method: req.Method, Path: req.Path})
	}
	notFound(req)
}

// notFound is the built-in 404 endpoint: a text/plain "not found" body
// with status 404 (spec.md §4.G).
func notFound(req *Request) {
	SetHeader(req, "Content-Type", "text/plain")
	if err := WriteHead(req, 404, "Not Found"); err != nil {
		return
	}
	_ = WriteBody(req, []byte("not found"))
}
