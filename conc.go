package conc

// Server binds a Router to a Scheduler and serves HTTP/1.0 over
// ListenTCP: the public-API surface of spec.md §6 (get, listen), built
// directly on the TCP and HTTP layers (tcp.go, http.go, router.go).
type Server struct {
	sched  *Scheduler
	router *Router
	opts   serverOptions
}

// NewServer creates a Server bound to sched. Register endpoints with
// Get before calling ListenAndServe.
func NewServer(sched *Scheduler, opts ...ServerOption) *Server {
	return &Server{
		sched:  sched,
		router: NewRouter(),
		opts:   resolveServerOptions(opts),
	}
}

// Get registers an endpoint for method GET and an exact path match,
// per spec.md §6's get(path, cb). Must be called before
// ListenAndServe.
func (s *Server) Get(path string, cb func(req *Request)) {
	s.router.Register("GET", path, cb)
}

// ListenAndServe binds port and runs the fiber-blocking HTTP server
// loop (spec.md §4.E listen, §6 listen): accept, parse the request
// prologue, and dispatch to the router, one handler fiber per
// connection. Never returns except on a permanent listen failure.
func (s *Server) ListenAndServe(port int) error {
	return ListenTCP(s.sched, port, func(conn *Conn) {
		req, err := parseRequest(conn, s.opts.maxHeaderBytes)
		if err != nil {
			conn.Close()
			return
		}
		s.router.dispatch(req)
	})
}
