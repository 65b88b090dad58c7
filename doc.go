// Package conc implements a single-threaded, stackful cooperative
// coroutine runtime and a small HTTP server built directly on top of it.
//
// # Architecture
//
// The runtime is built around a [Scheduler] that owns a table of
// [Fiber] values — cooperatively-scheduled execution contexts, each
// backed by one real goroutine and one private [Arena]. A [Fiber] runs
// until it calls [Scheduler.Yield], [Scheduler.WaitRead], or
// [Scheduler.WaitWrite], or its entry function returns. There is no
// preemption and no cross-fiber synchronization beyond I/O readiness.
//
// [ListenTCP] spawns one fiber per accepted connection; [Server] adds
// HTTP/1.0 prologue parsing ([http.go]), a method+path [Router], and a
// response writer on top of the same byte-oriented primitives.
//
// # Memory
//
// Every fiber owns exactly one [Arena]: a page-chained bump allocator
// with bulk reset, reachable through [Scheduler.CurrentArena] and
// emptied in one motion when the fiber's entry function returns.
// Arenas are never shared across fibers. The HTTP layer does not
// allocate from the arena: parsed headers, request strings and response
// buffers are ordinary Go heap values.
//
// # I/O model
//
// [Scheduler.WaitRead] and [Scheduler.WaitWrite] suspend the calling
// fiber until the given file descriptor is poll-ready. The scheduler's
// poll set is a transient snapshot, rebuilt every scheduling pass from
// exactly the fibers currently waiting — not a persistent epoll/kqueue
// registration — mirroring a single poll(2) call per pass on Unix
// ([golang.org/x/sys/unix.Poll]) and WSAPoll on Windows
// ([golang.org/x/sys/windows.WSAPoll]).
//
// # Concurrency
//
// Scheduling is single-threaded and cooperative: although each fiber
// is a real goroutine, at most one is ever actually running application
// code at a time — the rest are blocked on their own resume channel,
// handed the baton explicitly by whichever fiber is currently
// scheduled. The scheduler's internal state (ready/waiting/free queues,
// the poll set) therefore needs no locking; it is only ever touched by
// the goroutine currently holding the baton.
//
// # Usage
//
//	sched, err := conc.NewScheduler(conc.WithLogger(conc.NewDefaultLogger(conc.LevelInfo)))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	srv := conc.NewServer(sched)
//	srv.Get("/", func(req *conc.Request) {
//	    conc.WriteBody(req, []byte("hello\n"))
//	})
//
//	sched.Run(func() {
//	    sched.Spawn(func() {
//	        if err := srv.ListenAndServe(9090); err != nil {
//	            log.Print(err)
//	        }
//	    })
//	})
//
// # Error types
//
// [OutOfMemoryError], [ProtocolMalformedError], [IOPermanentError],
// [RouteNotFoundError], and [InvariantViolationError] cover the error
// taxonomy used throughout the package. [ProtocolMalformedError] and
// [IOPermanentError] are returned by the HTTP and TCP layers;
// [RouteNotFoundError] is only logged by the router;
// [InvariantViolationError] is used as a panic value for
// scheduler/poller contract violations; no function in the package
// returns [OutOfMemoryError].
package conc
