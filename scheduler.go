package conc

import (
	"fmt"
	"runtime"
	"sync"
	"time"
)

// Scheduler is the single-threaded cooperative scheduler: ready,
// waiting, and free fiber queues, kept index-parallel with a poll-fd
// set, plus the driver that advances them (spec.md §3, §4.C, §4.D).
//
// A Scheduler's state (ready/waiting/polls/free) is touched only by the
// goroutine currently holding the baton — see doc.go's Concurrency
// section — so none of it needs locking. The one exception is
// goroutineFiber, written once per Spawn by the new fiber's own
// goroutine as it starts (concurrently with the baton holder) and read
// from whatever goroutine happens to be running application code; it
// is guarded by mu.
type Scheduler struct {
	table   fiberTable
	ready   intSlice
	waiting intSlice
	polls   pollSlice
	current int

	poller poller

	mu             sync.Mutex
	goroutineFiber map[uint64]int

	logger  Logger
	metrics *SchedulerMetrics

	waitStart map[int]time.Time
}

// NewScheduler creates a Scheduler with the host fiber (id 0) ready to
// run. Call Run to give it an entry point.
func NewScheduler(opts ...SchedulerOption) (*Scheduler, error) {
	resolved := resolveSchedulerOptions(opts)

	s := &Scheduler{
		table:          *newFiberTable(),
		poller:         newPoller(),
		goroutineFiber: make(map[uint64]int),
		logger:         resolved.logger,
		waitStart:      make(map[int]time.Time),
	}
	if resolved.arenaPageSize > 0 {
		s.table.get(hostFiberID).arena = NewArena(resolved.arenaPageSize)
	}
	if resolved.metricsEnabled {
		s.metrics = NewSchedulerMetrics()
	}
	s.ready.append(hostFiberID)
	return s, nil
}

// Metrics returns the scheduler's metrics, or nil if WithMetrics(true)
// was not supplied to NewScheduler.
func (s *Scheduler) Metrics() *SchedulerMetrics {
	return s.metrics
}

// Run executes entry on the host fiber, then cooperatively drains every
// other fiber spawned during or after entry — equivalent to
// original_source's `runtime_run(...); runtime_main();` sequence,
// folded into one call since Go has no preprocessor macro to split
// "start the first fiber" from "run until quiescent".
func (s *Scheduler) Run(entry func()) {
	s.registerGoroutine(hostFiberID)
	entry()
	host := s.table.get(hostFiberID)
	for s.ready.len() > 1 || s.waiting.len() > 0 {
		s.yield(host)
	}
}

// Spawn starts a new fiber running fn and returns its id. The fiber is
// appended to ready immediately but does not begin executing fn until
// the scheduler driver selects it.
func (s *Scheduler) Spawn(fn func()) int {
	f := s.table.alloc(fn)
	s.ready.append(f.id)

	go func() {
		s.registerGoroutine(f.id)
		<-f.resume

		func() {
			defer func() {
				if r := recover(); r != nil {
					logError(s.logger, "scheduler", "fiber panicked", panicToError(r))
				}
			}()
			f.fn()
		}()

		s.finish(f)
	}()

	return f.id
}

// Yield suspends the calling fiber, advancing round-robin to the next
// ready fiber, per spec.md §4.C.
func (s *Scheduler) Yield() {
	s.yield(s.currentFiber())
}

// WaitRead suspends the calling fiber until fd is readable.
func (s *Scheduler) WaitRead(fd int) {
	s.wait(s.currentFiber(), fd, true, false)
}

// WaitWrite suspends the calling fiber until fd is writable.
func (s *Scheduler) WaitWrite(fd int) {
	s.wait(s.currentFiber(), fd, false, true)
}

// CurrentFiberID returns the id of the fiber running on the calling
// goroutine. Panics with InvariantViolationError if called from a
// goroutine that is not a fiber.
func (s *Scheduler) CurrentFiberID() int {
	return s.currentFiber().id
}

// CurrentArena returns the Arena owned by the fiber running on the
// calling goroutine.
func (s *Scheduler) CurrentArena() *Arena {
	return s.currentFiber().arena
}

func (s *Scheduler) yield(f *Fiber) {
	s.current++
	s.driver()
	<-f.resume
}

func (s *Scheduler) wait(f *Fiber, fd int, readable, writable bool) {
	idx := s.current % s.ready.len()
	s.ready.removeAtOrdered(idx)
	s.waiting.append(f.id)
	s.polls.append(pollReq{fd: fd, readable: readable, writable: writable})
	f.state = fiberWaiting
	f.waitFD = fd
	f.waitReadable = readable
	f.waitWritable = writable
	if s.metrics != nil {
		s.waitStart[f.id] = time.Now()
	}

	s.driver()
	<-f.resume

	f.state = fiberRunning
}

func (s *Scheduler) finish(f *Fiber) {
	if f.id == hostFiberID {
		panic(InvariantViolationError{Detail: "host fiber must never finish"})
	}
	idx := s.current % s.ready.len()
	if s.ready.at(idx) != f.id {
		panic(InvariantViolationError{Detail: "finishing fiber is not the current ready entry"})
	}
	s.ready.removeAtOrdered(idx)
	s.table.release(f)
	s.unregisterGoroutine(f.id)

	s.driver()
}

// driver is the single scheduler step used by yield, wait, and finish:
// poll the current wait set, promote any fds that became ready, fall
// back to promoting the oldest waiter if nothing else is runnable, and
// hand the baton to whichever fiber is now current. Matches spec.md
// §4.C's four-step driver contract exactly.
func (s *Scheduler) driver() {
	if s.polls.len() > 0 {
		timeout := -1
		if s.ready.len() > 0 {
			timeout = 0
		}

		results, err := s.poller.poll(s.polls.items, timeout)
		if err != nil {
			panic(InvariantViolationError{Detail: "poll failed: " + err.Error()})
		}

		for i := 0; i < s.polls.len(); {
			if results[i] {
				id := s.waiting.at(i)
				s.waiting.removeAt(i)
				s.polls.removeAt(i)
				results[i] = results[len(results)-1]
				results = results[:len(results)-1]
				s.ready.append(id)
				if s.metrics != nil {
					if start, ok := s.waitStart[id]; ok {
						s.metrics.WaitLatency.Record(time.Since(start))
						delete(s.waitStart, id)
					}
				}
				continue
			}
			i++
		}
	}

	if s.ready.len() == 0 && s.waiting.len() > 0 {
		id := s.waiting.popFront()
		s.polls.removeAt(0)
		s.ready.append(id)
	}

	if s.metrics != nil {
		s.metrics.Queue.UpdateReady(s.ready.len())
		s.metrics.Queue.UpdateWaiting(s.waiting.len())
	}

	if s.ready.len() == 0 {
		panic(InvariantViolationError{Detail: "no runnable fibers and none waiting"})
	}

	s.current = ((s.current % s.ready.len()) + s.ready.len()) % s.ready.len()
	next := s.table.get(s.ready.at(s.current))
	next.resume <- struct{}{}
}

func (s *Scheduler) currentFiber() *Fiber {
	gid := getGoroutineID()
	s.mu.Lock()
	id, ok := s.goroutineFiber[gid]
	s.mu.Unlock()
	if !ok {
		panic(InvariantViolationError{Detail: "caller is not running on a fiber goroutine"})
	}
	return s.table.get(id)
}

func (s *Scheduler) registerGoroutine(fiberID int) {
	s.mu.Lock()
	s.goroutineFiber[getGoroutineID()] = fiberID
	s.mu.Unlock()
}

func (s *Scheduler) unregisterGoroutine(fiberID int) {
	s.mu.Lock()
	for gid, id := range s.goroutineFiber {
		if id == fiberID {
			delete(s.goroutineFiber, gid)
			break
		}
	}
	s.mu.Unlock()
}

// getGoroutineID parses the current goroutine's id out of
// runtime.Stack's header line, exactly as the teacher's
// loop.go does it — the only portable way to recover goroutine
// identity without threading a context value through every call.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}

func panicToError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return InvariantViolationError{Detail: fmt.Sprintf("panic: %v", r)}
}
