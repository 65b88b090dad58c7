package conc

// fiberState is the lifecycle bucket a Fiber occupies. Exactly one of
// the three applies at any time, mirroring spec.md §3's Ready/Waiting/
// Free partition. Adapted from the teacher's state.go enum-with-String
// pattern, trimmed to the three values this scheduler actually needs.
type fiberState int

const (
	fiberRunning fiberState = iota
	fiberWaiting
	fiberFree
)

func (s fiberState) String() string {
	switch s {
	case fiberRunning:
		return "running"
	case fiberWaiting:
		return "waiting"
	case fiberFree:
		return "free"
	default:
		return "unknown"
	}
}

// hostFiberID is the id of the fiber that runs the Scheduler's entry
// point. It never transitions to fiberFree (spec.md §3).
const hostFiberID = 0

// Fiber is one stackful cooperative execution context, realized as a
// real goroutine instead of a hand-rolled register context (design note
// 9, option (a) — an OS-provided coroutine facility). Its "stack region"
// and guard page are exactly the stack the Go runtime already manages
// for the goroutine; nothing here mmaps or protects memory directly.
type Fiber struct {
	id    int
	state fiberState
	arena *Arena

	// waitFD/waitReadable/waitWritable record the current wait condition
	// while state == fiberWaiting. Exactly one of readable/writable may
	// be set per spec.md §3 ("at most one {fd, direction} wait condition").
	waitFD        int
	waitReadable  bool
	waitWritable  bool

	// resume is the baton: exactly one goroutine blocks on receiving
	// from it at any time (this fiber's), and exactly one goroutine (the
	// currently running fiber) sends to it to hand off control. Buffered
	// with capacity 1 so a fiber handing off to itself never deadlocks.
	resume chan struct{}

	fn func()
}

// fiberTable owns every Fiber the scheduler has ever allocated, reusing
// ids from a free list exactly as original_source's runtime_start does:
// pop a free id if one exists, otherwise grow. Folds in what the
// teacher kept as a separate weak-pointer registry.go — unnecessary
// here because fibers are always explicitly freed on their exit path,
// never garbage-collected out from under the scheduler.
type fiberTable struct {
	fibers []*Fiber
	free   intSlice // LIFO stack of reusable ids
}

func newFiberTable() *fiberTable {
	t := &fiberTable{}
	t.fibers = append(t.fibers, &Fiber{
		id:     hostFiberID,
		state:  fiberRunning,
		arena:  NewArena(0),
		resume: make(chan struct{}, 1),
	})
	return t
}

// alloc reuses a free id, or grows the table, returning the new Fiber
// ready for bookkeeping: state fiberRunning (the caller enqueues it into
// ready), a fresh arena with the host fiber's arena page size, fn set
// to the given entry point.
func (t *fiberTable) alloc(fn func()) *Fiber {
	if t.free.len() > 0 {
		id := t.free.items[t.free.len()-1]
		t.free.items = t.free.items[:t.free.len()-1]
		f := t.fibers[id]
		f.state = fiberRunning
		f.fn = fn
		return f
	}

	id := len(t.fibers)
	f := &Fiber{
		id:     id,
		state:  fiberRunning,
		arena:  NewArena(t.fibers[hostFiberID].arena.pageSize),
		resume: make(chan struct{}, 1),
		fn:     fn,
	}
	t.fibers = append(t.fibers, f)
	return f
}

func (t *fiberTable) get(id int) *Fiber {
	return t.fibers[id]
}

// release resets f's arena and pushes its id onto the free list, per
// spec.md §4.B's exit path: "resets the fiber's arena, pushes the id
// onto free". The stack (a goroutine, here) is not retained — unlike
// the original's mmap'd stack region, a Go goroutine's stack is reclaimed
// by the runtime when its goroutine function returns, and a fresh one is
// grown on demand the next time this id's goroutine is spawned.
func (t *fiberTable) release(f *Fiber) {
	f.arena.Empty()
	f.state = fiberFree
	f.fn = nil
	t.free.append(f.id)
}
