package conc

// arenaPage is one fixed-capacity page in an arena's page chain.
type arenaPage struct {
	capacity int
	count    int
	memory   []byte
	next     *arenaPage
}

// arenaBlock records one successful allocation, in order of creation.
type arenaBlock struct {
	ptr  int // offset into the owning page's memory
	page *arenaPage
	size int
	next *arenaBlock
}

// Arena is a page-chained bump allocator with bulk reset. Every fiber
// owns exactly one Arena; it is never shared across fibers. Allocations
// are bytes cut from the head page or one of its chained extensions; the
// whole chain is released in one motion when the owning fiber ends.
//
// Arena is not safe for concurrent use — by construction only the fiber
// that owns it ever touches it, so no locking is needed (spec.md §5).
type Arena struct {
	head     *arenaPage
	blocks   *arenaBlock
	pageSize int
}

// defaultArenaPageSize mirrors the original's use of the OS page size as
// the default page capacity.
const defaultArenaPageSize = 4096

// NewArena creates an arena with one page of the given capacity. A
// pageSize of 0 uses defaultArenaPageSize.
func NewArena(pageSize int) *Arena {
	if pageSize <= 0 {
		pageSize = defaultArenaPageSize
	}
	return &Arena{
		head:     newArenaPage(pageSize),
		pageSize: pageSize,
	}
}

func newArenaPage(capacity int) *arenaPage {
	return &arenaPage{
		capacity: capacity,
		memory:   make([]byte, capacity),
	}
}

// Alloc returns a size-byte slice cut from the arena, first-fit across
// the page chain. If no existing page has room, a new page of capacity
// max(head.capacity, size) * 2 is appended — the exact growth formula of
// original_source/source/app/1-memory.h's memory_alloc. The returned
// slice is valid until the next Empty or Destroy; its bytes are not
// zeroed on allocation. Returns nil if size is negative.
func (a *Arena) Alloc(size int) []byte {
	if size < 0 {
		return nil
	}

	page := a.head
	for page.count+size > page.capacity {
		if page.next == nil {
			capacity := a.head.capacity
			if size > capacity {
				capacity = size
			}
			page.next = newArenaPage(capacity * 2)
		}
		page = page.next
	}

	ptr := page.count
	page.count += size
	a.blocks = &arenaBlock{ptr: ptr, page: page, size: size, next: a.blocks}
	return page.memory[ptr : ptr+size]
}

// Realloc grows or returns old unchanged, matching
// original_source's memory_realloc: walk the block list for the
// descriptor matching old, and if the existing block is already large
// enough, return old unchanged — no new block is recorded, so this
// does not count as an allocation. Only a larger request copies
// min(old block size, size) bytes into a new Alloc(size) and returns
// the new slice. If old is not found among recorded blocks, returns nil
// — the original returns NULL in the same situation. New bytes beyond
// the copied prefix are undefined, as spec.md §4.A mandates.
func (a *Arena) Realloc(old []byte, size int) []byte {
	block := a.findBlock(old)
	if block == nil {
		return nil
	}
	if size <= block.size {
		return old
	}
	next := a.Alloc(size)
	if next == nil {
		return nil
	}
	copy(next, block.page.memory[block.ptr:block.ptr+block.size])
	return next
}

func (a *Arena) findBlock(ptr []byte) *arenaBlock {
	if len(ptr) == 0 {
		return nil
	}
	for b := a.blocks; b != nil; b = b.next {
		if &b.page.memory[b.ptr] == &ptr[0] {
			return b
		}
	}
	return nil
}

// BlockCount returns the number of recorded allocations since the last
// Empty or Destroy. Reallocs that grow count as new allocations.
func (a *Arena) BlockCount() int {
	n := 0
	for b := a.blocks; b != nil; b = b.next {
		n++
	}
	return n
}

// Empty frees the block-descriptor list, drops every page after the
// head, and zeroes the head page's count and memory. The head page's
// capacity is unchanged, so the arena is immediately reusable by the
// next fiber that claims this id.
func (a *Arena) Empty() {
	a.blocks = nil
	a.head.next = nil
	a.head.count = 0
	for i := range a.head.memory {
		a.head.memory[i] = 0
	}
}

// Destroy empties the arena and releases the head page. The Arena must
// not be used afterward.
func (a *Arena) Destroy() {
	a.Empty()
	a.head = nil
}
