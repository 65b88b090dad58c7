package conc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArena_AllocReturnsDistinctRegions(t *testing.T) {
	a := NewArena(64)

	first := a.Alloc(8)
	second := a.Alloc(8)
	require.Len(t, first, 8)
	require.Len(t, second, 8)

	first[0] = 0xAA
	second[0] = 0xBB
	require.Equal(t, byte(0xAA), first[0])
	require.Equal(t, byte(0xBB), second[0])
}

// TestArena_Reset covers spec.md §8's "arena reset" property: after
// empty, the next alloc(k) returns the same pointer as the very first
// alloc before reset.
func TestArena_Reset(t *testing.T) {
	a := NewArena(64)

	first := a.Alloc(8)
	firstPtr := &first[0]

	a.Alloc(8)
	a.Empty()

	after := a.Alloc(8)
	require.Same(t, firstPtr, &after[0])
}

// TestArena_BlockBookkeeping covers spec.md §8's block-bookkeeping
// property: a realloc that grows counts as a new allocation, but a
// realloc that fits within the existing block's recorded size does
// not record a new block.
func TestArena_BlockBookkeeping(t *testing.T) {
	a := NewArena(64)
	require.Equal(t, 0, a.BlockCount())

	p := a.Alloc(4)
	require.Equal(t, 1, a.BlockCount())

	a.Realloc(p, 16)
	require.Equal(t, 2, a.BlockCount())

	a.Empty()
	require.Equal(t, 0, a.BlockCount())
}

// TestArena_ReallocInPlaceDoesNotAllocate covers the same property from
// the other direction: requesting a size no larger than the existing
// block returns the same slice unchanged and records no new block,
// matching original_source/source/app/1-memory.h's memory_realloc,
// which only calls memory_alloc when growing.
func TestArena_ReallocInPlaceDoesNotAllocate(t *testing.T) {
	a := NewArena(64)

	p := a.Alloc(16)
	require.Equal(t, 1, a.BlockCount())

	same := a.Realloc(p, 8)
	require.Same(t, &p[0], &same[0])
	require.Equal(t, 1, a.BlockCount())

	exact := a.Realloc(p, 16)
	require.Same(t, &p[0], &exact[0])
	require.Equal(t, 1, a.BlockCount())
}

// TestArena_PageGrowth covers spec.md §8's page-growth property:
// allocating more than the head page's remaining capacity grows a new
// page whose capacity is max(head.capacity, requested) * 2.
func TestArena_PageGrowth(t *testing.T) {
	a := NewArena(16)
	a.Alloc(8)

	big := a.Alloc(32)
	require.Len(t, big, 32)
	require.NotNil(t, a.head.next)
	require.GreaterOrEqual(t, a.head.next.capacity, 32)
	require.Equal(t, 0, a.head.next.capacity%16)
}

func TestArena_ReallocPreservesPrefix(t *testing.T) {
	a := NewArena(64)

	p := a.Alloc(4)
	copy(p, []byte{1, 2, 3, 4})

	grown := a.Realloc(p, 8)
	require.Equal(t, []byte{1, 2, 3, 4}, grown[:4])
}

func TestArena_ReallocUnknownPointerReturnsNil(t *testing.T) {
	a := NewArena(64)
	other := make([]byte, 4)
	require.Nil(t, a.Realloc(other, 8))
}

func TestArena_DestroyReleasesHeadPage(t *testing.T) {
	a := NewArena(64)
	a.Alloc(8)
	a.Destroy()
	require.Nil(t, a.head)
}
