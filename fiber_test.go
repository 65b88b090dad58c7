package conc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFiberTable_HostFiberSeeded(t *testing.T) {
	table := newFiberTable()
	host := table.get(hostFiberID)
	require.Equal(t, hostFiberID, host.id)
	require.Equal(t, fiberRunning, host.state)
}

// TestFiberTable_IDReuseIsLIFO covers spec.md §8 scenario 6: the second
// fiber allocated after the first releases reuses the first's id and
// arena.
func TestFiberTable_IDReuseIsLIFO(t *testing.T) {
	table := newFiberTable()

	a := table.alloc(func() {})
	b := table.alloc(func() {})
	require.NotEqual(t, a.id, b.id)

	table.release(b)
	table.release(a)

	// free is a LIFO stack: a was pushed last, so it is popped first.
	c := table.alloc(func() {})
	require.Equal(t, a.id, c.id)

	d := table.alloc(func() {})
	require.Equal(t, b.id, d.id)
}

func TestFiberTable_ReleaseResetsArena(t *testing.T) {
	table := newFiberTable()

	f := table.alloc(func() {})
	p := f.arena.Alloc(16)
	ptr := &p[0]

	table.release(f)
	require.Equal(t, fiberFree, f.state)

	reused := table.alloc(func() {})
	require.Same(t, f, reused)

	again := reused.arena.Alloc(16)
	require.Same(t, ptr, &again[0])
}
