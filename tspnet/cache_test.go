package tspnet

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entry builds a distinguishable dim-2 cache vector tagged with its
// origin row and step.
func entry(row, step int) []float64 {
	return []float64{float64(row), float64(step)}
}

// pushStep pushes one tagged entry per row for the given step.
func pushStep(c *kvCache, step int) {
	rows := c.Rows()
	ks := make([][]float64, rows)
	vs := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		ks[r] = entry(r, step)
		vs[r] = entry(r, -step)
	}
	c.push(ks, vs)
}

func TestKVCache_FreshCacheIsEmpty(t *testing.T) {
	c := newKVCache(3, 2, 0)
	assert.Equal(t, 3, c.Rows())
	assert.Zero(t, c.Steps())
	assert.Zero(t, c.Len())
}

func TestKVCache_LenTracksPushesUnbounded(t *testing.T) {
	c := newKVCache(2, 2, 0)
	for step := 1; step <= 5; step++ {
		pushStep(c, step)
		assert.Equal(t, step, c.Steps())
		assert.Equal(t, step, c.Len())
	}
}

func TestKVCache_WindowTruncatesOldestFirst(t *testing.T) {
	c := newKVCache(1, 2, 3)
	for step := 1; step <= 5; step++ {
		pushStep(c, step)
		want := step
		if want > 3 {
			want = 3
		}
		assert.Equal(t, want, c.Len(), "after %d pushes", step)
	}

	// Survivors are the 3 most recent steps, oldest first.
	k, _ := c.matrices(0)
	require.Equal(t, 3.0, k.At(0, 1))
	require.Equal(t, 4.0, k.At(1, 1))
	require.Equal(t, 5.0, k.At(2, 1))
	assert.Equal(t, 5, c.Steps(), "Steps keeps counting past the window")
}

func TestKVCache_FreshSessionsAreIdentical(t *testing.T) {
	// Reset is building a fresh cache; two in a row must be
	// indistinguishable and independent of each other.
	a := newKVCache(2, 2, 0)
	b := newKVCache(2, 2, 0)
	assert.Equal(t, a.Rows(), b.Rows())
	assert.Equal(t, a.Len(), b.Len())

	pushStep(a, 1)
	assert.Equal(t, 1, a.Len())
	assert.Zero(t, b.Len(), "sessions must not share state")
}

func TestKVCache_MatricesMaterializeHistory(t *testing.T) {
	c := newKVCache(2, 2, 0)
	pushStep(c, 1)
	pushStep(c, 2)

	k, v := c.matrices(1)
	r, d := k.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, d)
	assert.Equal(t, entry(1, 1), k.RawRowView(0))
	assert.Equal(t, entry(1, 2), k.RawRowView(1))
	assert.Equal(t, entry(1, -1), v.RawRowView(0))
	assert.Equal(t, entry(1, -2), v.RawRowView(1))
}

func TestKVCache_RepeatTilesContiguously(t *testing.T) {
	c := newKVCache(2, 2, 0)
	pushStep(c, 1)
	c.repeat(3)

	require.Equal(t, 6, c.Rows())
	// Row b of the base batch becomes rows b·3..b·3+2.
	for i := 0; i < 3; i++ {
		k, _ := c.matrices(i)
		assert.Equal(t, entry(0, 1), k.RawRowView(0), "replica %d of row 0", i)
		k, _ = c.matrices(3 + i)
		assert.Equal(t, entry(1, 1), k.RawRowView(0), "replica %d of row 1", i)
	}
	assert.Equal(t, 1, c.Len(), "repeat changes width, not depth")
}

func TestKVCache_ReorderGathersWithRepeats(t *testing.T) {
	// Base batch of 2, beam width 3. Each beam gets a distinct history.
	c := newKVCache(6, 2, 0)
	pushStep(c, 1)

	// Instance 0 keeps (2, 0, 0); instance 1 keeps (1, 1, 2).
	c.reorder([][]int{{2, 0, 0}, {1, 1, 2}})
	require.Equal(t, 6, c.Rows())

	wantRows := []int{2, 0, 0, 4, 4, 5} // absolute source rows
	for i, src := range wantRows {
		k, _ := c.matrices(i)
		if diff := cmp.Diff(entry(src, 1), k.RawRowView(0)); diff != "" {
			t.Fatalf("row %d history mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestKVCache_ReorderCanChangeWidth(t *testing.T) {
	// Width grows from 2 to 3 within each of 2 instances.
	c := newKVCache(4, 2, 0)
	pushStep(c, 1)

	c.reorder([][]int{{0, 0, 1}, {1, 0, 0}})
	require.Equal(t, 6, c.Rows())

	wantRows := []int{0, 0, 1, 3, 2, 2}
	for i, src := range wantRows {
		k, _ := c.matrices(i)
		assert.Equal(t, entry(src, 1), k.RawRowView(0), "row %d", i)
	}
}

func TestKVCache_PushAfterReorderDoesNotAliasSiblings(t *testing.T) {
	// Two beams sharing one parent must diverge independently after the
	// gather: appending to one history may not leak into the other.
	c := newKVCache(2, 2, 0)
	pushStep(c, 1)
	c.reorder([][]int{{0, 0}})

	c.push(
		[][]float64{entry(10, 2), entry(20, 2)},
		[][]float64{entry(10, -2), entry(20, -2)},
	)

	k0, _ := c.matrices(0)
	k1, _ := c.matrices(1)
	assert.Equal(t, entry(0, 1), k0.RawRowView(0), "shared prefix survives")
	assert.Equal(t, entry(0, 1), k1.RawRowView(0), "shared prefix survives")
	assert.Equal(t, entry(10, 2), k0.RawRowView(1))
	assert.Equal(t, entry(20, 2), k1.RawRowView(1))
}

func TestKVCache_PushAfterRepeatDoesNotAliasSiblings(t *testing.T) {
	c := newKVCache(1, 2, 0)
	pushStep(c, 1)
	c.repeat(2)

	c.push(
		[][]float64{entry(10, 2), entry(20, 2)},
		[][]float64{entry(10, -2), entry(20, -2)},
	)

	k0, _ := c.matrices(0)
	k1, _ := c.matrices(1)
	assert.Equal(t, entry(10, 2), k0.RawRowView(1))
	assert.Equal(t, entry(20, 2), k1.RawRowView(1))
}
