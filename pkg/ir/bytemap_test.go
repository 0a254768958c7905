package ir_test

import (
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrammaTech/gtirb-go/pkg/ir"
)

func newTestByteMap(t *testing.T) *ir.ImageByteMap {
	t.Helper()

	m, err := ir.NewImageByteMap(ir.ImageByteMapOptions{
		AddrMin:     10,
		AddrMax:     315,
		BaseAddress: 10,
		EntryPoint:  10,
		Regions: map[uint64][]byte{
			10:  []byte("aaaaa"),
			15:  []byte("bbbbbbb"),
			110: []byte("cccccc"),
			310: []byte("ffffff"),
		},
	})
	require.NoError(t, err)

	return m
}

func regionStarts(m *ir.ImageByteMap) []uint64 {
	return slices.Collect(maps.Keys(maps.Collect(m.Regions())))
}

func TestNewImageByteMap(t *testing.T) {
	t.Parallel()

	m := newTestByteMap(t)

	starts := regionStarts(m)
	slices.Sort(starts)
	assert.Equal(t, []uint64{10, 110, 310}, starts, "adjacent regions should coalesce")
	assert.Equal(t, 24, m.Len())
	assert.Equal(t, uint64(10), m.AddrMin())
	assert.Equal(t, uint64(315), m.AddrMax())
	assert.Equal(t, uint64(10), m.BaseAddress())
	assert.Equal(t, uint64(10), m.EntryPoint())
}

func TestNewImageByteMapErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		opts ir.ImageByteMapOptions
	}{
		"overlapping regions": {
			opts: ir.ImageByteMapOptions{
				AddrMin: 10,
				AddrMax: 315,
				Regions: map[uint64][]byte{
					10:  []byte("aaaaa"),
					11:  []byte("bbbbbbb"),
					110: []byte("bbbbbb"),
					310: []byte("ffffff"),
				},
			},
			err: ir.ErrOverlappingRegions,
		},
		"region past max": {
			opts: ir.ImageByteMapOptions{
				AddrMin: 0,
				AddrMax: 15,
				Regions: map[uint64][]byte{14: []byte("abc")},
			},
			err: ir.ErrOutOfRange,
		},
		"region before min": {
			opts: ir.ImageByteMapOptions{
				AddrMin: 5,
				AddrMax: 15,
				Regions: map[uint64][]byte{0: []byte("a")},
			},
			err: ir.ErrOutOfRange,
		},
		"inverted bounds": {
			opts: ir.ImageByteMapOptions{AddrMin: 10, AddrMax: 5},
			err:  ir.ErrInvalidRange,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := ir.NewImageByteMap(tc.opts)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestImageByteMapOwnsData(t *testing.T) {
	t.Parallel()

	data := []byte("abc")
	m, err := ir.NewImageByteMap(ir.ImageByteMapOptions{
		AddrMax: 100,
		Regions: map[uint64][]byte{0: data},
	})
	require.NoError(t, err)

	data[0] = 'z'

	got, err := m.At(0)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), got)
}

func TestImageByteMapContains(t *testing.T) {
	t.Parallel()

	m := newTestByteMap(t)

	assert.True(t, m.Contains(10))
	assert.True(t, m.Contains(15))
	assert.True(t, m.Contains(21))
	assert.False(t, m.Contains(22))
	assert.False(t, m.Contains(0))
	assert.True(t, m.Contains(315))
	assert.False(t, m.Contains(316))
}

func TestImageByteMapAt(t *testing.T) {
	t.Parallel()

	m := newTestByteMap(t)

	for addr, want := range map[uint64]byte{10: 'a', 14: 'a', 15: 'b', 21: 'b', 110: 'c', 315: 'f'} {
		got, err := m.At(addr)
		require.NoError(t, err)
		assert.Equal(t, want, got, "address %d", addr)
	}

	_, err := m.At(22)
	require.ErrorIs(t, err, ir.ErrAddressNotMapped)
}

func TestImageByteMapSlice(t *testing.T) {
	t.Parallel()

	m := newTestByteMap(t)

	got, err := m.Slice(13, 17)
	require.NoError(t, err)
	assert.Equal(t, []byte("aabb"), got)

	got, err = m.Slice(110, 114)
	require.NoError(t, err)
	assert.Equal(t, []byte("cccc"), got)

	tcs := map[string]struct {
		err         error
		start, stop uint64
	}{
		"start not in map": {start: 0, stop: 15, err: ir.ErrAddressNotMapped},
		"stop not in map":  {start: 10, stop: 50, err: ir.ErrAddressNotMapped},
		"reverse":          {start: 15, stop: 10, err: ir.ErrInvalidRange},
		"empty":            {start: 15, stop: 15, err: ir.ErrInvalidRange},
		"gap in bytes":     {start: 15, stop: 310, err: ir.ErrAddressNotMapped},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := m.Slice(tc.start, tc.stop)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestImageByteMapAll(t *testing.T) {
	t.Parallel()

	m, err := ir.NewImageByteMap(ir.ImageByteMapOptions{
		AddrMax:    15,
		EntryPoint: 10,
		Regions: map[uint64][]byte{
			0:  []byte("aa"),
			10: []byte("bb"),
			12: []byte("cc"),
		},
	})
	require.NoError(t, err)

	type pair struct {
		addr uint64
		b    byte
	}

	var got []pair
	for addr, b := range m.All() {
		got = append(got, pair{addr, b})
	}

	assert.Equal(t, []pair{
		{0, 'a'}, {1, 'a'},
		{10, 'b'}, {11, 'b'},
		{12, 'c'}, {13, 'c'},
	}, got)

	// Early exit.
	for addr := range m.All() {
		assert.Equal(t, uint64(0), addr)

		break
	}
}

func TestImageByteMapSet(t *testing.T) {
	t.Parallel()

	m, err := ir.NewImageByteMap(ir.ImageByteMapOptions{
		AddrMin:    5,
		AddrMax:    15,
		EntryPoint: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, m.Len())

	steps := []struct {
		wantStarts []uint64
		addr       uint64
		b          byte
	}{
		{addr: 10, b: 0, wantStarts: []uint64{10}},
		{addr: 11, b: 255, wantStarts: []uint64{10}},
		{addr: 14, b: 0, wantStarts: []uint64{10, 14}},
		{addr: 13, b: 0, wantStarts: []uint64{10, 13}},
		{addr: 12, b: 0, wantStarts: []uint64{10}},
		{addr: 11, b: 7, wantStarts: []uint64{10}},
	}

	for _, step := range steps {
		require.NoError(t, m.Set(step.addr, step.b))

		got, err := m.At(step.addr)
		require.NoError(t, err)
		assert.Equal(t, step.b, got)

		starts := regionStarts(m)
		slices.Sort(starts)
		assert.Equal(t, step.wantStarts, starts, "after setting %d", step.addr)
	}

	all := maps.Collect(m.All())
	assert.Equal(t, map[uint64]byte{10: 0, 11: 7, 12: 0, 13: 0, 14: 0}, all)
	assert.Equal(t, 5, m.Len())

	require.ErrorIs(t, m.Set(0, 0), ir.ErrOutOfRange, "write out of range low")
	require.ErrorIs(t, m.Set(20, 0), ir.ErrOutOfRange, "write out of range high")
	require.NoError(t, m.Set(15, 1), "max address is writable")
}

func TestImageByteMapWrite(t *testing.T) {
	t.Parallel()

	m, err := ir.NewImageByteMap(ir.ImageByteMapOptions{
		AddrMin:    5,
		AddrMax:    15,
		EntryPoint: 10,
	})
	require.NoError(t, err)

	require.NoError(t, m.Write(5, []byte{1, 2, 3, 4, 5}))
	assert.Equal(t, 5, m.Len())

	got, err := m.Slice(5, 10)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4, 5}, got)

	// Overwrite across the end of the region and extend it.
	require.NoError(t, m.Write(8, []byte{9, 9, 9}))

	got, err = m.Slice(5, 11)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 9, 9, 9}, got)

	require.NoError(t, m.Write(5, nil))
	assert.Equal(t, 6, m.Len())

	tcs := map[string]struct {
		err   error
		data  []byte
		start uint64
	}{
		"write past maximum address":   {start: 15, data: []byte("abc123"), err: ir.ErrOutOfRange},
		"write before minimum address": {start: 0, data: []byte("abc123"), err: ir.ErrOutOfRange},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, m.Write(tc.start, tc.data), tc.err)
		})
	}
}

func TestImageByteMapWriteRange(t *testing.T) {
	t.Parallel()

	m, err := ir.NewImageByteMap(ir.ImageByteMapOptions{AddrMin: 5, AddrMax: 15})
	require.NoError(t, err)

	require.NoError(t, m.WriteRange(5, 7, []byte("ab")))
	require.ErrorIs(t, m.WriteRange(5, 7, []byte("abc123")), ir.ErrSizeMismatch)
	require.ErrorIs(t, m.WriteRange(15, 10, []byte("abc123")), ir.ErrInvalidRange)
	assert.Equal(t, 2, m.Len())
}

func TestImageByteMapTopOfAddressSpace(t *testing.T) {
	t.Parallel()

	const top = uint64(math.MaxUint64)

	m, err := ir.NewImageByteMap(ir.ImageByteMapOptions{
		AddrMin: top - 4,
		AddrMax: top,
		Regions: map[uint64][]byte{
			top - 1: {1, 2},
		},
	})
	require.NoError(t, err)
	assert.True(t, m.Contains(top))

	require.NoError(t, m.Set(top, 7))
	assert.Equal(t, 2, m.Len())

	got, err := m.At(top)
	require.NoError(t, err)
	assert.Equal(t, byte(7), got)

	require.NoError(t, m.Write(top-4, []byte{9, 9, 9}))
	assert.Equal(t, []uint64{top - 4}, regionStarts(m))
	assert.Equal(t, 5, m.Len())

	all := maps.Collect(m.All())
	assert.Equal(t, map[uint64]byte{top - 4: 9, top - 3: 9, top - 2: 9, top - 1: 1, top: 7}, all)

	slice, err := m.Slice(top-4, top)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 9, 9, 1}, slice)

	require.ErrorIs(t, m.Write(top, []byte{1, 2}), ir.ErrOutOfRange)

	_, err = ir.NewImageByteMap(ir.ImageByteMapOptions{
		AddrMin: top - 4,
		AddrMax: top,
		Regions: map[uint64][]byte{
			top - 2: {1, 2, 3},
			top:     {4},
		},
	})
	require.ErrorIs(t, err, ir.ErrOverlappingRegions)
}
