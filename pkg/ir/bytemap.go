package ir

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"sort"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// region is a run of contiguous mapped bytes starting at start.
type region struct {
	data  []byte
	start uint64
}

// last returns the highest address in the region. Regions may end at
// [math.MaxUint64], so there is no exclusive end address.
func (r region) last() uint64 {
	return r.start + uint64(len(r.data)) - 1
}

// touches reports whether a write covering [start, last] overlaps r or is
// adjacent to it.
func (r region) touches(start, last uint64) bool {
	return (r.last() >= start || r.last()+1 == start) &&
		(r.start <= last || r.start-1 == last)
}

// ImageByteMapOptions configures [NewImageByteMap].
type ImageByteMapOptions struct {
	// Regions maps start addresses to the bytes stored there.
	Regions map[uint64][]byte
	// UUID is the node identity. A random one is used if unset.
	UUID uuid.UUID
	// AddrMin and AddrMax bound the writable addresses, both inclusive.
	AddrMin uint64
	AddrMax uint64
	// BaseAddress is the address the image is loaded at.
	BaseAddress uint64
	// EntryPoint is the address execution starts at.
	EntryPoint uint64
}

// ImageByteMap holds the sparse byte contents of a loaded image. Adjacent
// writes are coalesced, so the map always consists of maximal contiguous
// regions in ascending address order.
type ImageByteMap struct {
	NodeID

	regions     []region
	addrMin     uint64
	addrMax     uint64
	baseAddress uint64
	entryPoint  uint64
}

// NewImageByteMap creates an [ImageByteMap] from opts. Regions that touch are
// merged; regions that overlap, or fall outside [AddrMin, AddrMax], are
// errors. Every offending region is reported.
func NewImageByteMap(opts ImageByteMapOptions) (*ImageByteMap, error) {
	if opts.AddrMin > opts.AddrMax {
		return nil, fmt.Errorf("%w: min %#x > max %#x", ErrInvalidRange, opts.AddrMin, opts.AddrMax)
	}

	m := &ImageByteMap{
		NodeID:      NewNodeID(opts.UUID),
		addrMin:     opts.AddrMin,
		addrMax:     opts.AddrMax,
		baseAddress: opts.BaseAddress,
		entryPoint:  opts.EntryPoint,
	}

	var merr error

	for _, start := range slices.Sorted(maps.Keys(opts.Regions)) {
		data := opts.Regions[start]
		if len(data) == 0 {
			continue
		}

		if err := m.checkBounds(start, len(data)); err != nil {
			merr = multierror.Append(merr, err)

			continue
		}

		if n := len(m.regions); n > 0 {
			prev := &m.regions[n-1]

			switch {
			case start <= prev.last():
				merr = multierror.Append(merr, fmt.Errorf("%w: region at %#x overlaps [%#x, %#x]",
					ErrOverlappingRegions, start, prev.start, prev.last()))

				continue
			case start == prev.last()+1:
				prev.data = append(prev.data, data...)

				continue
			}
		}

		m.regions = append(m.regions, region{start: start, data: slices.Clone(data)})
	}

	if merr != nil {
		return nil, merr
	}

	return m, nil
}

// AddrMin returns the lowest writable address.
func (m *ImageByteMap) AddrMin() uint64 { return m.addrMin }

// AddrMax returns the highest writable address.
func (m *ImageByteMap) AddrMax() uint64 { return m.addrMax }

// BaseAddress returns the load address of the image.
func (m *ImageByteMap) BaseAddress() uint64 { return m.baseAddress }

// EntryPoint returns the entry point address of the image.
func (m *ImageByteMap) EntryPoint() uint64 { return m.entryPoint }

// Len returns the number of mapped bytes.
func (m *ImageByteMap) Len() int {
	n := 0
	for _, r := range m.regions {
		n += len(r.data)
	}

	return n
}

// Contains reports whether addr is mapped.
func (m *ImageByteMap) Contains(addr uint64) bool {
	_, ok := m.find(addr)

	return ok
}

// At returns the byte mapped at addr.
func (m *ImageByteMap) At(addr uint64) (byte, error) {
	i, ok := m.find(addr)
	if !ok {
		return 0, fmt.Errorf("%w: %#x", ErrAddressNotMapped, addr)
	}

	r := m.regions[i]

	return r.data[addr-r.start], nil
}

// Slice returns a copy of the bytes in [start, stop). The range must lie
// within a single contiguous region.
func (m *ImageByteMap) Slice(start, stop uint64) ([]byte, error) {
	if stop <= start {
		return nil, fmt.Errorf("%w: [%#x, %#x)", ErrInvalidRange, start, stop)
	}

	i, ok := m.find(start)
	if !ok {
		return nil, fmt.Errorf("%w: %#x", ErrAddressNotMapped, start)
	}

	r := m.regions[i]
	if stop-1 > r.last() {
		return nil, fmt.Errorf("%w: [%#x, %#x) is not contiguous", ErrAddressNotMapped, start, stop)
	}

	return slices.Clone(r.data[start-r.start : stop-r.start]), nil
}

// All yields every mapped address and its byte in ascending address order.
func (m *ImageByteMap) All() iter.Seq2[uint64, byte] {
	return func(yield func(uint64, byte) bool) {
		for _, r := range m.regions {
			for off, b := range r.data {
				if !yield(r.start+uint64(off), b) {
					return
				}
			}
		}
	}
}

// Regions yields the start address and a copy of the bytes of each
// contiguous region in ascending address order.
func (m *ImageByteMap) Regions() iter.Seq2[uint64, []byte] {
	return func(yield func(uint64, []byte) bool) {
		for _, r := range m.regions {
			if !yield(r.start, slices.Clone(r.data)) {
				return
			}
		}
	}
}

// Set stores b at addr.
func (m *ImageByteMap) Set(addr uint64, b byte) error {
	return m.Write(addr, []byte{b})
}

// Write stores data starting at start, overwriting any bytes already mapped
// there and merging with neighbouring regions.
func (m *ImageByteMap) Write(start uint64, data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if err := m.checkBounds(start, len(data)); err != nil {
		return err
	}

	last := start + uint64(len(data)) - 1

	// Regions in [lo, hi) overlap or touch the write.
	lo := sort.Search(len(m.regions), func(i int) bool {
		r := m.regions[i]

		return r.last() >= start || r.last()+1 == start
	})
	hi := lo
	for hi < len(m.regions) && m.regions[hi].touches(start, last) {
		hi++
	}

	merged := region{start: start}
	mergedLast := last

	if lo < hi {
		merged.start = min(start, m.regions[lo].start)
		mergedLast = max(last, m.regions[hi-1].last())
	}

	merged.data = make([]byte, mergedLast-merged.start+1)
	for _, r := range m.regions[lo:hi] {
		copy(merged.data[r.start-merged.start:], r.data)
	}

	copy(merged.data[start-merged.start:], data)

	m.regions = slices.Replace(m.regions, lo, hi, merged)

	return nil
}

// WriteRange stores data in [start, stop). The length of data must match the
// size of the range.
func (m *ImageByteMap) WriteRange(start, stop uint64, data []byte) error {
	if stop <= start {
		return fmt.Errorf("%w: [%#x, %#x)", ErrInvalidRange, start, stop)
	}

	if uint64(len(data)) != stop-start {
		return fmt.Errorf("%w: range [%#x, %#x) holds %d bytes, got %d",
			ErrSizeMismatch, start, stop, stop-start, len(data))
	}

	return m.Write(start, data)
}

// find returns the index of the region containing addr.
func (m *ImageByteMap) find(addr uint64) (int, bool) {
	i := sort.Search(len(m.regions), func(i int) bool {
		return m.regions[i].last() >= addr
	})

	return i, i < len(m.regions) && m.regions[i].start <= addr
}

// checkBounds reports whether n bytes starting at start fit in
// [addrMin, addrMax].
func (m *ImageByteMap) checkBounds(start uint64, n int) error {
	if start < m.addrMin || start > m.addrMax || uint64(n-1) > m.addrMax-start {
		return fmt.Errorf("%w: %d bytes at %#x outside [%#x, %#x]",
			ErrOutOfRange, n, start, m.addrMin, m.addrMax)
	}

	return nil
}
