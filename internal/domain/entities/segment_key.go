package entities

// SegmentKey is the hierarchical sort key for script segments. Every segment
// position is a triple: the layout segment's order, a satellite offset, and a
// chunk index. Keeping the three parts explicit makes ordering unambiguous;
// the flattened numeric encoding exists only because the persisted `position`
// column is a single integer.
//
// Encoding:
//
//	primary segment    (L, 0, 0) -> L*10
//	satellite          (L, s, 0) -> L*10 + s       s in 1..3
//	chunk of the above (L, s, c) -> (L*10+s)*100 + c
//	chunk of a chunk   appends another level: parentPosition*100 + c
//
// ChunkIndex packs the chunk path two decimal digits per level, so splitting
// a chunk again nests below it instead of reusing a sibling's position.
// Satellite offsets never exceed 3, layouts stay far below 100 segments and
// chunk counts below 100 per level, so the ranges cannot collide.
type SegmentKey struct {
	LayoutOrder int
	SubOrder    int
	ChunkIndex  int
}

// PrimaryKey returns the key of the primary segment for a layout order
func PrimaryKey(layoutOrder int) SegmentKey {
	return SegmentKey{LayoutOrder: layoutOrder}
}

// SatelliteKey returns the key of the i-th satellite of a layout order
func SatelliteKey(layoutOrder, sub int) SegmentKey {
	return SegmentKey{LayoutOrder: layoutOrder, SubOrder: sub}
}

// ChunkKey returns the key of the i-th chunk split off this segment. When
// the segment is itself a chunk the key nests one level deeper, so repeated
// chunking never produces a position a surviving sibling still occupies.
func (k SegmentKey) ChunkKey(chunkIndex int) SegmentKey {
	return SegmentKey{
		LayoutOrder: k.LayoutOrder,
		SubOrder:    k.SubOrder,
		ChunkIndex:  k.ChunkIndex*100 + chunkIndex,
	}
}

// Position flattens the key into the persisted integer encoding: the base
// shifted two digits per chunk level, plus the packed chunk path.
func (k SegmentKey) Position() int {
	pos := k.LayoutOrder*10 + k.SubOrder
	for path := k.ChunkIndex; path > 0; path /= 100 {
		pos *= 100
	}
	return pos + k.ChunkIndex
}

// Less orders keys tuple-wise: layout order, then satellite, then chunk
func (k SegmentKey) Less(other SegmentKey) bool {
	if k.LayoutOrder != other.LayoutOrder {
		return k.LayoutOrder < other.LayoutOrder
	}
	if k.SubOrder != other.SubOrder {
		return k.SubOrder < other.SubOrder
	}
	return k.ChunkIndex < other.ChunkIndex
}

// DecodePosition recovers the hierarchical key from a persisted position.
// Unchunked positions stay below 1000 (layout order < 100); chunked
// positions start at 1001, with two digits stripped per nesting level.
func DecodePosition(position int) SegmentKey {
	chunk := 0
	mult := 1
	for position >= 1000 {
		chunk += (position % 100) * mult
		mult *= 100
		position /= 100
	}
	return SegmentKey{
		LayoutOrder: position / 10,
		SubOrder:    position % 10,
		ChunkIndex:  chunk,
	}
}
