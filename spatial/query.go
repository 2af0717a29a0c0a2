package spatial

import (
	"math"

	"activeindex/geom"
)

// classifyThreshold is the minimum bucket size worth the cost of computing a
// cell-AABB/sphere classification; smaller buckets go straight to maybe_cb.
const classifyThreshold = 3

// columnClipRadius is the radius above which the radius query narrows the
// per-column y/z range instead of walking the full box span on every column.
const columnClipRadius = 60

// safetyMargin is the maximum distance a point can lie outside its nominal
// cell bounds due to the round-outward bias in fromWorld: the bias shifts a
// point's home cell by at most one full cell width in the outward direction,
// so any AABB-vs-sphere classification must pad a cell's bounds by one cell
// width on every face to stay sound.
const safetyMargin = cellSize

// GetRelevantObjectIds invokes cb once for every id whose cell may be
// relevant to box: either every cell in the walked range (cell-walk path) or
// every live id (full-scan path), chosen by the adaptive crossover. The
// result is a candidate set — callers apply their own exact geometric filter
// (box.Contains) before acting on it.
func (m *Map) GetRelevantObjectIds(box geom.AABB3f, cb func(ID)) {
	m.enterIter()
	defer m.exitIter()

	cmin := FromWorld(box.Min)
	cmax := FromWorld(box.Max)
	n := cellVolume(cmin, cmax)

	if n > 0 && n <= m.Size() {
		m.walkBoxCells(cmin, cmax, cb)
		return
	}
	m.scanAll(cb)
}

func (m *Map) walkBoxCells(cmin, cmax Key, cb func(ID)) {
	for cx := cmin.CX; cx <= cmax.CX; cx++ {
		for cy := cmin.CY; cy <= cmax.CY; cy++ {
			for cz := cmin.CZ; cz <= cmax.CZ; cz++ {
				for _, id := range m.cached[FromRaw(cx, cy, cz)] {
					cb(id)
				}
			}
		}
	}
}

func (m *Map) scanAll(cb func(ID)) {
	for _, bucket := range m.cached {
		for _, id := range bucket {
			cb(id)
		}
	}
}

// GetObjectsIdsInRadius invokes insideCb for ids whose whole cell is
// provably inside the sphere (center, radius) and maybeCb for ids whose cell
// only might be — the caller must re-check those with an exact distance
// test. The crossover for this query carries the documented +100 slack on
// top of N <= M, so radius queries keep walking cells slightly past the
// point a box query would switch to a full scan.
func (m *Map) GetObjectsIdsInRadius(center geom.Vec3f, radius float32, maybeCb, insideCb func(ID)) {
	m.enterIter()
	defer m.exitIter()

	box := geom.FromCenterRadius(center, radius)
	cmin := FromWorld(box.Min)
	cmax := FromWorld(box.Max)
	n := cellVolume(cmin, cmax)

	if n > 0 && n <= m.Size()+m.radiusWalkSlack {
		m.walkRadiusCells(cmin, cmax, center, radius, maybeCb, insideCb)
		return
	}
	m.scanAll(maybeCb)
}

func (m *Map) walkRadiusCells(cmin, cmax Key, center geom.Vec3f, radius float32, maybeCb, insideCb func(ID)) {
	r2 := radius * radius
	clipColumns := radius > columnClipRadius

	for cx := cmin.CX; cx <= cmax.CX; cx++ {
		cyLo, cyHi, czLo, czHi := cmin.CY, cmax.CY, cmin.CZ, cmax.CZ

		if clipColumns {
			var ok bool
			cyLo, cyHi, czLo, czHi, ok = clipColumn(cx, center, r2, cmin, cmax)
			if !ok {
				continue
			}
		}

		for cy := cyLo; cy <= cyHi; cy++ {
			for cz := czLo; cz <= czHi; cz++ {
				key := FromRaw(cx, cy, cz)
				bucket := m.cached[key]
				switch {
				case len(bucket) == 0:
					continue
				case len(bucket) <= classifyThreshold:
					for _, id := range bucket {
						maybeCb(id)
					}
				default:
					emitClassified(key, bucket, center, r2, maybeCb, insideCb)
				}
			}
		}
	}
}

// clipColumn narrows the y/z cell range for the x-column cx to the sphere's
// cross-section at that column, projecting extent = sqrt(r^2 - dx^2) where dx
// is the distance from center.x to the column's (margin-padded) world-x
// span. Returns ok=false when the column cannot intersect the sphere at all.
func clipColumn(cx int16, center geom.Vec3f, r2 float32, cmin, cmax Key) (cyLo, cyHi, czLo, czHi int16, ok bool) {
	xLo := float32(cx)*cellSize - safetyMargin
	xHi := float32(cx+1)*cellSize + safetyMargin

	var dx float32
	switch {
	case center.X < xLo:
		dx = xLo - center.X
	case center.X > xHi:
		dx = center.X - xHi
	}

	rem2 := r2 - dx*dx
	if rem2 < 0 {
		return 0, 0, 0, 0, false
	}
	extent := float32(math.Sqrt(float64(rem2)))

	cyLo = roundOutwardCell(center.Y - extent)
	cyHi = roundOutwardCell(center.Y + extent)
	czLo = roundOutwardCell(center.Z - extent)
	czHi = roundOutwardCell(center.Z + extent)

	if cyLo < cmin.CY {
		cyLo = cmin.CY
	}
	if cyHi > cmax.CY {
		cyHi = cmax.CY
	}
	if czLo < cmin.CZ {
		czLo = cmin.CZ
	}
	if czHi > cmax.CZ {
		czHi = cmax.CZ
	}
	if cyLo > cyHi || czLo > czHi {
		return 0, 0, 0, 0, false
	}
	return cyLo, cyHi, czLo, czHi, true
}

// emitClassified tests key's (margin-padded) cell AABB against the sphere
// (center, r2) and routes every id in bucket to insideCb when the whole
// padded cell is provably within the sphere, to maybeCb when it merely might
// intersect, or drops the cell entirely when it is provably disjoint.
func emitClassified(key Key, bucket []ID, center geom.Vec3f, r2 float32, maybeCb, insideCb func(ID)) {
	padded := cellAABB(key).Expand(safetyMargin)

	closest := padded.ClosestPoint(center)
	if closest.SqDist(center) > r2 {
		return
	}

	farthest := padded.FarthestPoint(center)
	cb := maybeCb
	if farthest.SqDist(center) <= r2 {
		cb = insideCb
	}
	for _, id := range bucket {
		cb(id)
	}
}

func cellAABB(key Key) geom.AABB3f {
	min := geom.Vec3f{
		X: float32(key.CX) * cellSize,
		Y: float32(key.CY) * cellSize,
		Z: float32(key.CZ) * cellSize,
	}
	max := geom.Vec3f{X: min.X + cellSize, Y: min.Y + cellSize, Z: min.Z + cellSize}
	return geom.AABB3f{Min: min, Max: max}
}

// cellVolume returns the number of cells in the inclusive range
// [cmin, cmax] on every axis — the N of the adaptive cell-walk-vs-scan
// crossover. fromWorld's own round-outward bias already guarantees cmax is
// the cell containing the query's upper bound, so the walk must include it;
// see DESIGN.md for why this is inclusive rather than the half-open range
// named in the original description.
func cellVolume(cmin, cmax Key) int {
	dx := int(cmax.CX) - int(cmin.CX) + 1
	dy := int(cmax.CY) - int(cmin.CY) + 1
	dz := int(cmax.CZ) - int(cmin.CZ) + 1
	if dx <= 0 || dy <= 0 || dz <= 0 {
		return 0
	}
	return dx * dy * dz
}
