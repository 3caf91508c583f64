package polynav

import (
	"github.com/dhconnelly/rtreego"
)

// boundsPadding widens every rectangle handed to the R-tree. rtreego rejects
// zero-length sides, and a padded box still contains every proper crossing.
const boundsPadding = 1e-6

// polygonEntry wraps a polygon for R-tree storage
type polygonEntry struct {
	poly *polygon
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *polygonEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// spatialIndex is the line-of-sight broad phase: it narrows the polygons
// whose edges a segment could cross.
type spatialIndex struct {
	tree *rtreego.Rtree
	// loose holds polygons whose bounds could not be indexed; they are
	// returned by every query.
	loose []*polygon
}

// newSpatialIndex indexes the raw outlines of polys. Disabled polygons are
// indexed too and filtered at query time.
func newSpatialIndex(polys []*polygon) *spatialIndex {
	si := &spatialIndex{tree: rtreego.NewTree(2, 4, 16)}
	for _, p := range polys {
		bbox, err := paddedRect(boundingBox(p.verts))
		if err != nil {
			si.loose = append(si.loose, p)
			continue
		}
		si.tree.Insert(&polygonEntry{poly: p, bbox: bbox})
	}
	return si
}

// candidates returns the polygons whose bounds overlap segment a-b.
func (si *spatialIndex) candidates(a, b Point) []*polygon {
	minP := Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)}
	maxP := Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)}
	bbox, err := paddedRect(minP, maxP)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	polys := make([]*polygon, 0, len(results)+len(si.loose))
	for _, item := range results {
		polys = append(polys, item.(*polygonEntry).poly)
	}
	return append(polys, si.loose...)
}

// paddedRect builds an R-tree rectangle from min/max corners, padded on
// every side.
func paddedRect(minP, maxP Point) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{minP.X - boundsPadding, minP.Y - boundsPadding},
		[]float64{maxP.X - minP.X + 2*boundsPadding, maxP.Y - minP.Y + 2*boundsPadding},
	)
}
