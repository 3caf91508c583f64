// Package polynav finds walking paths inside a 2D polygonal area.
//
// The walkable area is one main polygon; obstacles are further polygons
// that can be added, removed, switched on and off, or made to follow a
// moving owner such as a character. Paths are shortest routes over a
// visibility graph whose nodes sit on polygon corners, pushed off them by a
// small clearance:
//
//	pf := polynav.New()
//	pf.SetMainPolygon([]polynav.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}})
//	pf.AddObstacle("crate", crateOutline)
//	path := pf.FindPath(from, to)
//
// The graph is sized for adventure-game rooms: tens of vertices and a
// handful of obstacles.
package polynav
