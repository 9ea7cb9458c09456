package overlay

import "math"

// Nearest returns the index of the entity whose projected position is closest to
// (x, y) and no farther than radius. pixelOf maps an entity to surface pixels;
// it reports ok=false for entities that are not drawn.
func Nearest(entities []Entity, pixelOf func(Entity) (x, y float64, ok bool), x, y, radius float64) (int, bool) {
	best, bestD := -1, math.Inf(1)
	for i, e := range entities {
		px, py, ok := pixelOf(e)
		if !ok {
			continue
		}
		d := math.Hypot(px-x, py-y)
		if d <= radius && d < bestD {
			best, bestD = i, d
		}
	}
	return best, best >= 0
}
