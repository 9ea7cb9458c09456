package geo

// MarkerInset keeps clamped marker positions off the container edge.
const MarkerInset = 0.05

// Project maps c linearly into the bounds window. North is up, so Y grows southwards.
// The result is not clamped; coordinates outside b fall outside [0,1].
func Project(c Coordinate, b Bounds) Fraction {
	return Fraction{
		X: (c.Lng - b.MinLng) / (b.MaxLng - b.MinLng),
		Y: (b.MaxLat - c.Lat) / (b.MaxLat - b.MinLat),
	}
}

// ProjectClamped is Project with each axis held inside [MarkerInset, 1-MarkerInset].
func ProjectClamped(c Coordinate, b Bounds) Fraction {
	return ProjectInset(c, b, MarkerInset)
}

// ProjectInset is Project with each axis held inside [inset, 1-inset].
func ProjectInset(c Coordinate, b Bounds, inset float64) Fraction {
	f := Project(c, b)
	f.X = clamp(f.X, inset, 1-inset)
	f.Y = clamp(f.Y, inset, 1-inset)
	return f
}

// Unproject is the inverse of Project.
func Unproject(f Fraction, b Bounds) Coordinate {
	return Coordinate{
		Lat: b.MaxLat - f.Y*(b.MaxLat-b.MinLat),
		Lng: b.MinLng + f.X*(b.MaxLng-b.MinLng),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
