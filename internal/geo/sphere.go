package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for all spherical math.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b Coordinate) float64 {
	if a == b {
		return 0
	}
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	if h > 1 {
		h = 1
	}
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// BearingDeg returns the initial great-circle bearing from one point toward another,
// in [0, 360). Identical points yield 0.
func BearingDeg(from, to Coordinate) float64 {
	if from == to {
		return 0
	}
	lat1 := toRad(from.Lat)
	lat2 := toRad(to.Lat)
	dLng := toRad(to.Lng - from.Lng)

	y := math.Sin(dLng) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLng)
	if x == 0 && y == 0 {
		return 0
	}
	deg := math.Mod(toDeg(math.Atan2(y, x))+360, 360)
	// Mod can round -tiny+360 up to exactly 360.
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// Measure computes distance and bearing from one coordinate to another.
func Measure(from, to Coordinate) DistanceBearing {
	return DistanceBearing{DistanceKm: HaversineKm(from, to), BearingDeg: BearingDeg(from, to)}
}

// DestinationPoint walks distanceKm from start along the given initial bearing.
func DestinationPoint(start Coordinate, bearingDeg, distanceKm float64) Coordinate {
	lat1 := toRad(start.Lat)
	lng1 := toRad(start.Lng)
	brg := toRad(bearingDeg)
	ang := distanceKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ang) + math.Cos(lat1)*math.Sin(ang)*math.Cos(brg))
	lng2 := lng1 + math.Atan2(
		math.Sin(brg)*math.Sin(ang)*math.Cos(lat1),
		math.Cos(ang)-math.Sin(lat1)*math.Sin(lat2),
	)
	lng2 = math.Mod(lng2+3*math.Pi, 2*math.Pi) - math.Pi
	return Coordinate{Lat: toDeg(lat2), Lng: toDeg(lng2)}
}

var compassPoints = [...]string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CompassPoint names the 16-wind rose sector of a bearing.
func CompassPoint(bearingDeg float64) string {
	b := math.Mod(bearingDeg, 360)
	if b < 0 {
		b += 360
	}
	return compassPoints[int(math.Floor(b/22.5+0.5))%len(compassPoints)]
}

// String renders the coordinate as a GPS readout, e.g. "1.40610°S 35.04000°E".
func (c Coordinate) String() string {
	ns, ew := "N", "E"
	if c.Lat < 0 {
		ns = "S"
	}
	if c.Lng < 0 {
		ew = "W"
	}
	return fmt.Sprintf("%.5f°%s %.5f°%s", math.Abs(c.Lat), ns, math.Abs(c.Lng), ew)
}

// String renders the measurement as "12.34 km @ 045.0° NE".
func (d DistanceBearing) String() string {
	return fmt.Sprintf("%.2f km @ %05.1f° %s", d.DistanceKm, d.BearingDeg, CompassPoint(d.BearingDeg))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func toDeg(rad float64) float64 { return rad * 180 / math.Pi }
