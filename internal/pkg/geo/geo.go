package geo

import "math"

const (
	// EarthRadiusKm is the mean earth radius used for haversine distances.
	EarthRadiusKm = 6371.0

	// kmPerDegreeLat is the approximate north-south span of one degree of latitude.
	kmPerDegreeLat = 111.0

	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// Point is a geographic coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the point lies inside the WGS84 coordinate ranges.
func (p Point) Valid() bool {
	return p.Latitude >= minLatitude && p.Latitude <= maxLatitude &&
		p.Longitude >= minLongitude && p.Longitude <= maxLongitude
}

// Box is an axis-aligned bounding box in degrees.
type Box struct {
	LatMin float64
	LatMax float64
	LngMin float64
	LngMax float64
}

// Contains reports whether the point lies inside the box, bounds inclusive.
func (b Box) Contains(p Point) bool {
	return p.Latitude >= b.LatMin && p.Latitude <= b.LatMax &&
		p.Longitude >= b.LngMin && p.Longitude <= b.LngMax
}

// Distance returns the haversine great-circle distance between two points in kilometers.
func Distance(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// WithinRadius reports whether p lies within radiusKm of center. The
// boundary is inclusive, a point exactly at the radius counts.
func WithinRadius(center, p Point, radiusKm float64) bool {
	return Distance(center, p) <= radiusKm
}

// BoundingBox returns a box around center that fully contains the disc of the
// given radius. The longitude delta is widened by 1/cos(lat); near the poles,
// where cos(lat) vanishes, the box spans the full longitude range.
func BoundingBox(center Point, radiusKm float64) Box {
	latDelta := radiusKm / kmPerDegreeLat

	box := Box{
		LatMin: math.Max(center.Latitude-latDelta, minLatitude),
		LatMax: math.Min(center.Latitude+latDelta, maxLatitude),
	}

	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if math.Abs(cosLat) < 1e-6 {
		box.LngMin = minLongitude
		box.LngMax = maxLongitude
		return box
	}

	lngDelta := latDelta / math.Abs(cosLat)
	box.LngMin = center.Longitude - lngDelta
	box.LngMax = center.Longitude + lngDelta
	if box.LngMin < minLongitude {
		box.LngMin = minLongitude
	}
	if box.LngMax > maxLongitude {
		box.LngMax = maxLongitude
	}
	return box
}
