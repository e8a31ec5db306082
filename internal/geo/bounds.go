package geo

// Bounds is the smallest lat/lng box enclosing a set of points.
type Bounds struct {
	Min Coordinates `json:"min"`
	Max Coordinates `json:"max"`
}

// BoundsOf returns the bounding box of the points and false if there are none.
func BoundsOf(points []Coordinates) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}

	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.Lat < b.Min.Lat {
			b.Min.Lat = p.Lat
		}
		if p.Lat > b.Max.Lat {
			b.Max.Lat = p.Lat
		}
		if p.Lng < b.Min.Lng {
			b.Min.Lng = p.Lng
		}
		if p.Lng > b.Max.Lng {
			b.Max.Lng = p.Lng
		}
	}
	return b, true
}

// Contains reports whether p lies inside the box, edges included.
func (b Bounds) Contains(p Coordinates) bool {
	return p.Lat >= b.Min.Lat && p.Lat <= b.Max.Lat &&
		p.Lng >= b.Min.Lng && p.Lng <= b.Max.Lng
}
