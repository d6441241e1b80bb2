package geo

import (
	"errors"
	"math"

	"github.com/OCAP2/czml/pkg/czml"
	"github.com/wroge/wgs84"
)

// World positions are metres east/north of the map's south-west corner. They
// are placed on the globe as a Web Mercator (EPSG:3857) offset from a
// configured origin and converted back to WGS84 degrees.

// ErrInvalidOrigin is returned when the origin is outside the Mercator range.
var ErrInvalidOrigin = errors.New("origin outside web mercator bounds")

const maxMercatorLatitude = 85.05112878

// Projector maps world metres to geodetic coordinates.
type Projector struct {
	originX, originY float64
	scale            float64
	heightOffset     float64
	toGeodetic       func(a, b, c float64) (float64, float64, float64)
}

// NewProjector builds a projector anchored at longitude/latitude in degrees.
func NewProjector(originLon, originLat, heightOffset float64) (*Projector, error) {
	if math.Abs(originLat) > maxMercatorLatitude || math.Abs(originLon) > 180 {
		return nil, ErrInvalidOrigin
	}
	epsg := wgs84.EPSG()
	x, y, _ := epsg.Transform(4326, 3857)(originLon, originLat, 0)
	return &Projector{
		originX: x,
		originY: y,
		// mercator metres are stretched by sec(lat) away from the equator
		scale:        1 / math.Cos(originLat*math.Pi/180),
		heightOffset: heightOffset,
		toGeodetic:   epsg.Transform(3857, 4326),
	}, nil
}

// Project converts a world position into degrees and metres above the ellipsoid.
func (p *Projector) Project(x, y, z float64) czml.Cartographic {
	lon, lat, _ := p.toGeodetic(p.originX+x*p.scale, p.originY+y*p.scale, 0)
	return czml.Cartographic{Longitude: lon, Latitude: lat, Height: z + p.heightOffset}
}

// BearingToQuaternion returns the rotation about the local up axis for a
// compass bearing in degrees (clockwise from north).
func BearingToQuaternion(bearing float64) czml.UnitQuaternion {
	half := -bearing * math.Pi / 360
	return czml.UnitQuaternion{Z: math.Sin(half), W: math.Cos(half)}
}
