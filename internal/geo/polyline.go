package geo

import (
	"encoding/json"
	"fmt"

	"github.com/OCAP2/czml/pkg/czml"
	geom "github.com/peterstace/simplefeatures/geom"
)

// ParsePolyline parses a JSON array of coordinates into a geom.LineString.
// Input format: "[[x1,y1],[x2,y2],...]"
func ParsePolyline(input string) (geom.LineString, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return geom.LineString{}, fmt.Errorf("failed to parse polyline JSON: %w", err)
	}
	return LineFromPoints(coords)
}

// LineFromPoints builds a 2D line string from [x, y, ...] points; extra
// components are ignored.
func LineFromPoints(points [][]float64) (geom.LineString, error) {
	if len(points) < 2 {
		return geom.LineString{}, fmt.Errorf("polyline must have at least 2 points, got %d", len(points))
	}

	flatCoords := make([]float64, 0, len(points)*2)
	for i, coord := range points {
		if len(coord) < 2 {
			return geom.LineString{}, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		flatCoords = append(flatCoords, coord[0], coord[1])
	}

	seq := geom.NewSequence(flatCoords, geom.DimXY)
	return geom.NewLineString(seq), nil
}

// LineLength returns the planar length of ls in world metres.
func LineLength(ls geom.LineString) float64 {
	return ls.Length()
}

// ProjectLine converts each vertex of ls to degrees at the given height.
func (p *Projector) ProjectLine(ls geom.LineString, height float64) czml.PositionList {
	seq := ls.Coordinates()
	out := make(czml.List[czml.Cartographic], 0, seq.Length())
	for i := 0; i < seq.Length(); i++ {
		xy := seq.GetXY(i)
		out = append(out, p.Project(xy.X, xy.Y, height))
	}
	return czml.PositionList{CartographicDegrees: out}
}
