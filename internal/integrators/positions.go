package integrators

import (
	"math"

	"github.com/san-kum/dpsim/internal/dynamo"
)

// DerivePositions projects the state onto the host's 2D frame, returning
// the first and second bob. Angle 0 puts a bob at pivot.y - length.
func DerivePositions(x dynamo.State, p dynamo.Params, pivot dynamo.Point) (dynamo.Point, dynamo.Point) {
	pos1 := dynamo.Point{
		X: pivot.X + p.Length1*math.Sin(x.Angle1),
		Y: pivot.Y - p.Length1*math.Cos(x.Angle1),
	}
	pos2 := dynamo.Point{
		X: pos1.X + p.Length2*math.Sin(x.Angle2),
		Y: pos1.Y - p.Length2*math.Cos(x.Angle2),
	}
	return pos1, pos2
}
