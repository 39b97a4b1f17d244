package component

// GravityScale multiplies the scene gravity for one dynamic body. Zero makes
// the body float.
type GravityScale struct {
	Scale float64
}

var GravityScaleComponent = NewComponent[GravityScale]()
