package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data and body configuration. Body and
// Shape are created lazily by the physics system.
type PhysicsBody struct {
	Body       *cp.Body
	Shape      *cp.Shape
	Mass       float64
	Elasticity float64
	Static     bool
	// Initial velocity applied when the body is created.
	VelocityX float64
	VelocityY float64
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
