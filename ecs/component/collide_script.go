package component

// CollideScript names a tengo script whose on_collide decides the verdict.
type CollideScript struct {
	Path string
}

var CollideScriptComponent = NewComponent[CollideScript]()
