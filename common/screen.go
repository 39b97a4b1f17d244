package common

// Logical screen size; the window scales to it.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)
