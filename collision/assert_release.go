//go:build !collidedebug

package collision

const staleDataFatal = false
