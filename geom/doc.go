// Package geom provides the grid geometry value types used throughout the engine.
//
// All coordinates and extents are uint16 cells. Arithmetic saturates at the type
// bounds instead of wrapping; operations that would need a negative extent clamp
// to zero.
package geom
