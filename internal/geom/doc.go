// Package geom provides the 2D vector value shared by the curve, physics
// and scene packages.
//
// All operations return new values; [Point] has no identity.
package geom
