// Package raster is the small software 3D renderer the scenes draw with.
//
// It is meant for decorative scenes: a few dozen meshes, flat shading, a handful of
// lights. It is not a game engine and does not provide a GPU abstraction.
//
// Pipeline (fixed):
//
//	Scene → Model → View/Projection → Near reject → Rasterization → Target.
//
// The renderer draws into a caller-provided Target and keeps its depth buffer between
// frames, so a Renderer should be created once per surface and reused.
package raster
