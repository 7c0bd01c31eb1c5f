// Package stage is the procedural scene animation core.
//
// A stage is made of small pieces that are wired together by the page host:
//
//	gate    visibility activation (Dormant -> Active)
//	clock   refresh driver and per-scene render loops
//	scene   entities, lights and an optional camera controller
//	entity  animated primitives with pure motion profiles
//	camera  auto-rotate / drag / zoom orbit policy
//	raster  software renderer the scenes draw with
//
// Nothing in the core blocks or owns a goroutine. The host calls Refresh.Frame once
// per display refresh and every active loop receives exactly one tick.
package stage
