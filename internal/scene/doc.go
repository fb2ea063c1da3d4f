// Package scene ties the spring-driven control points to the curve
// evaluator and produces one renderable [Frame] per tick.
//
// The scene knows nothing about drawing surfaces. A host supplies the
// pointer position and [Params] each frame and draws the returned frame:
//
//	s := scene.New(800, 500, 50)
//	for each frame {
//	    f := s.Tick(pointer, params)
//	    draw(f.Polyline, f.Tangents, f.Controls)
//	}
//
// # Thread Safety
//
// Scene is not safe for concurrent use. Hosts call Tick from their single
// frame loop.
package scene
