// Package sim drives a [scene.Scene] one frame at a time.
//
// Two drivers share the same per-frame step:
//
//   - [Loop]: interactive. A [Host] supplies the pointer and draws each
//     frame; the terminal and window front ends are hosts.
//   - [Runner]: headless. A [PointerSource] scripts the pointer, [Metric]s
//     observe every frame and the run stops after a frame budget or once
//     both springs settle.
//
// [Sweep] fans one pointer source out over several parameter sets in
// parallel, one fresh scene per set.
//
// Frames containing NaN or Inf are reported as [FrameError]s wrapping
// [ErrInvalidState] when validation is on.
package sim
