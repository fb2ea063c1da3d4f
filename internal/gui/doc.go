// Package gui is the native window surface for the spring curve, drawn with
// raylib. The window is the size of the logical surface, so mouse
// coordinates are used as the pointer unchanged.
package gui
