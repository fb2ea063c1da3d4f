// Package export writes frames to file surfaces: SVG snapshots, JSON frame
// dumps, and paletted rasters for GIF recordings.
package export
