// Package sink paints gallifrey frames onto surfaces other than the window:
// SVG documents, PNG images and terminal cell grids.
//
// Each sink implements gallifrey.Surface, so a frame is painted with
//
//	frame.Replay(surface)
//
// and the Render* helpers wrap that for whole documents.
package sink
