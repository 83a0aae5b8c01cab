// Package render paints an epoch onto a 2D surface.
//
// Rendering is split into the three drawing stages of a frame so the engine
// can run them in order: [Fade] composites a translucent black rectangle
// over the previous frame (trails decay geometrically instead of being
// cleared), [DrawConnections] strokes two-stop gradients along every edge and
// [DrawEntities] paints radial glows with optional labels. [RenderFrame]
// runs all three.
//
// Colors, radii and widths are constants of a [Style]; only epoch data
// varies between frames. Concrete surfaces live in the raster, viz and
// export packages. [Recorder] is an in-memory surface that records calls.
package render
