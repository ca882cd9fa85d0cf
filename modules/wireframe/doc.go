// Package wireframe provides the APA wire-frame builder kinds.
//
// A "wire_frame_one" is a single ladder frame: two long sides, two short
// sides and a number of cross-bars, each a hollow stainless tube, inside a
// liquid argon envelope. A "wire_frame" combines a small, a medium and a
// large frame into the full anode plane: small and medium stacked in y, the
// large one placed twice, either side in z.
package wireframe
