// Package physics2d is a deterministic, fixed-timestep 2D rigid-body
// physics engine for top-down games.
//
// A World owns a set of Bodies (circles and axis-aligned rectangles),
// advances them on a fixed sub-step accumulator, and reports collisions
// through a start/active/end event lifecycle. The engine has no angular
// state, no joints, and no polygon shapes beyond axis-aligned rectangles —
// see the package-level design notes in DESIGN.md for the reasoning.
//
// A World is not safe for concurrent use. Step must not be called
// concurrently with itself or with any other World method.
package physics2d
