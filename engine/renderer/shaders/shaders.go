// Package shaders embeds the WGSL sources used by the renderer.
package shaders

import _ "embed"

// Lit is the standard-material shader: groups 0 (camera, lights), 1 (object, material) and 2 (maps).
//
//go:embed lit.wgsl
var Lit string

// Line is the unlit line shader for light helpers; it only reads group 0 binding 0.
//
//go:embed line.wgsl
var Line string
