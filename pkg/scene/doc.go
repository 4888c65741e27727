// Package scene defines the composite scene the habitat generator hands to
// a viewer: a tree of named groups whose leaves own exactly one solid each,
// plus the toggle-view state that switches the outer shell between opaque
// and see-through.
//
// A Scene is produced by a Builder and never mutated afterwards; each
// generation produces a new scene. The View is the only state that changes
// after construction and it lives outside the tree.
package scene
