// Package board holds the state of a focus board: the fixed member roster,
// the ordered task collection, and the rules deciding who may change what.
//
// A Store is the single owner of the task collection. Every mutation builds
// a fresh slice and swaps it in, so a slice returned by Tasks or ForMember is
// a stable snapshot. Operations never fail: an unknown id is ignored, the last
// remaining task cannot be removed, and tasks outside the viewer's column are
// left untouched no matter which caller asks.
package board
