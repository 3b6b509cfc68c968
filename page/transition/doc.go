// Package transition implements PDF page transition dictionaries.
//
// Transition dictionaries control the visual effect used when moving
// from one page to another during a presentation. The transition is
// specified in the destination page's dictionary.
//
// Transition styles include wipes, dissolves, blinds, and various
// other effects. Some styles (Fly, Push, Cover, Uncover, Fade) require
// PDF 1.5 or later.
package transition
