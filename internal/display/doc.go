// Package display converts user-drawn selection rectangles from logical UI
// pixels into the physical pixel regions capture devices expect.
package display
