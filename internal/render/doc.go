// Package render draws an image file inline in the terminal, either with the
// kitty graphics protocol or with colored half blocks on any truecolor
// terminal.
package render
