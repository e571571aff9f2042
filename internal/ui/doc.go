// Package ui renders the viewer's inline terminal output: the download
// progress bar and the continue/quit prompt, styled by a shared theme.
//
// The viewer does not take over the screen. Components print inline and
// leave the scrollback intact, so images stay visible after exit.
//
// The prompt is a small bubbletea program. Raw mode lasts exactly as long as
// the program runs and is restored when Await returns.
//
// Themes are selected through the persisted preferences (see package prefs).
package ui
