// Package app is the composition root of the viewer and hosts its main loop.
//
// Run loads configuration, opens the log file, reads credentials, loads the
// spinner catalog and then hands control to a Loop until the user quits.
//
// # Loop
//
// Loop steps through the states defined in package state:
//
//	Fetching ──> Filtering ──> Downloading ──> Rendering ──> AwaitingInput
//	   ^             │                                          │    │
//	   └── rejected ─┘                                          │    │
//	   └──────────────────────── next ──────────────────────────┘    │
//	                                                   quit ──> Terminated
//
// The spinner runs only while the catalog request is outstanding and is
// always cleared before the result, or the error, is acted on. Rejected
// posts (video, flash, or no file URL) are re-fetched without any prompt.
//
// Errors from fetching, downloading or starting the spinner end the loop and
// are returned to the caller. An image that cannot be decoded is reported
// and the loop carries on to the prompt.
//
// # Collaborators
//
// Each step talks to an interface declared in collaborators.go so tests can
// substitute gomock doubles:
//
//   - Fetcher: *e621.Client
//   - Indicator: spinner.Animator
//   - Downloader: *download.Downloader
//   - Progress: *ui.ProgressBar
//   - Renderer: *render.Renderer
//   - Prompter: *ui.Prompt
package app
