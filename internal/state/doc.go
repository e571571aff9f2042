// Package state defines the phases of the viewer loop and the pure
// transition rules between them.
//
//	Fetching -> Filtering -> Downloading -> Rendering -> AwaitingInput
//	    ^           |                                        |
//	    +-----------+ (rejected extension)                   |
//	    +----------------------------------------------------+ (n / N)
//	                                                         |
//	                                           Terminated <--+ (q / Q / esc)
//
// Only AwaitingInput waits on the user. A rejected post returns to Fetching
// without any pause.
package state
