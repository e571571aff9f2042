package state

// LoopState is the current phase of the viewer loop.
type LoopState int

const (
	Fetching LoopState = iota
	Filtering
	Downloading
	Rendering
	AwaitingInput
	Terminated
)

var names = [...]string{
	Fetching:      "fetching",
	Filtering:     "filtering",
	Downloading:   "downloading",
	Rendering:     "rendering",
	AwaitingInput: "awaiting-input",
	Terminated:    "terminated",
}

func (s LoopState) String() string {
	if s < 0 || int(s) >= len(names) {
		return "unknown"
	}
	return names[s]
}

// Key names, spelled the way bubbletea reports them.
const (
	KeyNextLower = "n"
	KeyNextUpper = "N"
	KeyQuitLower = "q"
	KeyQuitUpper = "Q"
	KeyEscape    = "esc"
	KeyInterrupt = "ctrl+c"
)

// NextKeys request another post.
var NextKeys = []string{KeyNextLower, KeyNextUpper}

// QuitKeys end the session.
var QuitKeys = []string{KeyQuitLower, KeyQuitUpper, KeyEscape, KeyInterrupt}

// OnKey returns the state that follows AwaitingInput after key is pressed.
// Unrecognized keys leave the loop waiting.
func OnKey(key string) LoopState {
	for _, k := range NextKeys {
		if key == k {
			return Fetching
		}
	}
	for _, k := range QuitKeys {
		if key == k {
			return Terminated
		}
	}
	return AwaitingInput
}

// AfterFilter returns the state that follows Filtering.
func AfterFilter(accepted bool) LoopState {
	if accepted {
		return Downloading
	}
	return Fetching
}
