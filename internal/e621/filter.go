package e621

// Accept reports whether media with the given extension can be shown in a
// terminal. Animated video and flash are rejected, as is anything outside the
// documented extension set.
func Accept(ext Ext) bool {
	switch ext {
	case ExtWebM, ExtSWF:
		return false
	}
	return ext.Known()
}
