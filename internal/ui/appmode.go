package ui

// Mode says where key presses go: the claim input or the leader-key layer.
type Mode int

const (
	ModeEditing Mode = iota
	ModeBrowsing
)

func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "Editing"
	case ModeBrowsing:
		return "Browsing"
	default:
		return "Unknown"
	}
}
