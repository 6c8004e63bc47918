// Package keys holds the application keymap and derives the pool of
// label characters available for on-screen quick-jump overlays.
package keys

// Binding describes a single application key binding.
type Binding struct {
	Key  rune
	Name string
}

// Bindings is the full application keymap. Adding a key here automatically
// reserves it so it won't be reused as a quick-jump label.
var Bindings = []Binding{
	// Step navigation
	{Key: 'l', Name: "step forward"},
	{Key: 'h', Name: "step backward"},
	{Key: ']', Name: "next hunk"},
	{Key: '[', Name: "prev hunk"},
	{Key: 'g', Name: "go to start"},
	{Key: 'G', Name: "go to end"},

	// Scrolling
	{Key: 'j', Name: "scroll down"},
	{Key: 'k', Name: "scroll up"},
	{Key: 'd', Name: "half page down"},
	{Key: 'u', Name: "half page up"},

	// View modes
	{Key: 's', Name: "split view"},
	{Key: 'v', Name: "evolution view"},
	{Key: 'b', Name: "blame overlay"},
	{Key: 'w', Name: "wrap"},
	{Key: 'e', Name: "file explorer"},
	{Key: 'x', Name: "syntax highlight"},

	// Full file view
	{Key: 'f', Name: "toggle full file view"},

	// Yank / copy
	{Key: 'y', Name: "yank added lines"},
	{Key: 'Y', Name: "yank patch"},
	{Key: 'c', Name: "copy current line"},
	{Key: 'r', Name: "yank removed lines"},
	{Key: 'R', Name: "yank resulting code"},

	// Staging
	{Key: 'A', Name: "stage hunk"},

	// Follow mode
	{Key: 'F', Name: "follow mode"},

	// Search
	{Key: '/', Name: "search"},
	{Key: 'n', Name: "next search match"},
	{Key: 'N', Name: "prev search match"},

	// File navigation
	{Key: ')', Name: "next file"},
	{Key: '(', Name: "prev file"},

	// Help
	{Key: '?', Name: "help"},

	// Actions
	{Key: 'o', Name: "open in editor"},

	// Watch mode
	{Key: 'W', Name: "toggle watch mode"},

	// Fold
	{Key: '+', Name: "more context"},
	{Key: '=', Name: "more context"},
	{Key: '-', Name: "less context"},

	// Misc
	{Key: 'q', Name: "quit"},
}

// Reserved maps every bound key, so label generation can skip them.
var Reserved map[rune]bool

// AvailableLabels is the list of safe label characters for quick-jump
// overlays (e.g. jump-to-hunk-by-letter): a-z then A-Z, minus Reserved.
var AvailableLabels []rune

func init() {
	Reserved = make(map[rune]bool, len(Bindings))
	for _, kb := range Bindings {
		Reserved[kb.Key] = true
	}
	for r := 'a'; r <= 'z'; r++ {
		if !Reserved[r] {
			AvailableLabels = append(AvailableLabels, r)
		}
	}
	for r := 'A'; r <= 'Z'; r++ {
		if !Reserved[r] {
			AvailableLabels = append(AvailableLabels, r)
		}
	}
}

// IndexToLabel maps a zero-based hunk/file index to a quick-jump label,
// falling back to two-character labels once AvailableLabels is exhausted.
func IndexToLabel(idx int) string {
	n := len(AvailableLabels)
	if idx < n {
		return string(AvailableLabels[idx])
	}
	over := idx - n
	first := over / n
	second := over % n
	if first >= n {
		first = n - 1
	}
	return string(AvailableLabels[first]) + string(AvailableLabels[second])
}
