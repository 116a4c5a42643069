package history

import "strings"

// Mode selects which QA pipeline a composed message targets. The zero value
// means no chip is active and submissions fall back to general QA.
type Mode string

const (
	ModeUnset      Mode = ""
	ModeGeneralQA  Mode = "GENERAL_QA"
	ModeDatabaseQA Mode = "DATABASE_QA"
	ModeFileDataQA Mode = "FILEDATA_QA"
	ModeDeepSearch Mode = "DEEP_SEARCH"
)

// Modes returns the selectable mode tags in display order.
func Modes() []Mode {
	return []Mode{ModeGeneralQA, ModeDatabaseQA, ModeFileDataQA, ModeDeepSearch}
}

// Submission is the discrete event a successful Submit emits.
type Submission struct {
	Text string
	Mode Mode
}

// Composer owns the free-text input and the optional mode chip.
type Composer struct {
	text string
	mode Mode
}

func NewComposer() *Composer { return &Composer{} }

func (c *Composer) Text() string { return c.text }
func (c *Composer) Mode() Mode   { return c.mode }

// SetText stores the raw input, no transformation.
func (c *Composer) SetText(s string) { c.text = s }

// Insert appends to the input. A newline from a shift-modified enter goes
// through here like any other text.
func (c *Composer) Insert(s string) { c.text += s }

// Backspace removes the last rune of the input.
func (c *Composer) Backspace() {
	if c.text == "" {
		return
	}
	runes := []rune(c.text)
	c.text = string(runes[:len(runes)-1])
}

// SelectMode activates a chip; at most one is active, a new pick silently
// replaces the previous.
func (c *Composer) SelectMode(m Mode) { c.mode = m }

// ClearMode deactivates the chip. The input text is untouched.
func (c *Composer) ClearMode() { c.mode = ModeUnset }

// PickerVisible reports whether the chip picker should show: hidden whenever
// a mode is already selected.
func (c *Composer) PickerVisible() bool { return c.mode == ModeUnset }

// Submit emits the composed message. Whitespace-only text is a no-op.
// An unset mode defaults to general QA. On emission the text clears but the
// mode stays active across turns.
func (c *Composer) Submit() (Submission, bool) {
	if strings.TrimSpace(c.text) == "" {
		return Submission{}, false
	}
	sub := Submission{Text: c.text, Mode: c.mode}
	if sub.Mode == ModeUnset {
		sub.Mode = ModeGeneralQA
	}
	c.text = ""
	return sub, true
}
