package teletext

// Indicator is a rotating spinner with a message, shown in the footer
// while a fetch or date search is in flight.
type Indicator struct {
	Message string
	frame   int
}

var spinnerFrames = []string{"|", "/", "-", "\\"}

func NewIndicator(message string) *Indicator {
	return &Indicator{Message: message}
}

// Tick advances the spinner by one frame.
func (i *Indicator) Tick() {
	i.frame = (i.frame + 1) % len(spinnerFrames)
}

// Glyph is the current spinner character.
func (i *Indicator) Glyph() string {
	return spinnerFrames[i.frame]
}
