package teletext

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	sgrReset      = "\x1b[0m"
	osc8Close     = "\x1b]8;;\a"
	osc8OpenStart = "\x1b]8;;"
)

// RenderANSI flattens a frame into plain lines with 8-bit SGR colors and
// OSC-8 hyperlinks, one line per occupied row. Used for the --once output
// path; the interactive path paints the same frame onto a tcell screen.
func RenderANSI(f Frame) string {
	spans := f.Sorted()
	if len(spans) == 0 {
		return "\n"
	}
	maxY := spans[len(spans)-1].Y

	var b strings.Builder
	i := 0
	for y := 0; y <= maxY; y++ {
		x := 0
		for i < len(spans) && spans[i].Y == y {
			s := spans[i]
			i++
			if s.X > x {
				b.WriteString(strings.Repeat(" ", s.X-x))
				x = s.X
			}
			writeStyled(&b, s)
			x += runewidth.StringWidth(s.Text)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func writeStyled(b *strings.Builder, s Span) {
	styled := s.Style.FG != ColorDefault || s.Style.BG != ColorDefault || s.Style.Bold
	if styled {
		b.WriteString(sgrCode(s.Style))
	}
	if s.Style.Link != "" {
		b.WriteString(osc8OpenStart + s.Style.Link + "\a")
	}
	b.WriteString(s.Text)
	if s.Style.Link != "" {
		b.WriteString(osc8Close)
	}
	if styled {
		b.WriteString(sgrReset)
	}
}

func sgrCode(st Style) string {
	var parts []string
	if st.Bold {
		parts = append(parts, "1")
	}
	if st.FG != ColorDefault {
		parts = append(parts, fmt.Sprintf("38;5;%d", st.FG))
	}
	if st.BG != ColorDefault {
		parts = append(parts, fmt.Sprintf("48;5;%d", st.BG))
	}
	return "\x1b[" + strings.Join(parts, ";") + "m"
}

// SubheaderForTournament maps a tournament tag to its teletext subheader.
func SubheaderForTournament(tag string) string {
	switch tag {
	case "playoffs":
		return "PLAYOFFS"
	case "playout":
		return "PLAYOUT-OTTELUT"
	case "qualifications":
		return "LIIGAKARSINTA"
	case "valmistavat_ottelut":
		return "HARJOITUSOTTELUT"
	default:
		return "RUNKOSARJA"
	}
}
