package teletext

import (
	"fmt"
	"io"
	"time"

	"github.com/mattn/go-runewidth"
	"liiga-teletext/api"
)

const (
	// DefaultPageNumber is the classic teletext sports results page.
	DefaultPageNumber = 221
	// DefaultTitle is the page banner.
	DefaultTitle = "JÄÄKIEKKO"

	headerRows = 3 // two header lines plus one blank line
)

// PageOptions carries the display flags fixed for a page's lifetime.
type PageOptions struct {
	Mode              Mode
	DisableVideoLinks bool
	ShowFooter        bool
	IgnoreHeightLimit bool
	Width             int
	Height            int
}

// Page owns the ordered content rows of one teletext screen and renders
// them into frames: header, paginated content, optional countdown and
// footer. Build a fresh Page whenever the underlying data changes and
// carry the current page index over.
type Page struct {
	number    int
	title     string
	subheader string

	rows    []ContentRow
	current int

	width, height int
	mode          Mode
	disableLinks  bool
	showFooter    bool
	ignoreHeight  bool

	autoRefreshDisabled bool
	fetchedDate         string
	countdown           string
	errorWarning        bool

	loading     *Indicator
	autoRefresh *Indicator

	layout Layout
}

// NewPage constructs an empty page.
func NewPage(number int, title, subheader string, opts PageOptions) *Page {
	p := &Page{
		number:       number,
		title:        title,
		subheader:    subheader,
		width:        opts.Width,
		height:       opts.Height,
		mode:         opts.Mode,
		disableLinks: opts.DisableVideoLinks,
		showFooter:   opts.ShowFooter,
		ignoreHeight: opts.IgnoreHeightLimit,
	}
	p.layout = NewLayout(p.contentWidth(), nil)
	return p
}

// interactive is true for the live UI and false for --once output; it
// gates spacer lines, pagination and the page indicator.
func (p *Page) interactive() bool { return !p.ignoreHeight }

// contentWidth is the layout width: the full terminal in normal and
// compact modes, the fixed column width in wide mode.
func (p *Page) contentWidth() int {
	if p.mode == ModeWide && p.width >= WideMinimumWidth {
		return WideColumnWidth
	}
	return p.width
}

// AddGameResult appends a game row. Caller keeps the ordering.
func (p *Page) AddGameResult(g api.Game) {
	p.rows = append(p.rows, ContentRow{kind: rowGame, game: g})
	p.refreshLayout()
}

// AddErrorMessage appends an error line.
func (p *Page) AddErrorMessage(text string) {
	p.rows = append(p.rows, ContentRow{kind: rowError, text: text})
}

// AddFutureGamesHeader appends a "Seuraavat ottelut" style header line.
func (p *Page) AddFutureGamesHeader(text string) {
	p.rows = append(p.rows, ContentRow{kind: rowFutureHeader, text: text})
}

// Games returns the game rows in order.
func (p *Page) Games() []api.Game {
	var games []api.Game
	for _, r := range p.rows {
		if r.kind == rowGame {
			games = append(games, r.game)
		}
	}
	return games
}

func (p *Page) refreshLayout() {
	p.layout = NewLayout(p.contentWidth(), p.Games())
}

// SetFetchedDate records the date shown in the header (YYYY-MM-DD).
func (p *Page) SetFetchedDate(date string) { p.fetchedDate = date }

// FetchedDate is the date whose games the page shows.
func (p *Page) FetchedDate() string { return p.fetchedDate }

// SetAutoRefreshDisabled marks the page as static (historical dates).
func (p *Page) SetAutoRefreshDisabled(disabled bool) { p.autoRefreshDisabled = disabled }

// AutoRefreshDisabled reports whether the scheduler should leave the page
// alone.
func (p *Page) AutoRefreshDisabled() bool { return p.autoRefreshDisabled }

// SetSeasonCountdown caches the "days until the regular season" line.
func (p *Page) SetSeasonCountdown(days int) {
	p.countdown = fmt.Sprintf("Runkosarjan alkuun %d päivää", days)
}

// SetErrorWarning toggles the ⚠ marker in the footer.
func (p *Page) SetErrorWarning(active bool) { p.errorWarning = active }

// StartLoading shows a spinner with the given message in the footer.
func (p *Page) StartLoading(message string) {
	p.loading = NewIndicator(message)
}

// StopLoading removes the loading spinner.
func (p *Page) StopLoading() { p.loading = nil }

// StartAutoRefresh shows the auto-refresh spinner.
func (p *Page) StartAutoRefresh(message string) {
	p.autoRefresh = NewIndicator(message)
}

// StopAutoRefresh removes the auto-refresh spinner.
func (p *Page) StopAutoRefresh() { p.autoRefresh = nil }

// TickIndicators advances any active spinner and reports whether a redraw
// is needed.
func (p *Page) TickIndicators() bool {
	active := false
	if p.loading != nil {
		p.loading.Tick()
		active = true
	}
	if p.autoRefresh != nil {
		p.autoRefresh.Tick()
		active = true
	}
	return active
}

// Resize updates the page to a new terminal size, recomputing the layout
// and clamping the current page index.
func (p *Page) Resize(width, height int) {
	p.width, p.height = width, height
	p.refreshLayout()
	if total := p.TotalPages(); p.current >= total {
		p.current = total - 1
	}
	if p.current < 0 {
		p.current = 0
	}
}

// CurrentPage is the 0-based page index.
func (p *Page) CurrentPage() int { return p.current }

// SetCurrentPage restores a page index from a predecessor page, clamped to
// the valid range.
func (p *Page) SetCurrentPage(idx int) {
	total := p.TotalPages()
	if idx < 0 || idx >= total {
		idx = 0
	}
	p.current = idx
}

// TotalPages is the number of pages the content occupies.
func (p *Page) TotalPages() int {
	return len(p.paginate())
}

// NextPage advances with wrap-around. A single page never moves.
func (p *Page) NextPage() {
	if total := p.TotalPages(); total > 1 {
		p.current = (p.current + 1) % total
	}
}

// PreviousPage goes back with wrap-around.
func (p *Page) PreviousPage() {
	if total := p.TotalPages(); total > 1 {
		p.current = (p.current + total - 1) % total
	}
}

// renderUnit is a block of content that must never split across a page
// boundary: one game, one compact line of games, or one text line.
type renderUnit struct {
	height int
	games  []api.Game
	row    ContentRow
	isGame bool
}

func (p *Page) gameHeight(g api.Game) int {
	h := 1 + scorerRowCount(g)
	if p.interactive() {
		h++
	}
	return h
}

// buildUnits converts content rows into indivisible layout units for the
// active mode.
func (p *Page) buildUnits() []renderUnit {
	switch p.effectiveMode() {
	case ModeCompact:
		return p.buildCompactUnits()
	default:
		var units []renderUnit
		for _, r := range p.rows {
			if r.kind == rowGame {
				units = append(units, renderUnit{height: p.gameHeight(r.game), games: []api.Game{r.game}, isGame: true})
			} else {
				units = append(units, renderUnit{height: 1, row: r})
			}
		}
		return units
	}
}

func (p *Page) buildCompactUnits() []renderUnit {
	perLine := CompactGamesPerLine(p.width)
	if perLine == 0 {
		return []renderUnit{
			{height: 1, row: ContentRow{kind: rowError, text: "Pääte on liian kapea"}},
			{height: 1, row: ContentRow{kind: rowError, text: "Levennä ikkunaa"}},
		}
	}

	var units []renderUnit
	var group []api.Game
	flush := func() {
		if len(group) == 0 {
			return
		}
		units = append(units, renderUnit{height: 2, games: group, isGame: true})
		group = nil
	}
	for _, r := range p.rows {
		if r.kind == rowGame {
			group = append(group, r.game)
			if len(group) == perLine {
				flush()
			}
			continue
		}
		flush()
		units = append(units, renderUnit{height: 1, row: r})
	}
	flush()
	return units
}

// effectiveMode downgrades wide mode on terminals narrower than the
// two-column minimum.
func (p *Page) effectiveMode() Mode {
	if p.mode == ModeWide && p.width < WideMinimumWidth {
		return ModeNormal
	}
	return p.mode
}

func (p *Page) reservedRows() int {
	reserved := headerRows
	if p.showFooter {
		reserved++
	}
	if p.countdown != "" {
		reserved++
	}
	return reserved
}

// paginate greedily packs units into pages. A unit that does not fit the
// remainder of the current page starts the next one. Wide mode packs
// against a doubled budget since games flow into two columns.
func (p *Page) paginate() [][]renderUnit {
	units := p.buildUnits()
	if len(units) == 0 {
		return [][]renderUnit{nil}
	}
	if !p.interactive() {
		return [][]renderUnit{units}
	}

	budget := p.height - p.reservedRows()
	if budget < 1 {
		budget = 1
	}
	if p.effectiveMode() == ModeWide {
		budget *= 2
	}

	var pages [][]renderUnit
	var page []renderUnit
	used := 0
	for _, u := range units {
		if len(page) > 0 && used+u.height > budget {
			pages = append(pages, page)
			page, used = nil, 0
		}
		page = append(page, u)
		used += u.height
	}
	pages = append(pages, page)
	return pages
}

// RenderFrame composes the complete current screen.
func (p *Page) RenderFrame() Frame {
	f := Frame{Width: p.width, Height: p.height}

	p.renderHeader(&f)

	pages := p.paginate()
	current := p.current
	if current >= len(pages) {
		current = len(pages) - 1
	}
	p.renderContent(&f, pages[current])

	footerY := p.height - 1
	if p.countdown != "" {
		y := footerY
		if p.showFooter {
			y--
		}
		f.add(centerX(p.width, p.countdown), y, p.countdown, Style{FG: ColorCountdown, BG: ColorDefault})
	}
	if p.showFooter {
		p.renderFooter(&f, footerY, len(pages))
	}
	return f
}

func (p *Page) renderHeader(f *Frame) {
	title := fmt.Sprintf(" %s ", p.title)
	f.add(0, 0, title, Style{FG: ColorTitleFg, BG: ColorTitleBg})

	banner := fmt.Sprintf(" SM-LIIGA %d %s ", p.number, FormatDateFI(p.fetchedDate))
	f.add(p.width-runewidth.StringWidth(banner), 0, banner, Style{FG: ColorText, BG: ColorHeaderBg})

	sub := fmt.Sprintf(" %s ", p.subheader)
	f.add(0, 1, sub, Style{FG: ColorText, BG: ColorHeaderBg})

	if p.interactive() {
		if total := p.TotalPages(); total > 1 {
			pager := fmt.Sprintf("%d/%d", p.current+1, total)
			f.add(p.width-runewidth.StringWidth(pager)-1, 1, pager, TextStyle)
		}
	}
}

func (p *Page) renderContent(f *Frame, units []renderUnit) {
	y := headerRows
	mode := p.effectiveMode()

	if p.mode == ModeWide && mode == ModeNormal {
		f.add(ContentMargin, y, "Pääte on liian kapea kahdelle palstalle", Style{FG: ColorGoalType, BG: ColorDefault})
		y += 2
	}

	if mode == ModeWide {
		p.renderWidePage(f, y, units)
		return
	}

	for _, u := range units {
		switch {
		case u.isGame && mode == ModeCompact:
			y = renderCompactGames(f, y, u.games, CompactGamesPerLine(p.width))
		case u.isGame:
			y = renderNormalGame(f, 0, y, u.games[0], p.layout, !p.disableLinks, p.interactive())
		case u.row.kind == rowFutureHeader:
			text := u.row.text
			if mode == ModeCompact {
				text = compactHeader(text)
			}
			f.add(ContentMargin, y, text, Style{FG: ColorCountdown, BG: ColorDefault})
			y++
		default:
			f.add(ContentMargin, y, u.row.text, TextStyle)
			y++
		}
	}
}

func (p *Page) renderWidePage(f *Frame, y int, units []renderUnit) {
	var games []api.Game
	for _, u := range units {
		if u.isGame {
			games = append(games, u.games...)
			continue
		}
		style := TextStyle
		if u.row.kind == rowFutureHeader {
			style = Style{FG: ColorCountdown, BG: ColorDefault}
		}
		f.add(ContentMargin, y, u.row.text, style)
		y++
	}
	if len(games) > 0 {
		renderWideGames(f, y, games, !p.disableLinks)
	}
}

func (p *Page) renderFooter(f *Frame, y, totalPages int) {
	text := "q=Lopeta"
	if p.interactive() && totalPages > 1 {
		text += "  ←→=Sivut"
	}
	if p.autoRefreshDisabled {
		text += "  (Ei päivity)"
	}
	if p.loading != nil {
		text += fmt.Sprintf("  %s %s", p.loading.Glyph(), p.loading.Message)
	} else if p.autoRefresh != nil {
		text += fmt.Sprintf("  %s %s", p.autoRefresh.Glyph(), p.autoRefresh.Message)
	}
	if p.errorWarning {
		text += " ⚠"
	}
	f.add(centerX(p.width, text), y, text, TextStyle)
}

// RenderBuffered writes the whole frame as one ANSI string in a single
// Write call; used by the non-interactive printer.
func (p *Page) RenderBuffered(w io.Writer) error {
	_, err := io.WriteString(w, RenderANSI(p.RenderFrame()))
	return err
}

func centerX(width int, text string) int {
	x := (width - runewidth.StringWidth(text)) / 2
	if x < 0 {
		return 0
	}
	return x
}

// FormatDateFI converts YYYY-MM-DD into the teletext DD.MM.YYYY form.
func FormatDateFI(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02.01.2006")
}
