package tui

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"

	"github.com/rodgzilla/pineapple-ofc-ai/internal/app"
	"github.com/rodgzilla/pineapple-ofc-ai/internal/domain"
)

// UI is the terminal front end: a row-picker interaction where the user
// selects a hand card by number and presses a row key to place it. It is a
// thin adapter over the session: every keystroke reduces to one Turn
// Controller call.
type UI struct {
	sess   *app.Session
	logger *slog.Logger

	// selected is the hand index the next row key applies to, -1 if none.
	selected int
	status   string
}

func New(sess *app.Session, logger *slog.Logger) *UI {
	return &UI{
		sess:     sess,
		logger:   logger,
		selected: -1,
	}
}

// Run owns the terminal until the user quits.
func (u *UI) Run(ctx context.Context) error {
	if err := termbox.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer termbox.Close()

	if err := u.sess.Start(ctx); err != nil {
		u.logger.Warn("initial deal failed", "error", err)
	}

	for {
		u.draw()
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventKey:
			if ev.Key == termbox.KeyEsc || ev.Ch == 'q' {
				return nil
			}
			u.handleKey(ctx, ev)
		case termbox.EventError:
			return ev.Err
		}
	}
}

func (u *UI) handleKey(ctx context.Context, ev termbox.Event) {
	u.status = ""
	snap := u.sess.Snapshot()

	switch {
	case ev.Ch >= '1' && ev.Ch <= '5':
		idx := int(ev.Ch - '1')
		if idx < len(snap.Hand) {
			u.selected = idx
		}
	case ev.Ch == 'f':
		u.place(domain.RowFront)
	case ev.Ch == 'm':
		u.place(domain.RowMiddle)
	case ev.Ch == 'b':
		u.place(domain.RowBack)
	case ev.Ch == 'd':
		u.place(domain.RowDiscard)
	case ev.Ch == 'u':
		if u.selected >= 0 {
			if err := u.sess.ReturnToPool(u.selected); err != nil {
				u.status = err.Error()
			}
		}
	case ev.Key == termbox.KeyEnter:
		if err := u.sess.Confirm(ctx); err != nil {
			u.status = err.Error()
		}
		u.selected = -1
	case ev.Ch == 'n':
		if err := u.sess.Start(ctx); err != nil {
			u.status = err.Error()
		}
		u.selected = -1
	}
}

func (u *UI) place(row domain.Row) {
	if u.selected < 0 {
		u.status = "select a card first (1-5)"
		return
	}
	if err := u.sess.Place(u.selected, row); err != nil {
		u.status = err.Error()
		return
	}
	// Jump to the next unplaced card so runs of placements stay fluid.
	u.selected = -1
	for _, idx := range u.sess.Snapshot().Unassigned {
		u.selected = idx
		break
	}
}

func (u *UI) draw() {
	_ = termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
	snap := u.sess.Snapshot()

	y := 0
	drawText(0, y, termbox.ColorYellow|termbox.AttrBold, "Pineapple OFC")
	y += 2

	y = u.drawBoard(y, "opponent", snap.AIBoard, nil, snap.Hand)
	y++
	y = u.drawBoard(y, "you", snap.PlayerBoard, snap.Rows, snap.Hand)
	y++

	switch snap.Phase {
	case app.PhasePlacingOpening, app.PhasePlacingDraw:
		y = u.drawHand(y, snap)
	case app.PhaseSubmitting, app.PhaseAwaitingHand:
		drawText(0, y, termbox.ColorDefault, "waiting for server...")
		y++
	case app.PhaseGameOver:
		y = drawResult(y, snap)
	case app.PhaseError:
		drawText(0, y, termbox.ColorRed, "error: "+snap.Hint)
		y++
		drawText(0, y, termbox.ColorDefault, "press n to start over")
		y++
	}

	if u.status != "" {
		y++
		drawText(0, y, termbox.ColorRed, u.status)
	}

	_, h := termbox.Size()
	drawText(0, h-1, termbox.ColorCyan, "1-5 select  f/m/b front/middle/back  d discard  u undo  enter submit  n new game  q quit")

	_ = termbox.Flush()
}

// drawBoard renders committed cards plus, for the player, the pending
// placements from the ledger marked with an asterisk.
func (u *UI) drawBoard(y int, label string, board domain.Board, pending map[domain.Row][]int, hand []domain.Card) int {
	drawText(0, y, termbox.ColorWhite|termbox.AttrBold, label)
	y++
	for _, row := range []domain.Row{domain.RowFront, domain.RowMiddle, domain.RowBack} {
		var parts []string
		for _, c := range board.Row(row) {
			parts = append(parts, c.String())
		}
		for _, idx := range pending[row] {
			if idx < len(hand) {
				parts = append(parts, hand[idx].String()+"*")
			}
		}
		line := fmt.Sprintf("  %-7s %s", row, strings.Join(parts, " "))
		drawText(0, y, termbox.ColorDefault, line)
		y++
	}
	if indices := pending[domain.RowDiscard]; len(indices) > 0 {
		var parts []string
		for _, idx := range indices {
			if idx < len(hand) {
				parts = append(parts, hand[idx].String()+"*")
			}
		}
		drawText(0, y, termbox.ColorDefault, fmt.Sprintf("  %-7s %s", "discard", strings.Join(parts, " ")))
		y++
	}
	return y
}

func (u *UI) drawHand(y int, snap app.Snapshot) int {
	drawText(0, y, termbox.ColorWhite|termbox.AttrBold, "hand")
	y++

	x := 2
	for i, c := range snap.Hand {
		fg := termbox.ColorDefault
		if _, placed := rowOf(snap.Rows, i); placed {
			fg = termbox.ColorBlue
		}
		if i == u.selected {
			fg = termbox.ColorGreen | termbox.AttrBold
		}
		cell := fmt.Sprintf("[%d]%s", i+1, c.String())
		drawText(x, y, fg, cell)
		x += runewidth.StringWidth(cell) + 2
	}
	y += 2

	if snap.Hint != "" {
		drawText(0, y, termbox.ColorMagenta, snap.Hint)
		y++
	}
	if snap.Submittable {
		drawText(0, y, termbox.ColorGreen, "ready - press enter to submit")
		y++
	}
	return y
}

func drawResult(y int, snap app.Snapshot) int {
	drawText(0, y, termbox.ColorYellow|termbox.AttrBold, "game over")
	y++
	if snap.Result == nil {
		return y
	}
	res := snap.Result
	drawText(0, y, termbox.ColorDefault,
		fmt.Sprintf("score: you %d / opponent %d", res.Scores.Player, res.Scores.AI))
	y++
	if res.IsFoul.Player {
		drawText(0, y, termbox.ColorRed, "you fouled")
		y++
	}
	if res.IsFoul.AI {
		drawText(0, y, termbox.ColorGreen, "opponent fouled")
		y++
	}

	rows := make([]string, 0, len(res.HandResults))
	for row := range res.HandResults {
		rows = append(rows, row)
	}
	sort.Strings(rows)
	for _, row := range rows {
		r := res.HandResults[row]
		line := fmt.Sprintf("  %-7s you: %-16s opp: %-16s winner: %s", row, r.Player, r.AI, r.Winner)
		drawText(0, y, termbox.ColorDefault, line)
		y++
	}
	y++
	drawText(0, y, termbox.ColorDefault, "press n for a rematch")
	return y + 1
}

func rowOf(rows map[domain.Row][]int, idx int) (domain.Row, bool) {
	for row, indices := range rows {
		for _, i := range indices {
			if i == idx {
				return row, true
			}
		}
	}
	return "", false
}

func drawText(x, y int, fg termbox.Attribute, s string) {
	for _, r := range s {
		termbox.SetCell(x, y, r, fg, termbox.ColorDefault)
		x += runewidth.RuneWidth(r)
	}
}
