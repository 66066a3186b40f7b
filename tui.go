package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-gol-engine/engine"
	"github.com/sheikhrachel/go-gol-engine/model"
	"github.com/sheikhrachel/go-gol-engine/rules"
	"github.com/sheikhrachel/go-gol-engine/utils"
)

const (
	// gridTop is the first screen row used by the grid, below status and help
	gridTop  = 2
	helpLine = "space start/stop  r reset  n random  1/2/3 size  z/x/c speed  arrows+t toggle  g/b/k glider/blinker/block  q quit"
)

var (
	alivePalette = []tcell.Color{
		tcell.NewRGBColor(0x03, 0xc6, 0xfc),
		tcell.NewRGBColor(0x8f, 0x00, 0xdb),
		tcell.ColorBlue,
	}
	deadStyle   = tcell.StyleDefault.Background(tcell.ColorWhite)
	cursorStyle = tcell.StyleDefault.Background(tcell.ColorGray)
	textStyle   = tcell.StyleDefault
	errStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// tui forwards terminal input to the engine and draws its snapshots
type tui struct {
	screen    tcell.Screen
	engine    *engine.Engine
	stats     *utils.Stats
	cursor    [2]int
	mouseDown bool
	lastErr   error
}

// runTUI drives the interactive terminal front-end until the user quits
func runTUI(config utils.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "[runTUI] failed to create screen")
	}
	if err = screen.Init(); err != nil {
		return errors.Wrap(err, "[runTUI] failed to initialize screen")
	}
	defer screen.Fini()
	screen.EnableMouse()

	// tick goroutine only wakes the event loop; drawing stays on this goroutine
	e, err := engine.NewFromConfig(config, engine.WithOnChange(func(engine.Snapshot) {
		_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
	}))
	if err != nil {
		return errors.Wrap(err, "[runTUI] failed to create engine")
	}
	defer e.Close()

	ui := &tui{screen: screen, engine: e, stats: utils.NewStats()}
	ui.draw(e.Snapshot())

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ui.handleKey(ev.Key(), ev.Rune()) {
				return nil
			}
		case *tcell.EventMouse:
			pressed := ev.Buttons()&tcell.Button1 != 0
			if pressed && !ui.mouseDown {
				ui.click(ev.Position())
			}
			ui.mouseDown = pressed
		}
		ui.draw(e.Snapshot())
	}
}

// handleKey applies one key press and reports whether the user asked to quit
func (ui *tui) handleKey(key tcell.Key, r rune) bool {
	ui.lastErr = nil
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		ui.moveCursor(0, -1)
	case tcell.KeyDown:
		ui.moveCursor(0, 1)
	case tcell.KeyLeft:
		ui.moveCursor(-1, 0)
	case tcell.KeyRight:
		ui.moveCursor(1, 0)
	case tcell.KeyEnter:
		ui.lastErr = ui.engine.ToggleCell(ui.cursor[0], ui.cursor[1])
	case tcell.KeyRune:
		return ui.handleRune(r)
	}
	return false
}

func (ui *tui) handleRune(r rune) bool {
	switch r {
	case 'q':
		return true
	case ' ':
		ui.engine.ToggleRunning()
	case 'r':
		ui.engine.Reset()
	case 'n':
		ui.engine.Randomize()
	case '1', '2', '3':
		ui.lastErr = ui.engine.ApplyPreset(utils.SizePresets[r-'1'])
		ui.moveCursor(0, 0)
	case 'z', 'x', 'c':
		speeds := map[rune]time.Duration{
			'z': utils.SpeedPresets[0],
			'x': utils.SpeedPresets[1],
			'c': utils.SpeedPresets[2],
		}
		ui.lastErr = ui.engine.SetTickInterval(speeds[r])
	case 't':
		ui.lastErr = ui.engine.ToggleCell(ui.cursor[0], ui.cursor[1])
	case 'g':
		ui.lastErr = ui.engine.Stamp(model.Glider, ui.cursor[0], ui.cursor[1])
	case 'b':
		ui.lastErr = ui.engine.Stamp(model.Blinker, ui.cursor[0], ui.cursor[1])
	case 'k':
		ui.lastErr = ui.engine.Stamp(model.Block, ui.cursor[0], ui.cursor[1])
	}
	return false
}

// moveCursor shifts the cursor and keeps it on the current grid
func (ui *tui) moveCursor(dc, dr int) {
	columns, rows := ui.engine.Columns(), ui.engine.Rows()
	ui.cursor[0] = min(max(ui.cursor[0]+dc, 0), columns-1)
	ui.cursor[1] = min(max(ui.cursor[1]+dr, 0), rows-1)
}

// click toggles the cell under screen position (x, y); clicks off the grid are ignored
func (ui *tui) click(x, y int) {
	column, row := x/2, y-gridTop
	if row < 0 || column >= ui.engine.Columns() || row >= ui.engine.Rows() {
		return
	}
	ui.cursor = [2]int{column, row}
	ui.lastErr = ui.engine.ToggleCell(column, row)
}

func (ui *tui) draw(s engine.Snapshot) {
	ui.stats.Update(s.Generation, s.Population, time.Now())

	ui.screen.Clear()
	if ui.lastErr != nil {
		drawText(ui.screen, 0, 0, errStyle, ui.lastErr.Error())
	} else {
		drawText(ui.screen, 0, 0, textStyle, formatStatus(s, ui.stats))
	}
	drawText(ui.screen, 0, 1, textStyle, helpLine)

	for row := range s.Rows {
		for column := range s.Columns {
			style := deadStyle
			if s.Grid.Get(column, row) == rules.Alive {
				style = tcell.StyleDefault.Background(alivePalette[(column+row)%len(alivePalette)])
			}
			if ui.cursor == [2]int{column, row} {
				style = style.Reverse(true)
				if s.Grid.Get(column, row) == rules.Dead {
					style = cursorStyle
				}
			}
			ui.screen.SetContent(column*2, gridTop+row, ' ', nil, style)
			ui.screen.SetContent(column*2+1, gridTop+row, ' ', nil, style)
		}
	}
	ui.screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
