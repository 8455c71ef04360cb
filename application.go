package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/YLivay/hexi/document"
	"github.com/YLivay/hexi/dump"
	"github.com/YLivay/hexi/log"
	"github.com/YLivay/hexi/utils"
)

// Application is the interactive viewer. Only the lines on screen are ever
// formatted, so scrolling cost does not depend on the file size.
type Application struct {
	doc *document.Document

	newScreen func() (tcell.Screen, error)
	screen    tcell.Screen

	// The size of the terminal
	width  int
	height int

	// Index of the line at the top of the screen.
	top int
}

// NewApplication returns a viewer for doc drawing on the real terminal.
func NewApplication(doc *document.Document) *Application {
	return &Application{
		doc:       doc,
		newScreen: tcell.NewScreen,
	}
}

// Run shows the viewer until the user quits or ctx is done. Quitting returns
// nil, an ended ctx returns its cause.
func (a *Application) Run(ctx context.Context) error {
	screen, err := a.newScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}

	quit := func() {
		// Panics must be caught, the screen restored and the panic re-raised,
		// otherwise the terminal is left in raw mode with no trace.
		maybePanic := recover()
		screen.Fini()
		if maybePanic != nil {
			panic(maybePanic)
		}
	}
	defer quit()

	oldRawMode := log.Default().RawMode()
	log.Default().SetRawMode(true)
	defer log.Default().SetRawMode(oldRawMode)

	parent := ctx
	ctx, cancelCtx := context.WithCancel(parent)
	defer cancelCtx()

	a.screen = screen
	a.width, a.height = screen.Size()
	a.draw()

	go a.handleEvents(cancelCtx)

	<-ctx.Done()
	// Quitting from the keyboard only cancels the local context.
	return context.Cause(parent)
}

func (a *Application) handleEvents(cancelCtx context.CancelFunc) {
	for {
		switch ev := a.screen.PollEvent().(type) {
		case nil:
			// The screen was finalized.
			return
		case *tcell.EventResize:
			a.width, a.height = ev.Size()
			a.scroll(0)
			a.screen.Sync()
		case *tcell.EventKey:
			if a.handleKey(ev) {
				cancelCtx()
				return
			}
		}
		a.draw()
	}
}

// handleKey applies a key press and reports whether the viewer should quit.
func (a *Application) handleKey(ev *tcell.EventKey) bool {
	page := max(a.viewHeight(), 1)

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		a.scroll(-1)
	case tcell.KeyDown, tcell.KeyEnter:
		a.scroll(1)
	case tcell.KeyPgUp:
		a.scroll(-page)
	case tcell.KeyPgDn:
		a.scroll(page)
	case tcell.KeyHome:
		a.top = 0
	case tcell.KeyEnd:
		a.top = a.maxTop()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'k':
			a.scroll(-1)
		case 'j':
			a.scroll(1)
		case 'b':
			a.scroll(-page)
		case ' ':
			a.scroll(page)
		case 'g':
			a.top = 0
		case 'G':
			a.top = a.maxTop()
		}
	}
	return false
}

// viewHeight is the number of dump lines that fit above the status bar.
func (a *Application) viewHeight() int {
	return max(a.height-1, 0)
}

func (a *Application) maxTop() int {
	return max(a.doc.LineCount()-a.viewHeight(), 0)
}

// scroll moves the window by n lines, keeping it within the document.
func (a *Application) scroll(n int) {
	a.top = min(max(a.top+n, 0), a.maxTop())
}

func (a *Application) draw() {
	a.screen.Clear()

	for row := 0; row < a.viewHeight(); row++ {
		index := a.top + row
		if index >= a.doc.LineCount() {
			break
		}

		hex, err := a.doc.FormatLine(index)
		if err != nil {
			log.Println("Failed to format line:", err)
			break
		}
		a.drawText(0, row, dump.FormatLine(a.doc.Offset(index), hex), tcell.StyleDefault)
	}

	if a.height > 0 {
		a.drawStatusBar(a.height - 1)
	}

	a.screen.Show()
}

func (a *Application) drawStatusBar(row int) {
	style := tcell.StyleDefault.Reverse(true)
	for x := 0; x < a.width; x++ {
		a.screen.SetContent(x, row, ' ', nil, style)
	}

	current := 0
	if a.doc.LineCount() > 0 {
		current = a.top + 1
	}
	position := fmt.Sprintf(" line %d/%d  %d bytes ", current, a.doc.LineCount(), a.doc.Len())

	nameWidth := a.width - utils.Width(position) - 1
	a.drawText(1, row, utils.Truncate(a.doc.Name(), nameWidth), style)
	a.drawText(max(a.width-utils.Width(position), 0), row, position, style)
}

// drawText draws text from column x, clipped at the right edge. It returns
// the column after the last cell drawn.
func (a *Application) drawText(x, y int, text string, style tcell.Style) int {
	for _, cell := range utils.Cells(text) {
		if x+cell.Width > a.width {
			break
		}
		a.screen.SetContent(x, y, cell.Main, cell.Comb, style)
		x += cell.Width
	}
	return x
}
