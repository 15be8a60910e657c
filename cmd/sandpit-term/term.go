package main

import (
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/sandpit/canvas/raster"
	"github.com/milk9111/sandpit/config"
	"github.com/milk9111/sandpit/sandbox"
	"github.com/milk9111/sandpit/timer"
)

const (
	// defaultScale fits roughly the same world span into a terminal as
	// the window shows at its native resolution.
	defaultScale = 0.2
	tickInterval = time.Second / 60
)

var statusStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

type Terminal struct {
	screen  tcell.Screen
	session *sandbox.Session
	canvas  *raster.Canvas
	watcher *config.Watcher
	sched   *timer.Scheduler
	keys    *heldKeys

	showStatus  bool
	pointerDown bool
	message     string
}

func NewTerminal(cfg *config.Config, opts sandbox.Options, watcher *config.Watcher, scale float64) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()

	t, err := newTerminal(screen, cfg, opts, watcher, scale)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

func newTerminal(screen tcell.Screen, cfg *config.Config, opts sandbox.Options, watcher *config.Watcher, scale float64) (*Terminal, error) {
	if scale <= 0 {
		scale = defaultScale
	}
	opts.Adjust = func(c *config.Config) { scaleCamera(&c.Camera, scale) }
	if opts.Clock == nil {
		opts.Clock = timer.SystemClock{}
	}

	t := &Terminal{
		screen:     screen,
		watcher:    watcher,
		sched:      timer.NewScheduler(opts.Clock),
		showStatus: true,
	}
	w, h := t.pixelSize()
	opts.ViewportW, opts.ViewportH = float64(w), float64(h)

	session, err := sandbox.NewSession(cfg, opts)
	if err != nil {
		return nil, err
	}
	t.session = session
	t.canvas = raster.New(w, h)
	t.keys = newHeldKeys(t.sched, session.KeyDown, session.KeyUp)
	return t, nil
}

// scaleCamera shrinks every zoom setting by s.
func scaleCamera(c *config.CameraConfig, s float64) {
	c.InitialZoom *= s
	c.MinZoom *= s
	c.MaxZoom *= s
	c.ZoomSpeed *= s
	c.WheelZoomSpeed *= s
}

// pixelSize is the canvas size: one pixel per column, two per row, minus
// the status row.
func (t *Terminal) pixelSize() (int, int) {
	cols, rows := t.screen.Size()
	if t.showStatus {
		rows--
	}
	return max(cols, 1), max(rows, 1) * 2
}

func (t *Terminal) resize() {
	w, h := t.pixelSize()
	t.canvas.Resize(w, h)
	t.session.Resize(float64(w), float64(h))
}

// handleEvent reports false when the user asked to quit.
func (t *Terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if a, ok := actionForKey(ev); ok {
			t.keys.Press(a)
			return true
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case ' ':
			t.session.TriggerReset()
		case 'h', 'H':
			t.showStatus = !t.showStatus
			t.resize()
		case 'c', 'C':
			t.message = "seed " + formatSeed(t.session.Seed())
			log.Printf("%s", t.message)
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		px, py := float64(x), float64(y*2+1)
		buttons := ev.Buttons()
		switch {
		case buttons&tcell.Button1 != 0 && !t.pointerDown:
			t.pointerDown = true
			t.session.PointerDown(px, py)
		case buttons&tcell.Button1 != 0:
			t.session.PointerMove(px, py)
		case t.pointerDown:
			t.pointerDown = false
			t.session.PointerUp()
		default:
			t.session.PointerMove(px, py)
		}
		if buttons&tcell.WheelUp != 0 {
			t.session.Wheel(1)
		}
		if buttons&tcell.WheelDown != 0 {
			t.session.Wheel(-1)
		}

	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
	return true
}

func (t *Terminal) tick() {
	t.session.DrainConfig(t.watcher)
	t.sched.Poll()
	t.session.Tick()
}

func (t *Terminal) draw() {
	t.canvas.Begin()
	t.session.Draw(t.canvas)

	_, rows := t.screen.Size()
	imgRows := rows
	if t.showStatus {
		imgRows--
	}
	blit(t.screen, t.canvas.Image(), imgRows)
	if t.showStatus && rows > 0 {
		status := t.session.Stats().String()
		if t.message != "" {
			status += "  " + t.message
		}
		drawText(t.screen, rows-1, status, statusStyle)
	}
	t.screen.Show()
}

// Run ticks at 60 Hz and handles terminal events until Esc or Ctrl-C.
func (t *Terminal) Run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	quit := make(chan struct{})
	defer close(quit)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if !t.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			t.tick()
			t.draw()
		}
	}
}

func (t *Terminal) Close() {
	if t.watcher != nil {
		if err := t.watcher.Close(); err != nil {
			log.Printf("config: close watcher: %v", err)
		}
	}
	t.session.Close()
	t.screen.Fini()
}
