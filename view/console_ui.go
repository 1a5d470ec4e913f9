package view

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/game"
	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	viewHeader        = "header"
	viewConfiguration = "configuration"
	viewStatus        = "status"
	viewField         = "field"
	viewHelp          = "help"

	leftColumnWidth = 30
	minWindowHeight = 20
	minInterval     = 10 * time.Millisecond
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// ConsoleUI is an interactive terminal front end for a universe.
// The universe is only read or modified from gocui's event goroutine.
type ConsoleUI struct {
	universe *model.Universe
	config   utils.Config
	logger   *slog.Logger
	au       aurora.Aurora

	g      *gocui.Gui
	k      []keyBinding
	stopCh chan struct{}

	liveFiller string
	deadFiller string
}

// NewConsoleUI creates the terminal UI. It takes over the terminal until Start returns.
func NewConsoleUI(u *model.Universe, config utils.Config, logger *slog.Logger) (*ConsoleUI, error) {
	au := aurora.NewAurora(config.Color)
	t := &ConsoleUI{
		universe:   u,
		config:     config,
		logger:     logger,
		au:         au,
		liveFiller: au.Green(string(model.AliveGlyph)).String(),
		deadFiller: string(model.DeadGlyph),
	}

	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to open terminal")
	}
	t.g = g
	t.g.Mouse = true

	t.k = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", t.cmdQuit, ""},
		{'n', "N", "Next step", t.cmdStep, ""},
		{'r', "R", "Run", t.cmdRun, ""},
		{'s', "S", "Stop", t.cmdStop, ""},
		{'c', "C", "Reseed", t.cmdReseed, ""},
		{gocui.MouseLeft, "MOUSE", "Toggle cell", t.cmdMouseClick, viewField},
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(); err != nil {
		t.g.Close()
		return nil, err
	}
	return t, nil
}

func (t *ConsoleUI) initKeyBindings() error {
	for _, kb := range t.k {
		h := kb.handler
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, v *gocui.View) error { return h(v) }); err != nil {
			return errors.Wrapf(err, "[initKeyBindings] failed to bind %s", kb.name)
		}
	}
	return nil
}

// Start runs the UI event loop until the user quits
func (t *ConsoleUI) Start() error {
	defer t.g.Close()
	defer t.stop()

	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] ui main loop failed")
	}
	return nil
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		_ = g.DeleteView(viewConfiguration)
		_ = g.DeleteView(viewStatus)
		_ = g.DeleteView(viewField)
		return nil
	}
	if err := t.headerLayout(g, 2, "Game of Life on a torus"); err != nil {
		return err
	}

	middle := 3 + (maxY-5-3)/2
	if v, err := g.SetView(viewConfiguration, 0, 3, leftColumnWidth, middle); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Configuration"
	}
	if v, err := g.SetView(viewStatus, 0, middle+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Status"
	}
	if v, err := g.SetView(viewField, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Universe"
	}
	if v, err := g.SetView(viewHelp, -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		fmt.Fprintln(v, helpText(t.k, t.au))
	}

	return t.refresh(g)
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(viewHeader, -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := 0
	if maxX > len(text) {
		pad = (maxX - len(text)) / 2
	}
	fmt.Fprint(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}

// refresh redraws every panel from the universe
func (t *ConsoleUI) refresh(g *gocui.Gui) error {
	if v, err := g.View(viewConfiguration); err == nil {
		v.Clear()
		for _, line := range configurationLines(t.config, t.au) {
			fmt.Fprintln(v, line)
		}
	}
	if v, err := g.View(viewStatus); err == nil {
		v.Clear()
		for _, line := range statusLines(t.universe, t.stopCh != nil, t.au) {
			fmt.Fprintln(v, line)
		}
	}
	if v, err := g.View(viewField); err == nil {
		v.Clear()
		maxW, maxH := v.Size()
		fmt.Fprint(v, fieldText(t.universe.Lines(), maxW, maxH, t.liveFiller, t.deadFiller, t.au))
	}
	return nil
}

// step advances one generation. It runs on the gui goroutine.
func (t *ConsoleUI) step(g *gocui.Gui) error {
	t.universe.Tick()
	if t.config.MaxGenerations > 0 && t.universe.Generation() >= t.config.MaxGenerations {
		t.logger.Info("reached maximum generations limit", "max_generations", t.config.MaxGenerations)
		t.stop()
	}
	if t.universe.LiveCells() == 0 {
		t.stop()
	}
	return t.refresh(g)
}

func (t *ConsoleUI) ticker(stop <-chan struct{}, interval time.Duration) {
	tk := time.NewTicker(interval)
	defer tk.Stop()
	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			t.g.Update(func(g *gocui.Gui) error {
				select {
				case <-stop:
					// stopped while this update was queued
					return nil
				default:
					return t.step(g)
				}
			})
		}
	}
}

func (t *ConsoleUI) stop() {
	if t.stopCh != nil {
		close(t.stopCh)
		t.stopCh = nil
	}
}

func (t *ConsoleUI) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (t *ConsoleUI) cmdStep(_ *gocui.View) error {
	return t.step(t.g)
}

func (t *ConsoleUI) cmdRun(_ *gocui.View) error {
	if t.stopCh != nil {
		return nil
	}
	t.stopCh = make(chan struct{})
	go t.ticker(t.stopCh, max(t.config.FrameRate, minInterval))
	return t.refresh(t.g)
}

func (t *ConsoleUI) cmdStop(_ *gocui.View) error {
	t.stop()
	return t.refresh(t.g)
}

func (t *ConsoleUI) cmdReseed(_ *gocui.View) error {
	t.stop()
	game.Seed(t.universe, t.config)
	return t.refresh(t.g)
}

func (t *ConsoleUI) cmdMouseClick(v *gocui.View) error {
	cx, cy := v.Cursor()
	if cx < 0 || cy < 0 {
		return nil
	}
	row, col := uint32(cy), uint32(cx)
	if t.universe.Get(row, col) == model.Alive {
		t.universe.Set(row, col, model.Dead)
	} else {
		t.universe.Set(row, col, model.Alive)
	}
	return t.refresh(t.g)
}

func renderProp(au aurora.Aurora, name string, valueFormat string, values ...interface{}) string {
	return fmt.Sprintf(" "+au.Green(name).String()+": "+valueFormat, values...)
}

func configurationLines(c utils.Config, au aurora.Aurora) []string {
	return []string{
		renderProp(au, "Dimension", "%d x %d", c.Width, c.Height),
		renderProp(au, "Interval", "%v", c.FrameRate),
		renderProp(au, "Max generations", "%d", c.MaxGenerations),
		renderProp(au, "Seed", "%s", c.Seed),
	}
}

func statusLines(u *model.Universe, running bool, au aurora.Aurora) []string {
	mode := au.Blue("waiting").String()
	if running {
		mode = au.Cyan("running").String()
	}
	live := u.LiveCells()
	if live == 0 {
		mode = au.Red("extinct").String()
	}
	report := u.LastTick()
	return []string{
		renderProp(au, "Generation", "%d", u.Generation()),
		renderProp(au, "Live cells", "%d", live),
		renderProp(au, "Births", "%d", report.Births),
		renderProp(au, "Deaths", "%d", report.Deaths()),
		renderProp(au, "Mode", "%s", mode),
	}
}

// fieldText fits the rendered rows into a maxW x maxH view, replacing the last row with a warning when cropped
func fieldText(lines []string, maxW, maxH int, liveFiller, deadFiller string, au aurora.Aurora) string {
	crop := false
	if len(lines) > maxH || (len(lines) > 0 && len([]rune(lines[0])) > maxW) {
		crop = true
	}

	var b bytes.Buffer
	for i, l := range lines {
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == maxH-1 {
			b.WriteString(au.Red("The universe is larger than the viewing area").String())
			break
		}
		for j, g := range []rune(l) {
			if j >= maxW {
				break
			}
			if g == model.AliveGlyph {
				b.WriteString(liveFiller)
			} else {
				b.WriteString(deadFiller)
			}
		}
	}
	return b.String()
}

func helpText(k []keyBinding, au aurora.Aurora) string {
	var b bytes.Buffer
	b.WriteString("KEYBINDINGS: ")
	for i, kb := range k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(au.Green(kb.name).String())
		b.WriteString(": ")
		b.WriteString(kb.descr)
	}
	return b.String()
}
