package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/quanta-lab/polarisim/internal/analysis"
	"github.com/quanta-lab/polarisim/internal/config"
	"github.com/quanta-lab/polarisim/internal/export"
	"github.com/quanta-lab/polarisim/internal/physics"
	"github.com/quanta-lab/polarisim/internal/spectrum"
	"github.com/quanta-lab/polarisim/internal/storage"
	"github.com/quanta-lab/polarisim/internal/viz"
)

// cavity energy moved per keypress
var (
	fineStep   = physics.MeV(0.5)
	coarseStep = physics.MeV(5)
)

type state int

const (
	stateMenu state = iota
	stateExplore
)

type model struct {
	state   state
	cursor  int
	presets []string

	cfg       *config.Config
	sys       *physics.System
	baseE     float64 // configured cavity energy, for reset
	baseScale float64 // configured coupling scale, for reset
	res       *spectrum.Result
	sweepErr  error

	kCursor   int
	showBare  bool
	showTable bool
	status    string

	dataDir string
	width   int
	height  int
}

// NewExplorer builds the interactive explorer starting from cfg; a nil
// cfg opens the preset menu first.
func NewExplorer(cfg *config.Config, dataDir string) *model {
	m := &model{
		state:    stateMenu,
		presets:  config.ListPresets(),
		showBare: true,
		dataDir:  dataDir,
		width:    100,
		height:   30,
	}
	if cfg != nil {
		m.load(cfg)
	}
	return m
}

func (m *model) load(cfg *config.Config) {
	m.cfg = cfg
	m.sys = cfg.System()
	m.baseE = cfg.Cavity.Energy
	m.baseScale = m.sys.CouplingScale
	m.kCursor = cfg.Sweep.Points / 2
	m.state = stateExplore
	m.resweep()
}

// resweep re-diagonalizes the whole grid. An 8x8 Hamiltonian over a few
// hundred points is well under a frame, so this runs inline in Update.
func (m *model) resweep() {
	res, err := spectrum.Sweep(context.Background(), m.sys, m.cfg.SweepConfig())
	m.res, m.sweepErr = res, err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == stateMenu {
		return m.menuKey(msg)
	}
	return m.exploreKey(msg)
}

func (m model) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.load(config.GetPreset(m.presets[m.cursor]))
		return m, tea.ClearScreen
	}
	return m, nil
}

func (m model) exploreKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.res == nil {
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "escape":
			m.state = stateMenu
		}
		return m, nil
	}
	points := len(m.res.Ks)
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "escape":
		m.state = stateMenu
		m.status = ""
		return m, tea.ClearScreen
	case "left", "h":
		m.kCursor = clamp(m.kCursor-1, 0, points-1)
	case "right", "l":
		m.kCursor = clamp(m.kCursor+1, 0, points-1)
	case "shift+left", "H":
		m.kCursor = clamp(m.kCursor-10, 0, points-1)
	case "shift+right", "L":
		m.kCursor = clamp(m.kCursor+10, 0, points-1)
	case "up", "k":
		m.adjustCavity(fineStep)
	case "down", "j":
		m.adjustCavity(-fineStep)
	case "shift+up", "K":
		m.adjustCavity(coarseStep)
	case "shift+down", "J":
		m.adjustCavity(-coarseStep)
	case "[":
		m.adjustCoupling(-0.05)
	case "]":
		m.adjustCoupling(0.05)
	case "r":
		m.sys.SetParam("cavity", m.baseE)
		m.sys.SetParam("coupling", m.baseScale)
		m.status = "reset to configured values"
		m.resweep()
	case "x":
		m.showBare = !m.showBare
	case "t":
		m.showTable = !m.showTable
	case "s":
		m.saveFile("svg")
	case "p":
		m.saveFile("png")
	case "w":
		m.saveRun()
	}
	return m, nil
}

func (m *model) adjustCavity(delta float64) {
	m.sys.SetParam("cavity", m.sys.Cavity.Energy+delta)
	m.status = ""
	m.resweep()
}

func (m *model) adjustCoupling(delta float64) {
	scale := m.sys.CouplingScale + delta
	if scale < 0 {
		scale = 0
	}
	m.sys.SetParam("coupling", scale)
	m.status = ""
	m.resweep()
}

func (m *model) saveFile(kind string) {
	if m.res == nil {
		return
	}
	name := fmt.Sprintf("dispersion_%d.%s", time.Now().Unix(), kind)
	var err error
	switch kind {
	case "svg":
		// snapshot of the on-screen canvas, cursor and all
		pw, ph := m.plotSize()
		c := viz.DispersionCanvas(m.res, pw, ph, m.showBare, m.kCursor)
		err = os.WriteFile(name, []byte(export.CanvasSVG(c, 4)), 0644)
	case "png":
		err = export.SavePNG(m.res, m.cfg.Material, name)
	}
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.status = "saved " + name
}

func (m *model) saveRun() {
	if m.res == nil {
		return
	}
	st := storage.New(m.dataDir)
	if err := st.Init(); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	meta := storage.RunMetadata{
		Material:     m.cfg.Material,
		CavityEnergy: m.sys.Cavity.Energy,
		Coupling:     m.sys.CouplingScale,
	}
	if gap, ok := analysis.RabiSplitting(m.res); ok {
		meta.RabiSplit = gap.Split
	}
	id, err := st.Save(meta, m.res)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return
	}
	m.status = "saved run " + id
}

func (m model) View() string {
	if m.state == stateMenu {
		return m.viewMenu()
	}
	return m.viewExplore()
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(viz.Dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + viz.Cyan.Render("p o l a r i s i m") + "\n")
	b.WriteString(viz.Dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		p := config.GetPreset(name)
		desc := fmt.Sprintf("%d excitons, cavity %.4f eV", len(p.Excitons), p.Cavity.Energy)
		if i == m.cursor {
			b.WriteString("      " + viz.Cyan.Render("▸ ") + viz.White.Render(fmt.Sprintf("%-12s", name)) + viz.Dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + viz.Dim.Render(fmt.Sprintf("%-12s", name)) + viz.Dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(viz.Dim.Render("      ↑↓ select   enter open   q quit") + "\n")
	return b.String()
}

func (m model) viewExplore() string {
	if m.sweepErr != nil {
		return "\n   " + viz.Yellow.Render(fmt.Sprintf("sweep failed: %v", m.sweepErr)) + "\n"
	}

	var b strings.Builder

	detuning := m.sys.Cavity.Energy - m.sys.Excitons[0].Energy
	b.WriteString(fmt.Sprintf("\n   %s %s  %s  %s\n",
		viz.Green.Render("●"),
		viz.Cyan.Render(m.cfg.Material),
		viz.White.Render(fmt.Sprintf("Ec=%.4f eV", m.sys.Cavity.Energy)),
		viz.Dim.Render(fmt.Sprintf("δ=%+.1f meV  g×%.2f", detuning*1e3, m.sys.CouplingScale)),
	))

	if gap, ok := analysis.RabiSplitting(m.res); ok {
		n := m.res.NumBranches()
		b.WriteString("   " + viz.Dim.Render(fmt.Sprintf("Ω=%.2f meV (%s/%s at k=%.2f)",
			gap.Split*1e3, viz.BranchLabel(gap.Lower, n), viz.BranchLabel(gap.Upper, n), gap.K)) + "\n")
	}
	b.WriteString("\n")

	pw, ph := m.plotSize()
	plot := viz.Dispersion(m.res, pw, ph, m.showBare, m.kCursor)
	for _, line := range strings.Split(strings.TrimRight(plot, "\n"), "\n") {
		b.WriteString("   " + line + "\n")
	}

	if crossings := analysis.BareCrossings(m.res); len(crossings) > 0 {
		parts := make([]string, 0, len(crossings))
		for _, c := range crossings {
			parts = append(parts, fmt.Sprintf("%s@%.2f", c.Exciton, c.K))
		}
		b.WriteString("\n   " + viz.Dim.Render("crossings ") + viz.Yellow.Render(strings.Join(parts, "  ")) + "\n")
	} else {
		b.WriteString("\n   " + viz.Dimmer.Render("no bare-mode crossing in window") + "\n")
	}

	if m.showTable {
		b.WriteString("\n" + viz.Table(m.res, m.kCursor))
	}

	if m.status != "" {
		b.WriteString("\n   " + viz.Magenta.Render(m.status) + "\n")
	}
	b.WriteString("\n" + viz.Dim.Render("   ↑↓ cavity (shift coarse)  ←→ k cursor  [] coupling  x bare  t table  s svg  p png  w save  r reset  q quit") + "\n")
	return b.String()
}

func (m model) plotSize() (int, int) {
	return clamp(m.width-14, 40, 120), clamp(m.height-14, 10, 40)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run starts the explorer.
func Run(cfg *config.Config, dataDir string) error {
	p := tea.NewProgram(NewExplorer(cfg, dataDir), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
