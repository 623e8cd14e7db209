// Package tetris adapts the Tetris engine to the arcade platform: it maps
// input frames onto engine moves, runs the gravity timer and draws the well.
package tetris

import (
	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode selects how pieces are dealt.
type Mode string

const (
	ModeClassic Mode = "tetris"     // Randomizer from config, uniform by default
	ModeBag     Mode = "tetris_bag" // Always the 7-bag randomizer
)

// Package-level settings applied on the next Reset. The command line sets
// them before the game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	widthOverride    int
)

// SetConfigPath sets a custom YAML config path ("" searches the defaults).
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets easy, normal, hard or fixed. Unknown names are ignored.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetWidth overrides the board width; 0 keeps the configured width.
func SetWidth(w int) {
	widthOverride = w
}

// Game is a single-player Tetris run.
type Game struct {
	mode   Mode
	preset config.DifficultyPreset // Overrides the package preset when set
	cfg    config.TetrisConfig

	eng        *engine.Engine
	scene      *Scene
	difficulty *config.DifficultyManager

	tick         uint64 // Every Step
	playTicks    int    // Steps that advanced the simulation
	gravityTimer int

	screenW  int
	screenH  int
	paused   bool
	tooSmall bool

	observers []engine.Listener
}

// New creates a classic-mode game.
func New() *Game {
	return &Game{mode: ModeClassic}
}

// NewBag creates a game that deals pieces from a shuffled 7-bag.
func NewBag() *Game {
	return &Game{mode: ModeBag}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game { return New() })
	registry.Register(string(ModeBag), func() registry.Game { return NewBag() })
}

// UseDifficulty selects a preset for this game only, taking effect on the
// next Reset.
func (g *Game) UseDifficulty(name string) error {
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeBag {
		return "Tetris (7-Bag)"
	}
	return "Tetris"
}

// Controls lists the key bindings shown in the help line.
func (g *Game) Controls() []registry.Control {
	return []registry.Control{
		{Key: "←/→", Desc: "move"},
		{Key: "↑/z", Desc: "rotate"},
		{Key: "↓", Desc: "soft drop"},
		{Key: "space", Desc: "drop"},
		{Key: "p", Desc: "pause"},
		{Key: "q", Desc: "quit"},
	}
}

// Reset starts a new run. An unreadable config falls back to the defaults;
// the command line validates custom paths before play starts.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	preset := difficultyPreset
	if g.preset != "" {
		preset = g.preset
	}
	if preset != "" {
		config.ApplyTetrisPreset(&cfg, preset)
	}
	if widthOverride >= engine.MinWidth {
		cfg.Board.Width = widthOverride
	}
	g.start(cfg, rc, g.newPicker(cfg, rc.Seed))
}

func (g *Game) newPicker(cfg config.TetrisConfig, seed int64) engine.Picker {
	randomizer := cfg.Pieces.Randomizer
	if g.mode == ModeBag {
		randomizer = engine.RandomizerBag
	}
	picker, err := engine.NewPicker(randomizer, seed)
	if err != nil {
		return engine.NewUniformPicker(seed)
	}
	return picker
}

// start builds the engine and scene for cfg.
func (g *Game) start(cfg config.TetrisConfig, rc core.RuntimeConfig, picker engine.Picker) {
	eng, err := engine.New(cfg.ToEngineConfig(picker))
	if err != nil {
		cfg = config.DefaultTetrisConfig()
		eng, _ = engine.New(cfg.ToEngineConfig(picker))
	}

	tickRate := rc.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	g.cfg = cfg
	g.eng = eng
	g.scene = NewScene(tickRate, rc.Seed)
	g.scene.Attach(eng)
	for _, l := range g.observers {
		eng.Subscribe(l)
	}
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.tick = 0
	g.playTicks = 0
	g.gravityTimer = 0
	g.paused = false
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.checkScreenSize()

	g.eng.Start()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if g.eng.GameOver() {
		g.scene.Update()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.playTicks++
	g.scene.Update()

	// The engine holds still while cleared rows flash.
	if g.scene.Busy() {
		return core.StepResult{State: g.State()}
	}

	switch {
	case in.Has(core.ActionLeft):
		g.eng.TryMove(-1, 0)
	case in.Has(core.ActionRight):
		g.eng.TryMove(1, 0)
	}
	switch {
	case in.Has(core.ActionUp):
		g.eng.TryRotate()
	case in.Has(core.ActionRotateCCW):
		g.eng.TryRotateCCW()
	}

	if in.Has(core.ActionDrop) {
		g.eng.Drop()
		g.gravity()
		return core.StepResult{State: g.State()}
	}

	g.gravityTimer++
	interval := g.GravityInterval()
	if in.Has(core.ActionDown) && g.cfg.Gravity.SoftDropInterval < interval {
		interval = g.cfg.Gravity.SoftDropInterval
	}
	if g.gravityTimer >= interval {
		g.gravity()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) gravity() {
	g.gravityTimer = 0
	g.eng.Tick()
}

// GravityInterval returns the current ticks between gravity steps.
func (g *Game) GravityInterval() int {
	return g.difficulty.GravityInterval(
		g.cfg.Gravity.BaseInterval,
		g.cfg.Gravity.MinInterval,
		g.progress(),
		g.playTicks,
	)
}

func (g *Game) progress() int {
	return g.difficulty.Progress(g.eng.Score(), g.eng.Lines())
}

// Level returns the displayed level, 1 through config.LevelCount.
func (g *Game) Level() int {
	return g.difficulty.LevelNumber(g.progress(), g.playTicks)
}

// State returns the status reported to the platform.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.eng.Lines(),
		Level:    g.Level(),
		GameOver: g.eng.GameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}

// Resize adapts the layout to a new terminal size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// Observe registers l for the engine events of the current run and of every
// run started by a later Reset.
func (g *Game) Observe(l engine.Listener) {
	g.observers = append(g.observers, l)
	if g.eng != nil {
		g.eng.Subscribe(l)
	}
}

// Engine exposes the running engine for inspection.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Scene exposes the event-driven view state.
func (g *Game) Scene() *Scene {
	return g.scene
}
