package tetris

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/tetris"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed}
}

func testConfig(width int) config.TetrisConfig {
	cfg := config.DefaultTetrisConfig()
	cfg.Board.Width = width
	return cfg
}

func newTestGame(t *testing.T, cfg config.TetrisConfig, picker engine.Picker) *Game {
	t.Helper()
	require.NoError(t, cfg.Validate())
	g := New()
	g.start(cfg, testRuntime(1), picker)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func activePiece(t *testing.T, g *Game) engine.TetrisState {
	t.Helper()
	p, ok := g.Engine().Active()
	require.True(t, ok, "expected an active piece")
	return p
}

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_bag"} {
		require.True(t, registry.Exists(id), id)
		g, err := registry.Create(id)
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
		assert.NotEmpty(t, g.Controls())
	}
}

func TestHorizontalInput(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindT))
	start := activePiece(t, g)

	g.Step(frame(core.ActionLeft))
	assert.Equal(t, start.X-1, activePiece(t, g).X)

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	assert.Equal(t, start.X+1, activePiece(t, g).X)
}

func TestRotateInput(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindT))

	g.Step(frame(core.ActionUp))
	assert.Equal(t, engine.Rotation(1), activePiece(t, g).Rotation)

	g.Step(frame(core.ActionRotateCCW))
	g.Step(frame(core.ActionRotateCCW))
	assert.Equal(t, engine.Rotation(3), activePiece(t, g).Rotation)
}

func TestGravityInterval(t *testing.T) {
	cfg := testConfig(10)
	cfg.Gravity.BaseInterval = 10
	cfg.Gravity.MinInterval = 1
	g := newTestGame(t, cfg, engine.NewSequencePicker(engine.KindO))
	startY := activePiece(t, g).Y

	for i := 0; i < 9; i++ {
		g.Step(frame())
	}
	assert.Equal(t, startY, activePiece(t, g).Y, "no fall before the interval elapses")

	g.Step(frame())
	assert.Equal(t, startY-1, activePiece(t, g).Y)
}

func TestSoftDrop(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindO))
	startY := activePiece(t, g).Y

	g.Step(frame(core.ActionDown))
	g.Step(frame(core.ActionDown))
	assert.Equal(t, startY-1, activePiece(t, g).Y)
}

func TestHardDropLocksPiece(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindO))

	g.Step(frame(core.ActionDrop))

	assert.Equal(t, 2, g.Engine().Pieces())
	board := g.Engine().Board()
	assert.Equal(t, 2, board.Height())
	assert.True(t, board.IsOccupied(4, 0))
	assert.True(t, board.IsOccupied(5, 1))
	assert.NotEmpty(t, g.Scene().TrailCells(), "a hard drop leaves a trail")
}

func TestPauseFreezesInput(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindT))
	start := activePiece(t, g)

	g.Step(frame(core.ActionPause))
	assert.True(t, g.State().Paused)

	for i := 0; i < 200; i++ {
		g.Step(frame(core.ActionLeft))
	}
	assert.Equal(t, start, activePiece(t, g))

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestLineClearHoldsEngine(t *testing.T) {
	g := newTestGame(t, testConfig(4), engine.NewSequencePicker(engine.KindI))

	g.Step(frame(core.ActionDrop))
	require.Equal(t, 1, g.Engine().Lines())
	require.True(t, g.Scene().Busy())
	assert.True(t, g.Scene().Flashing(0))

	flashTicks := g.Scene().ticks(flashSeconds)
	for i := 1; i < flashTicks; i++ {
		g.Step(frame(core.ActionUp))
		assert.True(t, g.Scene().Busy(), "tick %d", i)
		assert.Equal(t, engine.Rotation(0), activePiece(t, g).Rotation, "input ignored while rows flash")
	}

	g.Step(frame(core.ActionUp))
	assert.False(t, g.Scene().Busy())
	assert.Equal(t, engine.Rotation(1), activePiece(t, g).Rotation)
	assert.Equal(t, 0, g.Scene().Height(), "cleared row is gone from the scene")
}

func TestScorePopup(t *testing.T) {
	g := newTestGame(t, testConfig(4), engine.NewSequencePicker(engine.KindI))

	g.Step(frame(core.ActionDrop))
	popups := g.Scene().Popups()
	require.Len(t, popups, 1)
	assert.Equal(t, "+100", popups[0].Text)
	assert.Equal(t, 0, popups[0].Row)

	for i := 0; i < g.Scene().ticks(popupSeconds); i++ {
		g.Step(frame())
	}
	assert.Empty(t, g.Scene().Popups())
}

func TestGameOverCollapse(t *testing.T) {
	cfg := testConfig(4)
	cfg.Board.SpawnRow = 2
	g := newTestGame(t, cfg, engine.NewSequencePicker(engine.KindO))

	g.Step(frame(core.ActionDrop))
	assert.False(t, g.State().GameOver)
	g.Step(frame(core.ActionDrop))

	state := g.State()
	assert.True(t, state.GameOver)
	assert.True(t, g.Scene().Collapsing())

	before := g.Snapshot()
	for i := 0; i < 30; i++ {
		g.Step(frame(core.ActionLeft, core.ActionDrop))
	}
	after := g.Snapshot()
	assert.Equal(t, before.Board, after.Board, "input after game over changes nothing")
	assert.Equal(t, before.Score, after.Score)

	// Rows sink toward the floor as the collapse plays out.
	_, y := g.Scene().CollapseOffset(1, 3)
	assert.Less(t, y, 3)
}

// scriptedInput returns a repeatable mix of moves for long runs.
func scriptedInput(i int) core.InputFrame {
	switch i % 23 {
	case 0:
		return frame(core.ActionLeft)
	case 3:
		return frame(core.ActionUp)
	case 7:
		return frame(core.ActionRight)
	case 8:
		return frame(core.ActionRight)
	case 11:
		return frame(core.ActionRotateCCW)
	case 15:
		return frame(core.ActionDown)
	case 19:
		if i%2 == 0 {
			return frame(core.ActionDrop)
		}
	}
	return frame()
}

func TestDeterminism(t *testing.T) {
	for _, mode := range []Mode{ModeClassic, ModeBag} {
		t.Run(string(mode), func(t *testing.T) {
			run := func() []Snapshot {
				g := &Game{mode: mode}
				cfg := testConfig(8)
				g.start(cfg, testRuntime(42), g.newPicker(cfg, 42))
				var snaps []Snapshot
				for i := 0; i < 3000; i++ {
					g.Step(scriptedInput(i))
					if i%100 == 0 {
						snaps = append(snaps, g.Snapshot())
					}
				}
				return snaps
			}
			assert.Equal(t, run(), run())
		})
	}
}

// rowSet returns a copy of the cells sorted by column.
func rowSet(cells []SceneCell) []SceneCell {
	out := append([]SceneCell(nil), cells...)
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

func TestSceneMirrorsEngine(t *testing.T) {
	g := &Game{mode: ModeBag}
	cfg := testConfig(6)
	g.start(cfg, testRuntime(7), g.newPicker(cfg, 7))

	for i := 0; i < 4000; i++ {
		g.Step(scriptedInput(i))

		if p, ok := g.Engine().Active(); ok {
			sp, sok := g.Scene().Active()
			require.True(t, sok, "tick %d", i)
			require.Equal(t, p, sp, "tick %d", i)
			assert.Equal(t, g.Engine().Next(), g.Scene().Next())
		}

		if g.Scene().Busy() {
			continue
		}
		board := g.Engine().Board()
		require.Equal(t, board.Height(), g.Scene().Height(), "tick %d", i)
		for y := 0; y < board.Height(); y++ {
			var want []SceneCell
			for x := 0; x < board.Width(); x++ {
				if c := board.Cell(x, y); c.Filled {
					want = append(want, SceneCell{X: x, Color: c.Color})
				}
			}
			require.Equal(t, want, rowSet(g.Scene().Row(y)), "tick %d row %d", i, y)
		}
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindT, engine.KindI))
	screen := core.NewScreen(80, 30)
	g.Render(screen)

	out := screen.String()
	assert.Contains(t, out, "Tetris")
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "NEXT")

	l := g.layout()
	assert.Equal(t, '┌', screen.Get(l.well.X, l.well.Y))

	// The ghost sits on the floor row.
	p, _ := g.Engine().Ghost()
	for _, c := range p.Cells() {
		sx, sy, ok := l.toScreen(c.X, c.Y)
		require.True(t, ok)
		assert.Equal(t, ghostChar, screen.Get(sx, sy))
	}

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")
}

func TestRenderTooSmall(t *testing.T) {
	g := New()
	rc := testRuntime(1)
	rc.ScreenW, rc.ScreenH = 20, 10
	g.start(testConfig(10), rc, engine.NewSequencePicker(engine.KindO))

	assert.True(t, g.State().Paused)

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Window too small")

	before := g.Snapshot()
	g.Step(frame(core.ActionDrop))
	assert.Equal(t, before.Pieces, g.Snapshot().Pieces)
}

func TestResizeKeepsRun(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindO))
	g.Step(frame(core.ActionLeft))
	before := activePiece(t, g)

	g.Resize(20, 10)
	assert.True(t, g.State().Paused)

	g.Resize(80, 30)
	assert.False(t, g.State().Paused)
	assert.Equal(t, before, activePiece(t, g), "resizing does not restart the run")
}

func TestResetUsesConfigAndWidth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	require.NoError(t, os.WriteFile(path, []byte("board:\n  width: 8\npieces:\n  preview: false\n"), 0o644))

	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetWidth(0)
		SetDifficultyPreset("")
	})

	g := New()
	g.Reset(testRuntime(3))
	assert.Equal(t, 8, g.Engine().Config().Width)
	assert.False(t, g.cfg.Pieces.Preview)

	SetWidth(12)
	SetDifficultyPreset("hard")
	g.Reset(testRuntime(3))
	assert.Equal(t, 12, g.Engine().Config().Width)
	assert.Equal(t, 0.7, g.cfg.Difficulty.InitialLevel)
	assert.Equal(t, engine.PhaseActive, g.Engine().Phase())
}

func TestUseDifficultyOverridesPackagePreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	SetDifficultyPreset("hard")
	t.Cleanup(func() { SetDifficultyPreset("") })

	g := New()
	require.NoError(t, g.UseDifficulty("fixed"))
	g.Reset(testRuntime(5))
	assert.False(t, g.cfg.Difficulty.Enabled)

	assert.Error(t, g.UseDifficulty("nightmare"))
	g.Reset(testRuntime(5))
	assert.False(t, g.cfg.Difficulty.Enabled, "a rejected name keeps the previous choice")

	other := New()
	other.Reset(testRuntime(5))
	assert.Equal(t, 0.7, other.cfg.Difficulty.InitialLevel)
}

func TestObserveFollowsRestarts(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	rec := &engine.Recorder{}
	g.Observe(rec.Listen)

	g.Reset(testRuntime(9))
	require.NotEmpty(t, rec.Events)
	assert.Equal(t, "spawn", rec.Kinds()[0])

	rec.Reset()
	g.Reset(testRuntime(10))
	assert.Equal(t, []string{"spawn"}, rec.Kinds(), "a new run reports to the same observer")
}

func TestSnapshotBoardEncoding(t *testing.T) {
	g := newTestGame(t, testConfig(10), engine.NewSequencePicker(engine.KindO))
	g.Step(frame(core.ActionDrop))

	snap := g.Snapshot()
	require.Len(t, snap.Board, 2)
	assert.Equal(t, engine.KindO.Color()+1, snap.Board[0][4])
	assert.Equal(t, 0, snap.Board[0][0])
	assert.Equal(t, "active", snap.Phase)
	assert.True(t, strings.EqualFold(snap.Next, "O"))
}
