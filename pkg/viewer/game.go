package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-flock-volume/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
	"go.uber.org/zap"
)

const (
	panelWidth = 280.0
	margin     = 20.0
)

var (
	boidColor   = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	wallColor   = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	centreColor = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	footColor   = color.RGBA{R: 255, G: 80, B: 80, A: 160}
)

// Game renders the snapshots of a FlockActor and feeds it one Tick per frame.
type Game struct {
	ctx        context.Context
	system     actor.ActorSystem
	flockPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot
	logger     *zap.Logger

	cfg   simulation.Config
	scale float64 // pixels per world unit

	whiteImage *ebiten.Image

	// UI Controls
	panel *ui.UIPanel

	widgetFlockingStrength      *ui.Slider
	widgetFlockingDistance      *ui.Slider
	widgetAvoidingStrength      *ui.Slider
	widgetAvoidingDistance      *ui.Slider
	widgetVelocityMatchStrength *ui.Slider
	widgetVelocityMatchDistance *ui.Slider
	widgetMaxVelocity           *ui.Slider
	widgetMaxSteering           *ui.Slider
	widgetRandomness            *ui.Slider
	widgetCollisionViewDst      *ui.Slider
	widgetCollisionStrength     *ui.Slider
	widgetNumBoids              *ui.Slider
	widgetShowFootPoints        *ui.Checkbox
	widgetShowCentre            *ui.Checkbox
	restartRequested            bool

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// NewGame spawns a FlockActor for cfg on system and builds the control panel.
func NewGame(ctx context.Context, cfg simulation.Config, system actor.ActorSystem, logger *zap.Logger) (*Game, error) {
	g := &Game{
		ctx:        ctx,
		system:     system,
		snapshotCh: make(chan *simulation.Snapshot, 10),
		logger:     logger,
		cfg:        cfg,
		scale:      fitScale(cfg.X, cfg.Y),
	}
	if err := g.spawn(cfg); err != nil {
		return nil, err
	}

	s := cfg.Settings
	_, screenH := g.Layout(0, 0)
	panel := ui.NewUIPanel("Flock", 10, 10, panelWidth-20, float64(screenH)-20)

	panel.AddSection("Flocking")
	g.widgetFlockingStrength = panel.AddSlider("Strength", 0, 0.05, s.FlockingStrength)
	g.widgetFlockingDistance = panel.AddSlider("Distance", 0, 50, s.FlockingDistance)
	panel.EndSection()

	panel.AddSection("Separation")
	g.widgetAvoidingStrength = panel.AddSlider("Strength", 0, 0.5, s.AvoidingStrength)
	g.widgetAvoidingDistance = panel.AddSlider("Distance", 0, 20, s.AvoidingDistance)
	panel.EndSection()

	panel.AddSection("Velocity Matching")
	g.widgetVelocityMatchStrength = panel.AddSlider("Strength", 0, 0.5, s.VelocityMatchStrength)
	g.widgetVelocityMatchDistance = panel.AddSlider("Distance", 0, 50, s.VelocityMatchDistance)
	panel.EndSection()

	panel.AddSection("Limits & Noise")
	g.widgetMaxVelocity = panel.AddSlider("Max Velocity", 0.05, 3, s.MaxVelocity)
	g.widgetMaxSteering = panel.AddSlider("Max Steering", 0.001, 0.5, s.MaxSteeringVector)
	g.widgetRandomness = panel.AddSlider("Randomness", 0, 0.1, s.Randomness)
	panel.EndSection()

	panel.AddSection("Walls")
	g.widgetCollisionViewDst = panel.AddSlider("View Distance", 0, 40, s.CollisionViewDst)
	g.widgetCollisionStrength = panel.AddSlider("Avoidance", 0, 5, s.CollisionAvoidanceStrength)
	panel.EndSection()

	panel.AddSection("Population")
	g.widgetNumBoids = panel.AddIntSlider("Boids", 1, 1000, cfg.NumBoids)
	panel.AddButton("Restart", func() { g.restartRequested = true })
	panel.EndSection()

	panel.AddSection("Visualization")
	g.widgetShowCentre = panel.AddCheckbox("Show Centre of Mass", true)
	g.widgetShowFootPoints = panel.AddCheckbox("Show Wall Foot Points", false)
	panel.EndSection()

	g.panel = panel
	return g, nil
}

// fitScale picks a pixel size so the volume fills roughly 900x700 pixels.
func fitScale(x, y float64) float64 {
	return math.Max(1, math.Min(900/x, 700/y))
}

func (g *Game) spawn(cfg simulation.Config) error {
	flock, err := simulation.NewFlock(cfg, simulation.WithLogger(g.logger))
	if err != nil {
		return err
	}
	pid, err := simulation.SpawnFlock(g.ctx, g.system, flock, g.snapshotCh)
	if err != nil {
		return err
	}
	g.flockPID = pid
	g.lastState = flock.Snapshot()
	return nil
}

// restart replaces the running flock with one built from the panel values.
// The volume keeps its size so the window layout does not change.
func (g *Game) restart() error {
	next := g.cfg
	next.Settings = g.settings()
	next.NumBoids = int(g.widgetNumBoids.Value)
	if err := next.Validate(); err != nil {
		return err
	}

	if err := g.system.Kill(g.ctx, g.flockPID.Name()); err != nil {
		return fmt.Errorf("failed to stop %s: %w", g.flockPID.Name(), err)
	}
	// drain snapshots of the previous flock
	for len(g.snapshotCh) > 0 {
		<-g.snapshotCh
	}
	if err := g.spawn(next); err != nil {
		return err
	}
	g.cfg = next
	g.logger.Info("flock restarted", zap.Int("boids", next.NumBoids))
	return nil
}

func (g *Game) settings() behavior.Settings {
	return behavior.Settings{
		FlockingStrength:           g.widgetFlockingStrength.Value,
		FlockingDistance:           g.widgetFlockingDistance.Value,
		AvoidingStrength:           g.widgetAvoidingStrength.Value,
		AvoidingDistance:           g.widgetAvoidingDistance.Value,
		VelocityMatchStrength:      g.widgetVelocityMatchStrength.Value,
		VelocityMatchDistance:      g.widgetVelocityMatchDistance.Value,
		MaxVelocity:                g.widgetMaxVelocity.Value,
		MaxSteeringVector:          g.widgetMaxSteering.Value,
		Randomness:                 g.widgetRandomness.Value,
		CollisionViewDst:           g.widgetCollisionViewDst.Value,
		CollisionAvoidanceStrength: g.widgetCollisionStrength.Value,
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	g.panel.Update()
	if g.restartRequested {
		g.restartRequested = false
		if err := g.restart(); err != nil {
			g.logger.Warn("restart refused", zap.Error(err))
		}
	}

	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}

	return actor.Tell(g.ctx, g.flockPID, simulation.NewTick(time.Second/time.Duration(max(1, ebiten.TPS()))))
}

// toScreen maps world coordinates (origin at the volume centre, y up) to pixels.
func (g *Game) toScreen(p geometry.Vector2D) (float32, float32) {
	hw, hh := g.cfg.HalfExtent()
	x := panelWidth + margin + (p.X+hw)*g.scale
	y := margin + (hh-p.Y)*g.scale
	return float32(x), float32(y)
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(color.RGBA{R: 10, G: 10, B: 30, A: 255})

	x0, y0 := g.toScreen(geometry.Vector2D{X: -g.cfg.X / 2, Y: g.cfg.Y / 2})
	vector.StrokeRect(screen, x0, y0, float32(g.cfg.X*g.scale), float32(g.cfg.Y*g.scale), 2, wallColor, true)

	if g.lastState != nil {
		for i := range g.lastState.Boids {
			g.drawBoid(screen, g.lastState.Boids[i])
		}
		if g.widgetShowFootPoints.Value && len(g.lastState.Boids) > 0 {
			g.drawFootPoints(screen, g.lastState.Boids[0])
		}
		if g.widgetShowCentre.Value {
			cx, cy := g.toScreen(g.lastState.CentreOfMass.XY())
			vector.StrokeCircle(screen, cx, cy, 4, 1.5, centreColor, true)
		}
	}

	g.panel.Draw(screen)

	var tick uint64
	if g.lastState != nil {
		tick = g.lastState.Tick
	}
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\nTick: %d\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		tick,
		g.updateAvg,
		g.drawAvg)
	w, _ := g.Layout(0, 0)
	ebitenutil.DebugPrintAt(screen, msg, w-150, 10)
}

// drawFootPoints draws the segment from b to the closest point of each wall.
func (g *Game) drawFootPoints(screen *ebiten.Image, b behavior.Boid) {
	pos := b.Position.XY()
	feet, err := geometry.ClosestWallPoints(pos, geometry.Walls(g.cfg.X, g.cfg.Y))
	if err != nil {
		return
	}
	bx, by := g.toScreen(pos)
	for _, f := range feet {
		fx, fy := g.toScreen(f)
		vector.StrokeLine(screen, bx, by, fx, fy, 1, footColor, true)
	}
}

func (g *Game) drawBoid(screen *ebiten.Image, b behavior.Boid) {
	if g.whiteImage == nil {
		g.whiteImage = ebiten.NewImage(3, 3)
		g.whiteImage.Fill(color.White)
	}
	// screen y grows downwards
	angle := math.Atan2(-b.Velocity.Y, b.Velocity.X)
	px, py := g.toScreen(b.Position.XY())
	x, y := float64(px), float64(py)

	tip := []float64{x + math.Cos(angle)*6, y + math.Sin(angle)*6}
	right := []float64{x + math.Cos(angle+2.5)*5, y + math.Sin(angle+2.5)*5}
	left := []float64{x + math.Cos(angle-2.5)*5, y + math.Sin(angle-2.5)*5}

	r, gr, bl := float32(boidColor.R)/255, float32(boidColor.G)/255, float32(boidColor.B)/255
	vertices := make([]ebiten.Vertex, 0, 3)
	for _, v := range [][]float64{tip, right, left} {
		vertices = append(vertices, ebiten.Vertex{
			DstX: float32(v[0]), DstY: float32(v[1]),
			SrcX: 1, SrcY: 1,
			ColorR: r, ColorG: gr, ColorB: bl, ColorA: 1,
		})
	}
	screen.DrawTriangles(vertices, []uint16{0, 1, 2}, g.whiteImage, &ebiten.DrawTrianglesOptions{})
}

func (g *Game) Layout(w, h int) (int, int) {
	return int(panelWidth + 2*margin + g.cfg.X*g.scale), int(math.Max(2*margin+g.cfg.Y*g.scale, 600))
}
