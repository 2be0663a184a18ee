package ebitensurface

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/phanxgames/raypick"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS prints FPS and TPS in the top-left corner.
	ShowFPS bool
	// Background is the clear color.
	Background color.Color
	// OnUpdate, if set, runs each tick after input has been dispatched.
	OnUpdate func(dt float32)
}

// projector is implemented by the built-in cameras.
type projector interface {
	ViewMatrix() raypick.Mat4
	ProjectionMatrix() raypick.Mat4
}

type game struct {
	scene   *raypick.Scene
	surface *Surface
	cfg     RunConfig
	marker  *ebiten.Image
}

// Run opens a window, connects a Surface to scene and runs the game loop
// until the window is closed. Nodes with shapes are drawn as markers at their
// projected origins; hovered nodes are highlighted.
func Run(scene *raypick.Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("run: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	surface := New(scene.Events().Config())
	surface.SetSize(cfg.Width, cfg.Height)
	conn := scene.Connect(surface)
	defer conn.Disconnect()

	scene.SetSize(float64(cfg.Width), float64(cfg.Height))

	marker := ebiten.NewImage(1, 1)
	marker.Fill(color.White)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{scene: scene, surface: surface, cfg: cfg, marker: marker})
}

func (g *game) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	g.surface.Update()
	g.scene.Update(dt)
	if g.cfg.OnUpdate != nil {
		g.cfg.OnUpdate(dt)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background != nil {
		screen.Fill(g.cfg.Background)
	}
	if p, ok := g.scene.Camera().(projector); ok {
		viewProj := p.ProjectionMatrix().Mul(p.ViewMatrix())
		w, h := g.scene.Size()
		g.scene.Root().Walk(func(n *raypick.Node) bool {
			if n.Shape == nil {
				return true
			}
			ndc := viewProj.MulPoint(n.WorldPosition())
			if ndc.Z < -1 || ndc.Z > 1 {
				return true
			}
			sx := (ndc.X + 1) / 2 * w
			sy := (1 - ndc.Y) / 2 * h
			g.drawMarker(screen, sx, sy, g.scene.Events().Hovered(n))
			ebitenutil.DebugPrintAt(screen, n.Name, int(sx)+8, int(sy)-8)
			return true
		})
	}
	if g.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) drawMarker(screen *ebiten.Image, x, y float64, hovered bool) {
	const size = 10
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size/2, y-size/2)
	if hovered {
		op.ColorScale.Scale(1, 0.8, 0.2, 1)
	} else {
		op.ColorScale.Scale(0.4, 0.7, 1, 1)
	}
	screen.DrawImage(g.marker, &op)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}
