// Command viewer is an interactive raylib preview for the geometry engine:
// it asks the engine for a part mesh and renders it with an orbit camera.
// Left/right arrows cycle archetypes, H toggles hollow, G the grid, S cache
// stats. Preferences persist via config/viewer.json.
package main

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"partforge/internal/catalog"
	"partforge/internal/engine"
	"partforge/internal/viewerconfig"
)

const (
	windowWidth  = 1280
	windowHeight = 720
	// fitSize is the world-space size previews are scaled into, independent
	// of part dimensions in millimeters.
	fitSize     = 5.0
	gridSlices  = 20
	gridSpacing = 0.5
)

// lightDir is the direction to the light, from above-right.
var lightDir = [3]float32{0.5, 1, 0.5}

type viewer struct {
	svc   *engine.Service
	prefs viewerconfig.Prefs
	names []string
	idx   int

	cam     rl.Camera3D
	current *model
	result  catalog.Result
	scale   float32
	dirty   bool
}

func main() {
	log := zap.Must(zap.NewDevelopment())
	defer func() { _ = log.Sync() }()

	prefs, _ := viewerconfig.Load()
	svc := engine.New(catalog.MustLoad(), log)

	v := &viewer{svc: svc, prefs: prefs, names: svc.Catalog().Archetypes(), dirty: true}
	for i, n := range v.names {
		if n == prefs.PartType {
			v.idx = i
		}
	}
	v.cam = rl.Camera3D{
		Position:   rl.NewVector3(6, 4.5, 6),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(windowWidth, windowHeight, "partforge viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		v.update()
		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(24, 26, 30, 255))
		v.draw()
		rl.EndDrawing()
	}

	v.current.unload()
	v.prefs.PartType = v.names[v.idx]
	if err := viewerconfig.Save(v.prefs); err != nil {
		log.Warn("save prefs", zap.Error(err))
	}
}

func (v *viewer) update() {
	switch {
	case rl.IsKeyPressed(rl.KeyRight):
		v.idx = (v.idx + 1) % len(v.names)
		v.dirty = true
	case rl.IsKeyPressed(rl.KeyLeft):
		v.idx = (v.idx - 1 + len(v.names)) % len(v.names)
		v.dirty = true
	case rl.IsKeyPressed(rl.KeyH):
		v.prefs.IsHollow = !v.prefs.IsHollow
		v.dirty = true
	case rl.IsKeyPressed(rl.KeyG):
		v.prefs.GridVisible = !v.prefs.GridVisible
	case rl.IsKeyPressed(rl.KeyS):
		v.prefs.ShowStats = !v.prefs.ShowStats
	}
	if v.dirty {
		v.rebuild()
	}
	rl.UpdateCamera(&v.cam, rl.CameraOrbital)
}

// rebuild fetches the current archetype from the engine and uploads it.
// Repeat visits to a part type are cache hits; only the GPU copy is remade.
func (v *viewer) rebuild() {
	v.dirty = false
	params := catalog.ShapeParameters{IsHollow: v.prefs.IsHollow}
	v.result = v.svc.GetOrBuild(v.names[v.idx], params)

	v.current.unload()
	v.current = newModel(v.result.Mesh, v.result.Degraded)

	v.scale = 1
	size := v.result.Mesh.Bounds().Size()
	max := size[0]
	if size[1] > max {
		max = size[1]
	}
	if size[2] > max {
		max = size[2]
	}
	if max > 0 {
		v.scale = fitSize / max
	}
}

func (v *viewer) draw() {
	rl.BeginMode3D(v.cam)
	if v.prefs.GridVisible {
		rl.DrawGrid(gridSlices, gridSpacing)
	}
	if v.current != nil {
		setLitShaderUniforms(v.current.mtl.Shader,
			[3]float32{v.cam.Position.X, v.cam.Position.Y, v.cam.Position.Z}, lightDir)
		v.current.draw(rl.MatrixScale(v.scale, v.scale, v.scale))
	}
	rl.EndMode3D()

	name := v.names[v.idx]
	label := name
	if v.prefs.IsHollow {
		label += " (hollow)"
	}
	rl.DrawText(label, 16, 16, 24, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("%d verts, %d tris",
		v.result.Mesh.VertexCount(), v.result.Mesh.TriangleCount()), 16, 46, 18, rl.Gray)
	if v.result.Degraded {
		rl.DrawText("degraded: "+strings.Join(v.result.Reasons, "; "), 16, 70, 18, rl.Orange)
	}
	if v.prefs.ShowStats {
		st := v.svc.Stats()
		rl.DrawText(fmt.Sprintf("cache: %d entries, %d hits, %d misses",
			st.Entries, st.Hits, st.Misses), 16, windowHeight-32, 18, rl.Gray)
	}
	rl.DrawText("left/right: part   H: hollow   G: grid   S: stats",
		windowWidth-470, windowHeight-32, 18, rl.DarkGray)
}
