package main

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"partforge/internal/mesh"
)

// previewColor is the albedo tint for part previews.
var previewColor = rl.NewColor(148, 156, 168, 255)

// degradedColor tints fallback geometry so a downgraded preview is visible at
// a glance.
var degradedColor = rl.NewColor(188, 148, 108, 255)

// model is an uploaded GPU copy of an engine mesh. The flat vertex and normal
// slices must outlive the rl.Mesh that points into them.
type model struct {
	rm       rl.Mesh
	mtl      rl.Material
	verts    []float32
	normals  []float32
	uploaded bool
}

// newModel expands an indexed engine mesh into flat-shaded triangles and
// uploads it. Flat normals suit mechanical parts: faceted walls read as
// machined surfaces instead of smooth blobs.
func newModel(m *mesh.Mesh, degraded bool) *model {
	verts, normals := flatten(m)
	if len(verts) == 0 {
		return nil
	}
	mo := &model{verts: verts, normals: normals}
	mo.rm.VertexCount = int32(len(verts) / 3)
	mo.rm.TriangleCount = int32(len(verts) / 9)
	mo.rm.Vertices = &mo.verts[0]
	mo.rm.Normals = &mo.normals[0]
	rl.UploadMesh(&mo.rm, false)
	mo.uploaded = true

	mo.mtl = rl.LoadMaterialDefault()
	if albedo := mo.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		if degraded {
			albedo.Color = degradedColor
		} else {
			albedo.Color = previewColor
		}
	}
	if shader := loadLitShader(); rl.IsShaderValid(shader) {
		mo.mtl.Shader = shader
	}
	return mo
}

// draw renders the model with the given transform.
func (mo *model) draw(transform rl.Matrix) {
	if mo == nil || !mo.uploaded {
		return
	}
	rl.DrawMesh(mo.rm, mo.mtl, transform)
}

// unload releases GPU resources.
func (mo *model) unload() {
	if mo == nil || !mo.uploaded {
		return
	}
	rl.UnloadMesh(&mo.rm)
	mo.uploaded = false
}

// flatten converts an indexed mesh into unshared per-triangle vertices with
// one face normal each. Degenerate triangles are dropped.
func flatten(m *mesh.Mesh) (verts, normals []float32) {
	if m.IsEmpty() {
		return nil, nil
	}
	verts = make([]float32, 0, len(m.Indices)*3)
	normals = make([]float32, 0, len(m.Indices)*3)
	at := func(i uint32) [3]float32 {
		j := int(i) * 3
		return [3]float32{m.Positions[j], m.Positions[j+1], m.Positions[j+2]}
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := at(m.Indices[i]), at(m.Indices[i+1]), at(m.Indices[i+2])
		u := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		v := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		n := [3]float32{
			u[1]*v[2] - u[2]*v[1],
			u[2]*v[0] - u[0]*v[2],
			u[0]*v[1] - u[1]*v[0],
		}
		l := n[0]*n[0] + n[1]*n[1] + n[2]*n[2]
		if l == 0 {
			continue
		}
		inv := 1 / math32.Sqrt(l)
		n[0], n[1], n[2] = n[0]*inv, n[1]*inv, n[2]*inv
		for _, p := range [][3]float32{a, b, c} {
			verts = append(verts, p[0], p[1], p[2])
			normals = append(normals, n[0], n[1], n[2])
		}
	}
	return verts, normals
}
