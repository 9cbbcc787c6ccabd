package catalog

import (
	"partforge/internal/mesh"
	"partforge/internal/primitive"
	"partforge/internal/profile"
	"partforge/internal/solid"
)

// builders is the closed registration table binding canonical archetype names
// to their generators. Load fails on a catalog entry missing here.
var builders = map[string]Generator{
	"plate":        buildPlate,
	"box":          buildBox,
	"cylinder":     buildCylinder,
	"tube":         buildTube,
	"ring":         buildTube,
	"cone":         buildCone,
	"sphere":       buildSphere,
	"hex_bar":      buildHexBar,
	"disk":         buildDisk,
	"turbine_disk": buildTurbineDisk,
	"bladed_disk":  buildBladedDisk,
}

// dim validates one dimension, degrading to fallback when it is not positive.
func dim(res *Result, name string, v, fallback float64) float64 {
	if v > 0 {
		return v
	}
	res.degrade("%s %g is not positive, using %g", name, v, fallback)
	return fallback
}

func f32(v float64) float32 { return float32(v) }

func buildPlate(p ShapeParameters) Result {
	var res Result
	l := dim(&res, "length", p.Length, 200)
	w := dim(&res, "width", p.Width, 100)
	t := dim(&res, "thickness", p.Thickness, 10)
	m := primitive.Box()
	m.Scale(f32(w), f32(t), f32(l))
	res.Mesh = m
	return res
}

func buildBox(p ShapeParameters) Result {
	var res Result
	l := dim(&res, "length", p.Length, 100)
	w := dim(&res, "width", p.Width, 100)
	t := dim(&res, "thickness", p.Thickness, 100)
	outer := primitive.Box()
	outer.Scale(f32(w), f32(t), f32(l))
	res.Mesh = outer
	if !p.IsHollow {
		return res
	}

	wall := p.WallThickness
	if wall <= 0 {
		wall = 10
	}
	il, iw, it := l-2*wall, w-2*wall, t-2*wall
	if il <= 0 || iw <= 0 || it <= 0 {
		res.degrade("hollow box inner size %gx%gx%g is not positive, keeping solid box", iw, it, il)
		return res
	}
	inner := primitive.Box()
	inner.Scale(f32(iw), f32(it), f32(il))
	m, err := solid.Hollow(outer, inner)
	if err != nil {
		res.degrade("hollow box: %v", err)
	}
	res.Mesh = m
	return res
}

func scaledCylinder(d, l float64) *mesh.Mesh {
	m := primitive.Cylinder()
	m.Scale(f32(d), f32(l), f32(d))
	return m
}

func buildCylinder(p ShapeParameters) Result {
	var res Result
	d := dim(&res, "outer_diameter", p.OuterDiameter, 50)
	l := dim(&res, "length", p.Length, 100)
	res.Mesh = scaledCylinder(d, l)
	return res
}

func buildSphere(p ShapeParameters) Result {
	var res Result
	d := dim(&res, "outer_diameter", p.OuterDiameter, 80)
	m := primitive.Sphere()
	m.Scale(f32(d), f32(d), f32(d))
	res.Mesh = m
	return res
}

func buildHexBar(p ShapeParameters) Result {
	var res Result
	d := dim(&res, "outer_diameter", p.OuterDiameter, 60)
	l := dim(&res, "length", p.Length, 120)
	m := primitive.Prism(6)
	m.Scale(f32(d), f32(l), f32(d))
	res.Mesh = m
	return res
}

// buildTube serves both tube and ring; the two archetypes differ only in
// their catalog defaults.
func buildTube(p ShapeParameters) Result {
	var res Result
	d := dim(&res, "outer_diameter", p.OuterDiameter, 100)
	l := dim(&res, "length", p.Length, 120)
	outerR := d / 2

	var innerR float64
	switch {
	case p.InnerDiameter > 0:
		innerR = p.InnerDiameter / 2
	case p.WallThickness > 0:
		innerR = outerR - p.WallThickness
	default:
		innerR = outerR - d*0.1
	}

	outer := scaledCylinder(d, l)
	if innerR <= 0 || innerR >= outerR {
		res.degrade("inner radius %g outside (0, %g), keeping solid cylinder", innerR, outerR)
		res.Mesh = outer
		return res
	}
	// Cutter overshoots the faces so the caps are never coplanar.
	inner := scaledCylinder(2*innerR, l*1.1)
	m, err := solid.Hollow(outer, inner)
	if err != nil {
		res.degrade("tube bore: %v", err)
	}
	res.Mesh = m
	return res
}

func buildCone(p ShapeParameters) Result {
	var res Result
	db := dim(&res, "cone_bottom_diameter", p.ConeBottomDiameter, 100)
	h := dim(&res, "cone_height", p.ConeHeight, 150)

	dt := p.ConeTopDiameter
	if dt <= 0 {
		if p.ConeTopDiameter < 0 {
			res.degrade("cone_top_diameter %g is not positive, using 60%% of bottom", p.ConeTopDiameter)
		}
		dt = 0.6 * db
	}
	// A pointed tip renders as a degenerate sliver; keep a visible shoulder.
	if dt < 0.1*db {
		res.degrade("cone_top_diameter %g too small next to bottom %g, clamping", dt, db)
		dt = 0.1 * db
	}
	wall := p.WallThickness
	if wall <= 0 {
		wall = 15
	}

	rb, rt := f32(db/2), f32(dt/2)
	hh := f32(h / 2)
	w := f32(wall)
	if w >= rt || w >= rb {
		res.degrade("wall %g too thick for radii %g/%g, keeping solid frustum", wall, db/2, dt/2)
		res.Mesh = profile.New(rb, -hh).
			LineTo(rt, hh).
			LineTo(0, hh).
			LineTo(0, -hh).
			Revolve(profile.DefaultSegments)
		return res
	}
	res.Mesh = profile.New(rb, -hh).
		LineTo(rt, hh).
		LineTo(rt-w, hh).
		LineTo(rb-w, -hh).
		Revolve(profile.DefaultSegments)
	return res
}

func buildDisk(p ShapeParameters) Result {
	var res Result
	d := dim(&res, "outer_diameter", p.OuterDiameter, 200)
	t := dim(&res, "thickness", p.Thickness, 30)
	r := d / 2

	bore := p.InnerDiameter / 2
	if bore <= 0 {
		res.degrade("inner_diameter %g is not positive, using 20%% of outer", p.InnerDiameter)
		bore = 0.2 * r
	}
	if bore >= 0.8*r {
		res.degrade("bore %g too large for disk radius %g, clamping", bore, r)
		bore = 0.2 * r
	}

	// Raised central hub, fillets between hub wall and rim faces.
	hub := 0.35 * r
	if hub < bore+0.1*r {
		hub = bore + 0.1*r
	}
	g := 0.15 * t // fillet radius
	hh := t       // hub half-height, the hub is twice the rim thickness
	rimHH := t / 2
	if hub+g >= r {
		// No rim left beside the hub; a plain annulus is the nearest
		// valid section.
		res.degrade("hub %g meets rim %g, keeping plain annulus", hub, r)
		res.Mesh = profile.New(f32(r), f32(-rimHH)).
			LineTo(f32(r), f32(rimHH)).
			LineTo(f32(bore), f32(rimHH)).
			LineTo(f32(bore), f32(-rimHH)).
			Revolve(profile.DefaultSegments)
		return res
	}

	fr, fhub, fbore := f32(r), f32(hub), f32(bore)
	fg, fhh, frim := f32(g), f32(hh), f32(rimHH)
	res.Mesh = profile.New(fr, -frim).
		LineTo(fr, frim).
		LineTo(fhub+fg, frim).
		FilletTo(fhub, frim+fg).
		LineTo(fhub, fhh).
		LineTo(fbore, fhh).
		LineTo(fbore, -fhh).
		LineTo(fhub, -fhh).
		LineTo(fhub, -frim-fg).
		FilletTo(fhub+fg, -frim).
		Revolve(profile.DefaultSegments)
	return res
}

// turbineDiskProfile builds the bore + thin web + thick rim cross-section
// with filleted transitions, shared by turbine_disk and bladed_disk.
func turbineDiskProfile(res *Result, p ShapeParameters, segments int) *mesh.Mesh {
	d := dim(res, "outer_diameter", p.OuterDiameter, 300)
	t := dim(res, "thickness", p.Thickness, 60)
	r := d / 2

	bore := p.InnerDiameter / 2
	if bore <= 0 {
		res.degrade("inner_diameter %g is not positive, using 10%% of outer", p.InnerDiameter)
		bore = 0.1 * r
	}
	if bore >= 0.5*r {
		res.degrade("bore %g too large for disk radius %g, clamping", bore, r)
		bore = 0.1 * r
	}

	ri := 0.88 * r  // rim inner radius
	tw := 0.4 * t   // web thickness
	hub := 0.25 * r // hub radius
	if hub < 1.6*bore {
		hub = 1.6 * bore
	}
	th := 1.2 * t // hub thickness
	g := 0.15 * t // fillet radius
	if hub+g >= ri-g {
		// Parameters leave no web span; fall back to a plain bored disk.
		res.degrade("hub %g meets rim %g, keeping plain disk section", hub, ri)
		return profile.New(f32(r), f32(-t/2)).
			LineTo(f32(r), f32(t/2)).
			LineTo(f32(bore), f32(t/2)).
			LineTo(f32(bore), f32(-t/2)).
			Revolve(segments)
	}

	fr, fri, fhub, fbore := f32(r), f32(ri), f32(hub), f32(bore)
	fg := f32(g)
	rimHH, webHH, hubHH := f32(t/2), f32(tw/2), f32(th/2)
	return profile.New(fr, -rimHH).
		LineTo(fr, rimHH).
		LineTo(fri, rimHH).
		LineTo(fri, webHH+fg).
		FilletTo(fri-fg, webHH).
		LineTo(fhub+fg, webHH).
		FilletTo(fhub, webHH+fg).
		LineTo(fhub, hubHH).
		LineTo(fbore, hubHH).
		LineTo(fbore, -hubHH).
		LineTo(fhub, -hubHH).
		LineTo(fhub, -webHH-fg).
		FilletTo(fhub+fg, -webHH).
		LineTo(fri-fg, -webHH).
		FilletTo(fri, -webHH-fg).
		LineTo(fri, -rimHH).
		Revolve(segments)
}

func buildTurbineDisk(p ShapeParameters) Result {
	var res Result
	res.Mesh = turbineDiskProfile(&res, p, profile.DefaultSegments)
	return res
}

// bladedDiskSegments keeps the boolean-heavy bladed disk at a coarser
// tessellation than purely revolved parts.
const bladedDiskSegments = 32

func buildBladedDisk(p ShapeParameters) Result {
	var res Result
	base := turbineDiskProfile(&res, p, bladedDiskSegments)

	d := p.OuterDiameter
	if d <= 0 {
		d = 300
	}
	t := p.Thickness
	if t <= 0 {
		t = 60
	}
	r := d / 2
	count := p.BladeCount
	if count <= 0 {
		count = 16
	}

	bladeLen := 0.3 * r
	blade := primitive.Box()
	blade.Scale(f32(bladeLen), f32(t), f32(0.05*r))
	// Blade root sits embedded in the rim so the union has real overlap.
	radius := f32(r + bladeLen/2 - 0.04*r)
	const bladeTwist = 0.45

	m, skipped := solid.CompositeRadial(base, func(int) *mesh.Mesh {
		return blade
	}, count, radius, bladeTwist)
	if skipped > 0 {
		res.degrade("%d of %d blades failed to union and were skipped", skipped, count)
	}
	res.Mesh = m
	return res
}
