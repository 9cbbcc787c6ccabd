package catalog

import (
	"sort"
	"strconv"
	"strings"
)

// ShapeParameters is the flat record of dimensional inputs for a part
// preview. Every field is optional; zero means unset and the archetype's
// catalog defaults apply. Dimensions are millimeters.
type ShapeParameters struct {
	OuterDiameter      float64 `yaml:"outer_diameter,omitempty" json:"outerDiameter,omitempty"`
	InnerDiameter      float64 `yaml:"inner_diameter,omitempty" json:"innerDiameter,omitempty"`
	Length             float64 `yaml:"length,omitempty" json:"length,omitempty"`
	Width              float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Thickness          float64 `yaml:"thickness,omitempty" json:"thickness,omitempty"`
	WallThickness      float64 `yaml:"wall_thickness,omitempty" json:"wallThickness,omitempty"`
	ConeTopDiameter    float64 `yaml:"cone_top_diameter,omitempty" json:"coneTopDiameter,omitempty"`
	ConeBottomDiameter float64 `yaml:"cone_bottom_diameter,omitempty" json:"coneBottomDiameter,omitempty"`
	ConeHeight         float64 `yaml:"cone_height,omitempty" json:"coneHeight,omitempty"`
	BladeCount         int     `yaml:"blade_count,omitempty" json:"bladeCount,omitempty"`
	IsHollow           bool    `yaml:"is_hollow,omitempty" json:"isHollow,omitempty"`
}

// withDefaults returns p with every unset field filled from d.
func (p ShapeParameters) withDefaults(d ShapeParameters) ShapeParameters {
	if p.OuterDiameter == 0 {
		p.OuterDiameter = d.OuterDiameter
	}
	if p.InnerDiameter == 0 {
		p.InnerDiameter = d.InnerDiameter
	}
	if p.Length == 0 {
		p.Length = d.Length
	}
	if p.Width == 0 {
		p.Width = d.Width
	}
	if p.Thickness == 0 {
		p.Thickness = d.Thickness
	}
	if p.WallThickness == 0 {
		p.WallThickness = d.WallThickness
	}
	if p.ConeTopDiameter == 0 {
		p.ConeTopDiameter = d.ConeTopDiameter
	}
	if p.ConeBottomDiameter == 0 {
		p.ConeBottomDiameter = d.ConeBottomDiameter
	}
	if p.ConeHeight == 0 {
		p.ConeHeight = d.ConeHeight
	}
	if p.BladeCount == 0 {
		p.BladeCount = d.BladeCount
	}
	if d.IsHollow {
		p.IsHollow = true
	}
	return p
}

// Key returns the canonical cache key for a part type and parameter record.
// Only set fields are emitted, and entries are sorted, so two logically-equal
// records always serialize identically regardless of construction order.
func Key(partType string, p ShapeParameters) string {
	fields := []struct {
		name  string
		value float64
	}{
		{"outer_diameter", p.OuterDiameter},
		{"inner_diameter", p.InnerDiameter},
		{"length", p.Length},
		{"width", p.Width},
		{"thickness", p.Thickness},
		{"wall_thickness", p.WallThickness},
		{"cone_top_diameter", p.ConeTopDiameter},
		{"cone_bottom_diameter", p.ConeBottomDiameter},
		{"cone_height", p.ConeHeight},
	}
	entries := make([]string, 0, len(fields)+2)
	for _, f := range fields {
		if f.value != 0 {
			entries = append(entries, f.name+"="+strconv.FormatFloat(f.value, 'g', -1, 64))
		}
	}
	if p.BladeCount != 0 {
		entries = append(entries, "blade_count="+strconv.Itoa(p.BladeCount))
	}
	if p.IsHollow {
		entries = append(entries, "is_hollow=true")
	}
	sort.Strings(entries)
	return partType + "?" + strings.Join(entries, "&")
}
