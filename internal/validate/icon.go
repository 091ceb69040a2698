package validate

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Shape attributes shared by every drawing primitive.
var shapeAttrs = []string{
	"d", "cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2", "points",
	"fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin", "class",
}

// svgAllowList maps each permitted SVG element to the attributes it may
// carry. Elements with no attributes keep only their text content.
var svgAllowList = map[string][]string{
	"svg": {
		"xmlns", "viewBox", "width", "height", "fill", "stroke", "stroke-width",
		"stroke-linecap", "stroke-linejoin", "aria-hidden", "role", "focusable", "class",
	},
	"g":        {"id"},
	"defs":     {"id"},
	"clipPath": {"id", "clipPathUnits"},
	"use":      {"href", "xlink:href", "clip-path"},
	"title":    nil,
	"desc":     nil,
	"path":     shapeAttrs,
	"circle":   shapeAttrs,
	"ellipse":  shapeAttrs,
	"rect":     shapeAttrs,
	"line":     shapeAttrs,
	"polyline": shapeAttrs,
	"polygon":  shapeAttrs,
}

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// icon returns plain icon names untouched and strips inline SVG markup down
// to the elements in svgAllowList.
func (v *validator) icon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || !v.cfg.SanitizeIcons || !strings.Contains(trimmed, "<") {
		return trimmed
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		iconPolicy = newIconPolicy(svgAllowList)
	})
	return iconPolicy
}

func newIconPolicy(allow map[string][]string) *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	for element, attrs := range allow {
		policy.AllowElements(element)
		if len(attrs) > 0 {
			policy.AllowAttrs(attrs...).OnElements(element)
		}
	}
	return policy
}
