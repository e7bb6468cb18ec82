package models

// PlacementZone is the semantic visual region an image belongs to.
// Exactly one zone is assigned per image.
type PlacementZone string

const (
	ZoneLogo      PlacementZone = "logo"
	ZoneHero      PlacementZone = "hero"
	ZoneTopBanner PlacementZone = "top_banner"
	ZoneGallery   PlacementZone = "gallery"
	ZoneInline    PlacementZone = "inline"
	ZoneBG        PlacementZone = "bg"
	ZoneUnknown   PlacementZone = "unknown"
)

// SignalSource identifies which heuristic produced a placement signal.
type SignalSource string

const (
	SourceDOMContext SignalSource = "dom_context"
	SourceURLPattern SignalSource = "url_pattern"
	SourceGeometry   SignalSource = "geometry"
)

// Signal is one independent heuristic observation contributing to a
// placement decision.
type Signal struct {
	Source SignalSource  `json:"source"`
	Zone   PlacementZone `json:"zone"`
	Weight float64       `json:"weight"`
}

// PlacementRef is the fused classification of a visual element.
// Signals preserves evaluation order for auditability; Confidence is
// derived from the winning zone's accumulated signal weight and is
// capped below full certainty.
type PlacementRef struct {
	Zone       PlacementZone `json:"zone"`
	Confidence float64       `json:"confidence"`
	Signals    []Signal      `json:"signals,omitempty"`
}

// Image is one extracted image candidate. ID and Hash are derived from
// the resolved source URL and never change after creation.
type Image struct {
	ID        string       `json:"id"`         // first 16 hex chars of SHA-1(src)
	PageSlug  string       `json:"page_slug"`
	Src       string       `json:"src"`        // absolute URL
	Alt       string       `json:"alt,omitempty"`
	Width     int          `json:"width,omitempty"`
	Height    int          `json:"height,omitempty"`
	Aspect    float64      `json:"aspect,omitempty"`
	Format    string       `json:"format"`
	Role      string       `json:"role"` // legacy coarse category derived from zone
	Placement PlacementRef `json:"placement"`
	Hash      string       `json:"hash"` // full content hash of src
}

// RoleForZone projects a placement zone onto the legacy coarse role
// taxonomy kept for compatibility with stored records.
func RoleForZone(zone PlacementZone) string {
	switch zone {
	case ZoneLogo:
		return "logo"
	case ZoneHero, ZoneTopBanner:
		return "hero"
	case ZoneGallery:
		return "gallery"
	case ZoneBG:
		return "bg"
	default:
		return "content"
	}
}
