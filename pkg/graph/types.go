package graph

import (
	"encoding/json"
	"slices"
	"strings"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Visualization types.
const (
	VizTypeTree     = "tree"
	VizTypeNodelink = "nodelink"
)

// Connection types. Only mentorship edges drive layering and rendering;
// overlap edges are carried for display only.
const (
	ConnectionMentorship = "coaching_tree"
	ConnectionOverlap    = "career_overlap"
)

// Direction labels for the per-coach connection lookup.
const (
	DirectionMentoredBy = "mentored by"
	DirectionMentorOf   = "mentor of"
)

// =============================================================================
// Dataset - Raw Snapshot Serialization
// =============================================================================

// Dataset is the canonical serialization format for a coaching snapshot.
// This matches the scraper output consumed by the layout pipeline.
type Dataset struct {
	Coaches     []Coach           `json:"coaches" bson:"coaches" validate:"required,min=1,dive"`
	Connections []Connection      `json:"connections" bson:"connections" validate:"dive"`
	TeamColors  map[string]string `json:"team_colors,omitempty" bson:"team_colors,omitempty"`
}

// Coach is one person in the mentorship graph. Immutable once loaded.
type Coach struct {
	ID          string `json:"id" bson:"id" validate:"required"`
	Name        string `json:"name" bson:"name" validate:"required"`
	CurrentTeam string `json:"current_team,omitempty" bson:"current_team,omitempty"`
	IsCurrentHC bool   `json:"is_current_hc,omitempty" bson:"is_current_hc,omitempty"`
}

// Connection is a directed edge between two coaches.
// Direction is mentor → protégé: Source coached Target.
type Connection struct {
	Source  string `json:"source" bson:"source" validate:"required"`
	Target  string `json:"target" bson:"target" validate:"required"`
	Type    string `json:"type" bson:"type" validate:"required,oneof=coaching_tree career_overlap"`
	Years   string `json:"years,omitempty" bson:"years,omitempty"`
	Context string `json:"context,omitempty" bson:"context,omitempty"`
}

// IsMentorship reports whether this connection drives layering and rendering.
func (c Connection) IsMentorship() bool { return c.Type == ConnectionMentorship }

// Roots returns the coaches flagged as currently active head coaches,
// sorted by name (ties broken by id) for deterministic iteration.
func (d *Dataset) Roots() []Coach {
	var roots []Coach
	for _, c := range d.Coaches {
		if c.IsCurrentHC {
			roots = append(roots, c)
		}
	}
	slices.SortFunc(roots, CompareCoaches)
	return roots
}

// CoachByID looks up a coach by id.
func (d *Dataset) CoachByID(id string) (Coach, bool) {
	for _, c := range d.Coaches {
		if c.ID == id {
			return c, true
		}
	}
	return Coach{}, false
}

// MentorshipConnections returns the connections that drive layering,
// in input order. Duplicates are preserved.
func (d *Dataset) MentorshipConnections() []Connection {
	var out []Connection
	for _, c := range d.Connections {
		if c.IsMentorship() {
			out = append(out, c)
		}
	}
	return out
}

// TeamColor resolves the display color for a team name.
// Returns empty string if the team has no configured color.
func (d *Dataset) TeamColor(team string) string {
	if d.TeamColors == nil {
		return ""
	}
	return d.TeamColors[team]
}

// CompareCoaches orders coaches by display name, ties broken by id.
// This is the initial within-layer order before crossing minimization.
func CompareCoaches(a, b Coach) int {
	if r := strings.Compare(a.Name, b.Name); r != 0 {
		return r
	}
	return strings.Compare(a.ID, b.ID)
}

// UnmarshalDataset deserializes JSON bytes to a Dataset.
func UnmarshalDataset(data []byte) (Dataset, error) {
	var d Dataset
	if err := json.Unmarshal(data, &d); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// =============================================================================
// ConnectionInfo - Per-Coach Display Lookup
// =============================================================================

// ConnectionInfo is one entry in the per-coach connection lookup exposed to
// the UI layer: the other endpoint plus a direction label.
type ConnectionInfo struct {
	Other     string `json:"other" bson:"other"`         // other coach id
	Direction string `json:"direction" bson:"direction"` // "mentored by" or "mentor of"
	Type      string `json:"type" bson:"type"`
	Years     string `json:"years,omitempty" bson:"years,omitempty"`
	Context   string `json:"context,omitempty" bson:"context,omitempty"`
}
