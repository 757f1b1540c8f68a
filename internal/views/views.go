package views

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
)

// maxNameDistance bounds the fuzzy fallback when a recommendation carries no
// convoy foreign key. Anything farther than this is treated as no match.
const maxNameDistance = 3

// ConvoyByID returns the convoy with the given id within the snapshot.
func ConvoyByID(s *opsapi.UnifiedState, id int64) (opsapi.Convoy, bool) {
	if s == nil {
		return opsapi.Convoy{}, false
	}
	for _, c := range s.Convoys {
		if c.ID == id {
			return c, true
		}
	}
	return opsapi.Convoy{}, false
}

// RouteByID returns the route with the given id within the snapshot.
func RouteByID(s *opsapi.UnifiedState, id int64) (opsapi.Route, bool) {
	if s == nil {
		return opsapi.Route{}, false
	}
	for _, r := range s.Routes {
		if r.ID == id {
			return r, true
		}
	}
	return opsapi.Route{}, false
}

// ThreatByID returns the threat with the given id within the snapshot.
func ThreatByID(s *opsapi.UnifiedState, id int64) (opsapi.Threat, bool) {
	if s == nil {
		return opsapi.Threat{}, false
	}
	for _, t := range s.Threats {
		if t.ID == id {
			return t, true
		}
	}
	return opsapi.Threat{}, false
}

// AssetByID returns the military asset with the given id within the snapshot.
func AssetByID(s *opsapi.UnifiedState, id string) (opsapi.MilitaryAsset, bool) {
	if s == nil {
		return opsapi.MilitaryAsset{}, false
	}
	for _, a := range s.MilitaryAssets {
		if a.ID == id {
			return a, true
		}
	}
	return opsapi.MilitaryAsset{}, false
}

// ActiveConvoys returns convoys currently in transit, in collection order.
func ActiveConvoys(s *opsapi.UnifiedState) []opsapi.Convoy {
	if s == nil {
		return nil
	}
	var out []opsapi.Convoy
	for _, c := range s.Convoys {
		if c.Status == opsapi.ConvoyStatusInTransit {
			out = append(out, c)
		}
	}
	return out
}

// ConvoysOnRoute returns convoys whose route reference matches, in collection
// order.
func ConvoysOnRoute(s *opsapi.UnifiedState, routeID int64) []opsapi.Convoy {
	if s == nil {
		return nil
	}
	var out []opsapi.Convoy
	for _, c := range s.Convoys {
		if c.RouteID != nil && *c.RouteID == routeID {
			out = append(out, c)
		}
	}
	return out
}

// ThreatsForRoute returns threats pinned to the given route, in collection
// order.
func ThreatsForRoute(s *opsapi.UnifiedState, routeID int64) []opsapi.Threat {
	if s == nil {
		return nil
	}
	var out []opsapi.Threat
	for _, t := range s.Threats {
		if t.RouteID != nil && *t.RouteID == routeID {
			out = append(out, t)
		}
	}
	return out
}

// RecommendationsForConvoy returns AI recommendations addressed to the given
// convoy. A recommendation's convoy_id foreign key wins when present; records
// without one fall back to name matching against the recommendation's
// convoy_name and text. The fallback is best-effort: an ambiguous name
// resolves to no match rather than a wrong one.
func RecommendationsForConvoy(s *opsapi.UnifiedState, convoy opsapi.Convoy) []opsapi.Recommendation {
	if s == nil {
		return nil
	}
	var out []opsapi.Recommendation
	for _, rec := range s.AIAnalysis.Recommendations {
		if rec.ConvoyID != nil {
			if *rec.ConvoyID == convoy.ID {
				out = append(out, rec)
			}
			continue
		}
		if matchesConvoyName(s, rec, convoy) {
			out = append(out, rec)
		}
	}
	return out
}

// StatusCounts tallies convoys by status for the HUD.
func StatusCounts(s *opsapi.UnifiedState) map[string]int {
	counts := make(map[string]int)
	if s == nil {
		return counts
	}
	for _, c := range s.Convoys {
		counts[c.Status]++
	}
	return counts
}

// HighestThreat returns the most severe threat in the snapshot.
func HighestThreat(s *opsapi.UnifiedState) (opsapi.Threat, bool) {
	if s == nil || len(s.Threats) == 0 {
		return opsapi.Threat{}, false
	}
	top := s.Threats[0]
	for _, t := range s.Threats[1:] {
		if t.Severity > top.Severity {
			top = t
		}
	}
	return top, true
}

// matchesConvoyName decides whether rec refers to convoy by name alone.
// Exact match on convoy_name is accepted outright. Otherwise the convoy name
// must appear in the recommendation text, or sit within a small edit distance
// of convoy_name, and no other convoy in the snapshot may match equally well.
func matchesConvoyName(s *opsapi.UnifiedState, rec opsapi.Recommendation, convoy opsapi.Convoy) bool {
	name := strings.ToLower(strings.TrimSpace(convoy.Name))
	if name == "" {
		return false
	}
	recName := strings.ToLower(strings.TrimSpace(rec.ConvoyName))
	if recName == name {
		return true
	}

	score := nameScore(rec, name)
	if score < 0 {
		return false
	}
	for _, other := range s.Convoys {
		if other.ID == convoy.ID {
			continue
		}
		otherName := strings.ToLower(strings.TrimSpace(other.Name))
		if otherName == "" {
			continue
		}
		if otherScore := nameScore(rec, otherName); otherScore >= 0 && otherScore <= score {
			// Ambiguous: another convoy matches at least as well.
			return false
		}
	}
	return true
}

// nameScore rates how well rec refers to the given lower-cased convoy name.
// Lower is better; negative means no plausible match.
func nameScore(rec opsapi.Recommendation, name string) int {
	if strings.Contains(strings.ToLower(rec.Text), name) {
		return 0
	}
	recName := strings.ToLower(strings.TrimSpace(rec.ConvoyName))
	if recName == "" {
		return -1
	}
	if d := levenshtein.ComputeDistance(recName, name); d <= maxNameDistance {
		return d
	}
	return -1
}
