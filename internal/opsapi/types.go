package opsapi

import (
	"time"
)

const opsTimestampLayout = "2006-01-02 15:04:05"

// UnifiedState mirrors the payload returned by /api/v1/advanced/unified/state.
// One document carries every collection the dashboard renders; a successful
// fetch replaces all of it at once.
type UnifiedState struct {
	Timestamp      string                `json:"timestamp"`
	SyncID         string                `json:"sync_id"`
	Convoys        []Convoy              `json:"convoys"`
	Routes         []Route               `json:"routes"`
	TCPs           []TrafficControlPoint `json:"tcps"`
	Threats        []Threat              `json:"threats"`
	MilitaryAssets []MilitaryAsset       `json:"military_assets"`
	Scheduling     SchedulingSummary     `json:"scheduling"`
	Metrics        SystemMetrics         `json:"metrics"`
	AIAnalysis     AIAnalysis            `json:"ai_analysis"`
	SystemStatus   SystemStatus          `json:"system_status"`
}

// ParsedTimestamp returns the server timestamp as time.Time when possible.
func (u UnifiedState) ParsedTimestamp() time.Time {
	return parseTime(u.Timestamp)
}

// Convoy status values as reported by the backend.
const (
	ConvoyStatusForming   = "FORMING"
	ConvoyStatusInTransit = "IN_TRANSIT"
	ConvoyStatusHalted    = "HALTED"
	ConvoyStatusDelayed   = "DELAYED"
	ConvoyStatusArrived   = "ARRIVED"
)

// Position is a WGS84 coordinate pair.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Convoy describes one convoy in transport-friendly form.
type Convoy struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Callsign     string   `json:"callsign"`
	Status       string   `json:"status"`
	RouteID      *int64   `json:"route_id"`
	Position     Position `json:"position"`
	SpeedKPH     float64  `json:"speed_kph"`
	Cargo        string   `json:"cargo"`
	CapacityTons float64  `json:"capacity_tons"`
	VehicleCount int      `json:"vehicle_count"`
	Mission      *Mission `json:"mission"`
	UpdatedAt    string   `json:"updated_at"`
}

// ParsedUpdatedAt returns the parsed UpdatedAt timestamp.
func (c Convoy) ParsedUpdatedAt() time.Time {
	return parseTime(c.UpdatedAt)
}

// Mission carries the optional tasking attached to a convoy.
type Mission struct {
	ID        int64  `json:"id"`
	Objective string `json:"objective"`
	Priority  string `json:"priority"`
	Deadline  string `json:"deadline"`
}

// Route describes a planned movement corridor.
type Route struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Waypoints   []Position `json:"waypoints"`
	Status      string     `json:"status"`
	ThreatLevel float64    `json:"threat_level"`
	LengthKM    float64    `json:"length_km"`
}

// TrafficControlPoint describes a checkpoint along the road network.
type TrafficControlPoint struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Position   Position `json:"position"`
	Status     string   `json:"status"`
	Controller string   `json:"controller"`
}

// Threat describes a reported hazard, optionally pinned to a route.
type Threat struct {
	ID          int64    `json:"id"`
	Kind        string   `json:"kind"`
	Severity    float64  `json:"severity"`
	RouteID     *int64   `json:"route_id"`
	Position    Position `json:"position"`
	Description string   `json:"description"`
	ReportedAt  string   `json:"reported_at"`
}

// ParsedReportedAt returns the parsed ReportedAt timestamp.
func (t Threat) ParsedReportedAt() time.Time {
	return parseTime(t.ReportedAt)
}

// MilitaryAsset describes a friendly unit available for escort or response.
type MilitaryAsset struct {
	ID        string   `json:"id"`
	Callsign  string   `json:"callsign"`
	Kind      string   `json:"kind"`
	Position  Position `json:"position"`
	Readiness string   `json:"readiness"`
}

// SchedulingSummary aggregates the movement plan.
type SchedulingSummary struct {
	PlannedMovements int    `json:"planned_movements"`
	ActiveWindows    int    `json:"active_windows"`
	NextDeparture    string `json:"next_departure"`
	ConflictCount    int    `json:"conflict_count"`
}

// SystemMetrics aggregates backend-computed operational figures.
type SystemMetrics struct {
	ActiveConvoys   int     `json:"active_convoys"`
	OpenThreats     int     `json:"open_threats"`
	AvgSpeedKPH     float64 `json:"avg_speed_kph"`
	FuelReservePct  float64 `json:"fuel_reserve_pct"`
	RoutesInUse     int     `json:"routes_in_use"`
	TCPsOperational int     `json:"tcps_operational"`
}

// Recommendation is one AI-produced advisory. ConvoyID is the preferred join
// key; ConvoyName exists for older backends that only echo the name in text.
type Recommendation struct {
	ID         int64  `json:"id"`
	Text       string `json:"text"`
	Severity   string `json:"severity"`
	ConvoyID   *int64 `json:"convoy_id"`
	ConvoyName string `json:"convoy_name"`
}

// AIAnalysis carries the analysis block of the unified document.
type AIAnalysis struct {
	Summary         string           `json:"summary"`
	Confidence      float64          `json:"confidence"`
	Recommendations []Recommendation `json:"recommendations"`
}

// SystemStatus reports backend health as seen by the backend itself.
type SystemStatus struct {
	BackendConnected bool    `json:"backend_connected"`
	EngineStatus     string  `json:"engine_status"`
	FreshnessSeconds float64 `json:"freshness_seconds"`
}

// Vehicle describes one vehicle of a convoy. Vehicles are fetched on demand
// and are not part of the unified snapshot.
type Vehicle struct {
	ID       int64   `json:"id"`
	ConvoyID int64   `json:"convoy_id"`
	Kind     string  `json:"kind"`
	Status   string  `json:"status"`
	FuelPct  float64 `json:"fuel_pct"`
}

// VehicleListResponse mirrors /api/v1/convoys/{id}/vehicles.
type VehicleListResponse struct {
	Vehicles []Vehicle `json:"vehicles"`
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(opsTimestampLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
