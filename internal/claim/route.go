package claim

// Route is the server-assigned triage category for a claim.
type Route string

const (
	RouteFastTrack         Route = "Fast-track"
	RouteManualReview      Route = "Manual Review"
	RouteInvestigationFlag Route = "Investigation Flag"
	RouteSpecialistQueue   Route = "Specialist Queue"
	RouteHighValueReview   Route = "High-Value Review"
)

// DefaultRouteColor is used for any route outside the known set.
const DefaultRouteColor = "#8b5cf6"

var routeColors = map[Route]string{
	RouteFastTrack:         "#10b981",
	RouteManualReview:      "#f59e0b",
	RouteInvestigationFlag: "#ef4444",
	RouteSpecialistQueue:   "#3b82f6",
	RouteHighValueReview:   "#a78bfa",
}

// Color returns the hex display colour for the route.
func (r Route) Color() string {
	if c, ok := routeColors[r]; ok {
		return c
	}
	return DefaultRouteColor
}

// Known reports whether r is one of the named routes.
func (r Route) Known() bool {
	_, ok := routeColors[r]
	return ok
}

func (r Route) String() string {
	return string(r)
}
