package playback

import (
	"github.com/VuDung/serenity/internal/domain"
	"github.com/VuDung/serenity/internal/resume"
)

// State is a step of a single dispatch request
type State int

const (
	StateReceived State = iota
	StateConfigChecked
	StateRouteChosen
	StateResumePrompted
	StateLaunching
	StateSucceeded
	StateFellBackToDefault
	StateReported
	// StateAbandoned ends a request whose resume prompt was dismissed
	StateAbandoned
)

var stateNames = map[State]string{
	StateReceived:          "received",
	StateConfigChecked:     "config_checked",
	StateRouteChosen:       "route_chosen",
	StateResumePrompted:    "resume_prompted",
	StateLaunching:         "launching",
	StateSucceeded:         "succeeded",
	StateFellBackToDefault: "fell_back_to_default",
	StateReported:          "reported",
	StateAbandoned:         "abandoned",
}

// String returns the state name for logging
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether a request can end in this state
func (s State) Terminal() bool {
	switch s {
	case StateSucceeded, StateFellBackToDefault, StateReported, StateAbandoned:
		return true
	default:
		return false
	}
}

// Route is where a request was sent
type Route int

const (
	RouteNone Route = iota
	RouteInternal
	RouteExternal
)

// String returns the route name for logging
func (r Route) String() string {
	switch r {
	case RouteInternal:
		return "internal"
	case RouteExternal:
		return "external"
	default:
		return "none"
	}
}

// Result describes how a request ended
type Result struct {
	State    State
	Route    Route
	Player   domain.PlayerID // Player that was launched, empty when none
	Decision resume.Decision // Only meaningful for external routes
	FellBack bool            // Default player used after the selected one was not found
}
