// internal/game/roles.go
//
// Participant roles and the visibility/action policy.
// Four roles map onto two orthogonal capabilities: spymasters see hidden card
// types but may not reveal; operatives reveal but never see hidden types.
// The policy is pure — it holds no state beyond its inputs.

package game

import "fmt"

// Role is a participant's chosen seat. Roles are local to a participant, not
// part of session state, and nothing stops two people from claiming the same
// seat (honor system for casual play).
type Role string

const (
	RoleRedSpymaster  Role = "red_spymaster"
	RoleBlueSpymaster Role = "blue_spymaster"
	RoleRedOperative  Role = "red_operative"
	RoleBlueOperative Role = "blue_operative"
)

// ParseRole validates a role string from the outside world.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleRedSpymaster, RoleBlueSpymaster, RoleRedOperative, RoleBlueOperative:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Team returns the team a role belongs to.
func (r Role) Team() Team {
	switch r {
	case RoleRedSpymaster, RoleRedOperative:
		return TeamRed
	case RoleBlueSpymaster, RoleBlueOperative:
		return TeamBlue
	}
	return TeamNone
}

// IsSpymaster reports whether the role is one of the two spymaster seats.
func (r Role) IsSpymaster() bool {
	return r == RoleRedSpymaster || r == RoleBlueSpymaster
}

// String returns a display name for log entries.
func (r Role) String() string {
	switch r {
	case RoleRedSpymaster:
		return "red spymaster"
	case RoleBlueSpymaster:
		return "blue spymaster"
	case RoleRedOperative:
		return "red operative"
	case RoleBlueOperative:
		return "blue operative"
	}
	return string(r)
}

// Capabilities is the set of actions and visibility a role grants.
type Capabilities struct {
	// CanReveal is true only for operatives.
	CanReveal bool `json:"canReveal"`
	// CanSeeTypes is true only for spymasters.
	CanSeeTypes bool `json:"canSeeTypes"`
	// CanGiveClue is true only for the spymaster of the team whose turn it is.
	CanGiveClue bool `json:"canGiveClue"`
}

// CapabilitiesFor evaluates the role policy for a role and the team currently
// playing.
func CapabilitiesFor(r Role, current Team) Capabilities {
	master := r.IsSpymaster()
	return Capabilities{
		CanReveal:   !master,
		CanSeeTypes: master,
		CanGiveClue: master && r.Team() == current,
	}
}
