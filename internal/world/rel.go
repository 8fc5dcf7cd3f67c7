package world

import (
	"github.com/tbsvttr/weltenwanderer2/internal/source"
)

// RelKind categorizes a resolved relationship edge.
type RelKind uint8

const (
	RelInvalid RelKind = iota
	// RelContainment: the source sits inside the target (`in X`).
	RelContainment
	// RelMembership: the source belongs to the target group (`member of`).
	RelMembership
	// RelLocation: the source is found at the target place (`located at`).
	RelLocation
	// RelAlliance: the source is allied with the target (`allied with`).
	RelAlliance
	// RelRivalry: the source is a rival of the target (`rival of`).
	RelRivalry
	// RelOwnership: the source owns the target (`owned by`, inverted).
	RelOwnership
	// RelLeadership: the source leads the target (`led by`, inverted).
	RelLeadership
	// RelHeadquarters: the source is based at the target (`based at`).
	RelHeadquarters
	// RelCausation: the source was caused by the target (`caused by`).
	RelCausation
	// RelParticipation: the source took part in the target event
	// (`involving`, inverted per listed participant).
	RelParticipation
	// RelReference: the source mentions the target (`references`).
	RelReference
	// RelConnection: a directional exit from the source to the target.
	RelConnection
)

func (k RelKind) String() string {
	switch k {
	case RelContainment:
		return "containment"
	case RelMembership:
		return "membership"
	case RelLocation:
		return "location"
	case RelAlliance:
		return "alliance"
	case RelRivalry:
		return "rivalry"
	case RelOwnership:
		return "ownership"
	case RelLeadership:
		return "leadership"
	case RelHeadquarters:
		return "headquarters"
	case RelCausation:
		return "causation"
	case RelParticipation:
		return "participation"
	case RelReference:
		return "reference"
	case RelConnection:
		return "connection"
	}
	return "invalid"
}

// Bidirectional reports whether the edge reads the same from both ends,
// so queries may surface it on either entity.
func (k RelKind) Bidirectional() bool {
	return k == RelAlliance || k == RelRivalry || k == RelConnection
}

// Relationship is one resolved edge. It is stored on the source entity;
// Source is repeated so derived views can hand edges out on their own.
type Relationship struct {
	Source    EntityID
	Kind      RelKind
	Target    EntityID
	Direction string // exit direction word for RelConnection, otherwise empty
	Span      source.Span
}
