package player

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownPosition = errors.New("unknown player position")

// Position is a concrete on-pitch position label.
type Position string

const (
	PositionGK  Position = "GK"
	PositionCB  Position = "CB"
	PositionLB  Position = "LB"
	PositionRB  Position = "RB"
	PositionLWB Position = "LWB"
	PositionRWB Position = "RWB"
	PositionCDM Position = "CDM"
	PositionCM  Position = "CM"
	PositionCAM Position = "CAM"
	PositionLM  Position = "LM"
	PositionRM  Position = "RM"
	PositionLW  Position = "LW"
	PositionRW  Position = "RW"
	PositionST  Position = "ST"
	PositionCF  Position = "CF"
)

// Role is the coarse fantasy category a position counts towards.
type Role string

const (
	RoleGoalkeeper Role = "GK"
	RoleDefender   Role = "DEF"
	RoleMidfielder Role = "MID"
	RoleForward    Role = "FWD"
)

var allPositions = []Position{
	PositionGK,
	PositionCB, PositionLB, PositionRB, PositionLWB, PositionRWB,
	PositionCDM, PositionCM, PositionCAM, PositionLM, PositionRM,
	PositionLW, PositionRW, PositionST, PositionCF,
}

var allRoles = []Role{RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleForward}

// AllPositions lists every known position label in pitch order.
func AllPositions() []Position {
	return append([]Position(nil), allPositions...)
}

// AllRoles lists the fantasy roles from goal outwards.
func AllRoles() []Role {
	return append([]Role(nil), allRoles...)
}

// Classify maps a concrete position onto its fantasy role.
// Unknown labels are an error; they never fall back to a default role.
func Classify(p Position) (Role, error) {
	switch p {
	case PositionGK:
		return RoleGoalkeeper, nil
	case PositionCB, PositionLB, PositionRB, PositionLWB, PositionRWB:
		return RoleDefender, nil
	case PositionCDM, PositionCM, PositionCAM, PositionLM, PositionRM:
		return RoleMidfielder, nil
	case PositionLW, PositionRW, PositionST, PositionCF:
		return RoleForward, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, string(p))
	}
}

func ParsePosition(raw string) (Position, error) {
	p := Position(strings.ToUpper(strings.TrimSpace(raw)))
	if _, err := Classify(p); err != nil {
		return "", err
	}
	return p, nil
}

// RoleOf accepts either a role name or a concrete position label.
func RoleOf(label string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(label))
	switch Role(normalized) {
	case RoleGoalkeeper, RoleDefender, RoleMidfielder, RoleForward:
		return Role(normalized), nil
	}
	return Classify(Position(normalized))
}
