package formation

import (
	"fmt"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

// Formation names are persisted with saved squads; renaming one needs a data migration.
const (
	Name442     = "4-4-2"
	Name433     = "4-3-3"
	Name4231    = "4-2-3-1"
	Name451     = "4-5-1"
	Name41212   = "4-1-2-1-2"
	Name352     = "3-5-2"
	Name343     = "3-4-3"
	Name532     = "5-3-2"
	Name541     = "5-4-1"
	DefaultName = Name442
)

func slot(label player.Position, x, y float64) Slot {
	return Slot{Label: label, X: x, Y: y}
}

var builtin = []Formation{
	New(Name442,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionLB, 15, 25), slot(player.PositionCB, 38, 22), slot(player.PositionCB, 62, 22), slot(player.PositionRB, 85, 25),
		slot(player.PositionLM, 15, 52), slot(player.PositionCM, 38, 48), slot(player.PositionCM, 62, 48), slot(player.PositionRM, 85, 52),
		slot(player.PositionST, 38, 78), slot(player.PositionST, 62, 78),
	),
	New(Name433,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionLB, 15, 25), slot(player.PositionCB, 38, 22), slot(player.PositionCB, 62, 22), slot(player.PositionRB, 85, 25),
		slot(player.PositionCM, 30, 50), slot(player.PositionCDM, 50, 42), slot(player.PositionCM, 70, 50),
		slot(player.PositionLW, 18, 76), slot(player.PositionST, 50, 82), slot(player.PositionRW, 82, 76),
	),
	New(Name4231,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionLB, 15, 25), slot(player.PositionCB, 38, 22), slot(player.PositionCB, 62, 22), slot(player.PositionRB, 85, 25),
		slot(player.PositionCDM, 38, 42), slot(player.PositionCDM, 62, 42),
		slot(player.PositionLM, 18, 62), slot(player.PositionCAM, 50, 64), slot(player.PositionRM, 82, 62),
		slot(player.PositionST, 50, 84),
	),
	New(Name451,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionLB, 15, 25), slot(player.PositionCB, 38, 22), slot(player.PositionCB, 62, 22), slot(player.PositionRB, 85, 25),
		slot(player.PositionLM, 12, 55), slot(player.PositionCM, 32, 50), slot(player.PositionCDM, 50, 44), slot(player.PositionCM, 68, 50), slot(player.PositionRM, 88, 55),
		slot(player.PositionST, 50, 82),
	),
	New(Name41212,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionLB, 15, 25), slot(player.PositionCB, 38, 22), slot(player.PositionCB, 62, 22), slot(player.PositionRB, 85, 25),
		slot(player.PositionCDM, 50, 40),
		slot(player.PositionCM, 30, 52), slot(player.PositionCM, 70, 52),
		slot(player.PositionCAM, 50, 64),
		slot(player.PositionST, 38, 82), slot(player.PositionCF, 62, 82),
	),
	New(Name352,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionCB, 28, 22), slot(player.PositionCB, 50, 20), slot(player.PositionCB, 72, 22),
		slot(player.PositionLM, 10, 52), slot(player.PositionCM, 32, 50), slot(player.PositionCDM, 50, 42), slot(player.PositionCM, 68, 50), slot(player.PositionRM, 90, 52),
		slot(player.PositionST, 38, 80), slot(player.PositionST, 62, 80),
	),
	New(Name343,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionCB, 28, 22), slot(player.PositionCB, 50, 20), slot(player.PositionCB, 72, 22),
		slot(player.PositionLM, 12, 50), slot(player.PositionCM, 38, 46), slot(player.PositionCM, 62, 46), slot(player.PositionRM, 88, 50),
		slot(player.PositionLW, 18, 76), slot(player.PositionST, 50, 82), slot(player.PositionRW, 82, 76),
	),
	New(Name532,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionLWB, 10, 32), slot(player.PositionCB, 30, 20), slot(player.PositionCB, 50, 18), slot(player.PositionCB, 70, 20), slot(player.PositionRWB, 90, 32),
		slot(player.PositionCM, 30, 52), slot(player.PositionCM, 50, 48), slot(player.PositionCM, 70, 52),
		slot(player.PositionST, 38, 80), slot(player.PositionST, 62, 80),
	),
	New(Name541,
		slot(player.PositionGK, 50, 5),
		slot(player.PositionLWB, 10, 32), slot(player.PositionCB, 30, 20), slot(player.PositionCB, 50, 18), slot(player.PositionCB, 70, 20), slot(player.PositionRWB, 90, 32),
		slot(player.PositionLM, 15, 56), slot(player.PositionCM, 38, 50), slot(player.PositionCM, 62, 50), slot(player.PositionRM, 85, 56),
		slot(player.PositionST, 50, 80),
	),
}

// List returns every built-in formation in catalog order.
func List() []Formation {
	out := make([]Formation, 0, len(builtin))
	for _, f := range builtin {
		out = append(out, f.Clone())
	}
	return out
}

// Get looks a built-in formation up by its exact, case-sensitive name.
func Get(name string) (Formation, error) {
	for _, f := range builtin {
		if f.Name == name {
			return f.Clone(), nil
		}
	}
	return Formation{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}
