package usecase

import (
	"testing"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

// valid442IDs is a seeded VPG selection matching 4-4-2 exactly, costing 975.
var valid442IDs = []string{
	"vpg-gk-01",
	"vpg-def-03",
	"vpg-def-01",
	"vpg-def-02",
	"vpg-def-04",
	"vpg-mid-04",
	"vpg-mid-02",
	"vpg-mid-06",
	"vpg-mid-05",
	"vpg-fwd-01",
	"vpg-fwd-02",
}

func copyIDs(ids []string) []string {
	return append([]string(nil), ids...)
}

func newTestFormationService(t *testing.T) *FormationService {
	t.Helper()
	return NewFormationService(formation.NewRegistry(), memory.NewFormationRepository(), formation.DefaultName, logging.NewNop())
}
