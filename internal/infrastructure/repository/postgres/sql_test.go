package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/lib/pq"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/proclubs-fantasy/internal/platform/querybuilder"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped no rows", func(t *testing.T) {
		if !isNotFound(fmt.Errorf("get league: %w", sql.ErrNoRows)) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(errors.New("pq: relation leagues does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Message: "duplicate key value"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "23503"}) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores non pq errors", func(t *testing.T) {
		if isUniqueViolation(errors.New("23505")) {
			t.Fatalf("expected false for plain error")
		}
	})
}

func TestSlotsCodecRoundTripKeepsOrder(t *testing.T) {
	slots := []formation.Slot{
		{Label: player.PositionGK, X: 50, Y: 5},
		{Label: player.PositionCB, X: 38.5, Y: 22},
		{Label: player.PositionST, X: 62, Y: 82},
	}

	raw, err := encodeSlots(slots)
	if err != nil {
		t.Fatalf("encode slots: %v", err)
	}
	got, err := decodeSlots(raw)
	if err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	if len(got) != len(slots) {
		t.Fatalf("unexpected slot count: got=%d want=%d", len(got), len(slots))
	}
	for i := range slots {
		if got[i].Label != slots[i].Label || got[i].X != slots[i].X || got[i].Y != slots[i].Y {
			t.Fatalf("unexpected slot %d: got=%+v want=%+v", i, got[i], slots[i])
		}
	}
}

func TestDecodeSlots_RejectsMalformedJSON(t *testing.T) {
	if _, err := decodeSlots(`{"label":`); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSeedRowsProduceInsertColumns(t *testing.T) {
	query, args, err := qb.InsertModel("players", playerSeedRow{
		PublicID: "vpg-gk-01",
		LeagueID: "vpg-eu-d1-fc26",
		TeamID:   "nordic-storm",
		Name:     "FrostWall_GK",
		Position: "GK",
		Price:    85,
	}, "ON CONFLICT (league_public_id, public_id) DO NOTHING")
	if err != nil {
		t.Fatalf("build seed insert: %v", err)
	}
	if !strings.HasPrefix(query, "INSERT INTO players (public_id, league_public_id, team_public_id, name, position, price) VALUES ($1, $2, $3, $4, $5, $6)") {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 6 {
		t.Fatalf("unexpected arg count: got=%d want=6", len(args))
	}
}
