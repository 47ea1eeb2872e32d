package postgres

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	qb "github.com/riskibarqy/proclubs-fantasy/internal/platform/querybuilder"
)

type customFormationTableModel struct {
	Name      string    `db:"name"`
	Slots     string    `db:"slots"`
	CreatedAt time.Time `db:"created_at"`
}

type slotDocument struct {
	Label string  `json:"label"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

func encodeSlots(slots []formation.Slot) (string, error) {
	docs := make([]slotDocument, 0, len(slots))
	for _, s := range slots {
		docs = append(docs, slotDocument{Label: string(s.Label), X: s.X, Y: s.Y})
	}
	return sonic.MarshalString(docs)
}

func decodeSlots(raw string) ([]formation.Slot, error) {
	var docs []slotDocument
	if err := sonic.UnmarshalString(raw, &docs); err != nil {
		return nil, err
	}
	out := make([]formation.Slot, 0, len(docs))
	for _, d := range docs {
		out = append(out, formation.Slot{Label: player.Position(d.Label), X: d.X, Y: d.Y})
	}
	return out, nil
}

type FormationRepository struct {
	db *sqlx.DB
}

func NewFormationRepository(db *sqlx.DB) *FormationRepository {
	return &FormationRepository{db: db}
}

// List returns stored formations in creation order. Quotas are rederived from the
// slot labels, so a stored row never disagrees with its layout.
func (r *FormationRepository) List(ctx context.Context) ([]formation.Formation, error) {
	query, args, err := qb.Select("name", "slots::text AS slots", "created_at").From("custom_formations").
		OrderBy("created_at", "name").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build list custom formations query")
	}

	var rows []customFormationTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "list custom formations")
	}

	out := make([]formation.Formation, 0, len(rows))
	for _, row := range rows {
		slots, err := decodeSlots(row.Slots)
		if err != nil {
			return nil, crerr.Wrapf(err, "decode slots of formation %s", row.Name)
		}
		out = append(out, formation.New(row.Name, slots...))
	}
	return out, nil
}

func (r *FormationRepository) Create(ctx context.Context, f formation.Formation) error {
	slots, err := encodeSlots(f.Slots)
	if err != nil {
		return crerr.Wrapf(err, "encode slots of formation %s", f.Name)
	}

	query, args, err := qb.InsertInto("custom_formations").
		Columns("name", "slots").
		Values(f.Name, slots).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build insert custom formation query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return crerr.Wrapf(formation.ErrDuplicateFormation, "formation %s", f.Name)
		}
		return crerr.Wrapf(err, "insert custom formation %s", f.Name)
	}
	return nil
}
