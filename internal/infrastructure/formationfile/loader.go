// Package formationfile reads custom formations from a YAML document:
//
//	formations:
//	  - name: 4-4-2 diamond
//	    slots:
//	      - {label: GK, x: 50, y: 5}
//	      - {label: LB, x: 15, y: 25}
//	      ...
package formationfile

import (
	"bytes"
	"errors"
	"io"
	"os"

	crerr "github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
)

type document struct {
	Formations []formationDoc `yaml:"formations"`
}

type formationDoc struct {
	Name  string    `yaml:"name"`
	Slots []slotDoc `yaml:"slots"`
}

type slotDoc struct {
	Label string  `yaml:"label"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
}

// Load parses the file at path. An empty path yields no formations.
func Load(path string) ([]formation.Formation, error) {
	if path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read formations file %s", path)
	}

	items, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, crerr.Wrapf(err, "formations file %s", path)
	}
	return items, nil
}

// Parse decodes and validates every formation of the document. One invalid
// formation rejects the whole document.
func Parse(r io.Reader) ([]formation.Formation, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, crerr.Wrap(err, "decode formations yaml")
	}

	seen := make(map[string]struct{}, len(doc.Formations))
	out := make([]formation.Formation, 0, len(doc.Formations))
	for i, item := range doc.Formations {
		slots := make([]formation.Slot, 0, len(item.Slots))
		for j, s := range item.Slots {
			label, err := player.ParsePosition(s.Label)
			if err != nil {
				return nil, crerr.Wrapf(err, "formation %d (%s) slot %d", i, item.Name, j)
			}
			slots = append(slots, formation.Slot{Label: label, X: s.X, Y: s.Y})
		}

		f := formation.New(item.Name, slots...)
		if err := f.Validate(); err != nil {
			return nil, crerr.Wrapf(err, "formation %d", i)
		}
		if _, dup := seen[f.Name]; dup {
			return nil, crerr.Wrapf(formation.ErrDuplicateFormation, "formation %d (%s) declared twice", i, f.Name)
		}
		seen[f.Name] = struct{}{}
		out = append(out, f)
	}

	return out, nil
}
