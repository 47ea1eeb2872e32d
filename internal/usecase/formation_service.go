package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/proclubs-fantasy/internal/domain/formation"
	"github.com/riskibarqy/proclubs-fantasy/internal/domain/player"
	"github.com/riskibarqy/proclubs-fantasy/internal/platform/logging"
)

type CreateFormationInput struct {
	Name  string
	Slots []FormationSlotInput
}

type FormationSlotInput struct {
	Label string
	X     float64
	Y     float64
}

type FormationService struct {
	registry    *formation.Registry
	repo        formation.Repository
	defaultName string
	logger      *logging.Logger
}

func NewFormationService(
	registry *formation.Registry,
	repo formation.Repository,
	defaultName string,
	logger *logging.Logger,
) *FormationService {
	if logger == nil {
		logger = logging.Default()
	}
	if registry == nil {
		registry = formation.NewRegistry()
	}
	defaultName = strings.TrimSpace(defaultName)
	if defaultName == "" {
		defaultName = formation.DefaultName
	}

	return &FormationService{
		registry:    registry,
		repo:        repo,
		defaultName: defaultName,
		logger:      logger,
	}
}

// LoadCustom admits persisted custom formations into the registry.
// Rows that no longer validate are skipped with a warning.
func (s *FormationService) LoadCustom(ctx context.Context) (int, error) {
	if s.repo == nil {
		return 0, nil
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list custom formations: %w", err)
	}

	loaded := 0
	for _, item := range items {
		if err := s.registry.Add(item); err != nil {
			s.logger.WarnContext(ctx, "skip stored custom formation",
				"formation", item.Name,
				"error", err,
			)
			continue
		}
		loaded++
	}

	return loaded, nil
}

func (s *FormationService) List(ctx context.Context) []formation.Formation {
	_, span := startUsecaseSpan(ctx, "usecase.FormationService.List")
	defer span.End()

	return s.registry.List()
}

func (s *FormationService) Get(ctx context.Context, name string) (formation.Formation, error) {
	_, span := startUsecaseSpan(ctx, "usecase.FormationService.Get")
	defer span.End()

	if strings.TrimSpace(name) == "" {
		return formation.Formation{}, fmt.Errorf("%w: formation name is required", ErrInvalidInput)
	}

	item, err := s.registry.Get(name)
	if err != nil {
		if errors.Is(err, formation.ErrNotFound) {
			return formation.Formation{}, fmt.Errorf("%w: formation=%s", ErrNotFound, name)
		}
		return formation.Formation{}, fmt.Errorf("get formation: %w", err)
	}

	return item, nil
}

// Default returns the configured default formation, falling back to the built-in
// default when the configured one is unavailable.
func (s *FormationService) Default(ctx context.Context) formation.Formation {
	item, err := s.registry.Get(s.defaultName)
	if err == nil {
		return item
	}

	s.logger.WarnContext(ctx, "configured default formation unavailable, using built-in",
		"formation", s.defaultName,
		"fallback", formation.DefaultName,
		"error", err,
	)
	item, _ = formation.Get(formation.DefaultName)
	return item
}

// Resolve returns the named formation or the default one when name is empty.
func (s *FormationService) Resolve(ctx context.Context, name string) (formation.Formation, error) {
	if strings.TrimSpace(name) == "" {
		return s.Default(ctx), nil
	}
	return s.Get(ctx, name)
}

func (s *FormationService) CreateCustom(ctx context.Context, input CreateFormationInput) (formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FormationService.CreateCustom")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return formation.Formation{}, fmt.Errorf("%w: formation name is required", ErrInvalidInput)
	}

	slots := make([]formation.Slot, 0, len(input.Slots))
	for i, raw := range input.Slots {
		label, err := player.ParsePosition(raw.Label)
		if err != nil {
			return formation.Formation{}, fmt.Errorf("%w: slot %d: %v", ErrInvalidInput, i, err)
		}
		slots = append(slots, formation.Slot{Label: label, X: raw.X, Y: raw.Y})
	}

	item := formation.New(input.Name, slots...)
	if err := item.Validate(); err != nil {
		return formation.Formation{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.registry.Get(item.Name); err == nil {
		return formation.Formation{}, fmt.Errorf("%w: formation=%s", ErrConflict, item.Name)
	}

	if s.repo != nil {
		if err := s.repo.Create(ctx, item); err != nil {
			if errors.Is(err, formation.ErrDuplicateFormation) {
				return formation.Formation{}, fmt.Errorf("%w: formation=%s", ErrConflict, item.Name)
			}
			return formation.Formation{}, fmt.Errorf("create custom formation: %w", err)
		}
	}

	if err := s.registry.Add(item); err != nil {
		if errors.Is(err, formation.ErrDuplicateFormation) {
			return formation.Formation{}, fmt.Errorf("%w: formation=%s", ErrConflict, item.Name)
		}
		return formation.Formation{}, fmt.Errorf("register custom formation: %w", err)
	}

	s.logger.InfoContext(ctx, "custom formation created",
		"formation", item.Name,
		"quotas", item.Quotas,
	)

	created, _ := s.registry.Get(item.Name)
	return created, nil
}
