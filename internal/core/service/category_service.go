package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// CategoryService implements category management for users and admins.
type CategoryService struct {
	repo  ports.CategoryRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

// NewCategoryService returns a CategoryService.
func NewCategoryService(repo ports.CategoryRepository, audit ports.AuditRecorder, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, audit: audit, log: log}
}

// ListActive returns active categories, optionally narrowed to one type.
func (s *CategoryService) ListActive(ctx context.Context, typ domain.TransactionType) ([]*domain.Category, error) {
	if typ != "" && !typ.Valid() {
		return nil, domain.Validation("type must be income or expense")
	}
	active := true
	cats, err := s.repo.List(ctx, ports.CategoryFilter{Active: &active, Type: typ})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// ListAll returns every category, including inactive ones.
func (s *CategoryService) ListAll(ctx context.Context) ([]*domain.Category, error) {
	cats, err := s.repo.List(ctx, ports.CategoryFilter{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

// CreateByUser creates a category owned by the calling user. Both name and
// type are required.
func (s *CategoryService) CreateByUser(ctx context.Context, actor ports.Actor, in ports.CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Type == "" {
		return nil, domain.Validation("please provide name and type")
	}
	if !in.Type.Valid() {
		return nil, domain.Validation("type must be income or expense")
	}

	cat, err := s.create(ctx, name, in.Type, actor.UserID)
	if err != nil {
		return nil, err
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditCreate,
		Entity:   domain.EntityCategory,
		EntityID: idRef(cat.ID),
		Actor:    actor,
		Metadata: map[string]any{"name": cat.Name, "type": string(cat.Type)},
	})
	return cat, nil
}

// CreateByAdmin creates a system-wide category. Type defaults to expense.
func (s *CategoryService) CreateByAdmin(ctx context.Context, actor ports.Actor, in ports.CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validation("please provide a category name")
	}
	typ := in.Type
	if typ == "" {
		typ = domain.TypeExpense
	}
	if !typ.Valid() {
		return nil, domain.Validation("type must be income or expense")
	}

	cat, err := s.create(ctx, name, typ, domain.CreatedByAdmin)
	if err != nil {
		return nil, err
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditCreate,
		Entity:   domain.EntityCategory,
		EntityID: idRef(cat.ID),
		Actor:    actor,
		Metadata: map[string]any{"name": cat.Name},
	})
	return cat, nil
}

// Update renames and/or toggles a category.
func (s *CategoryService) Update(ctx context.Context, actor ports.Actor, in ports.UpdateCategoryInput) (*domain.Category, error) {
	cat, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	oldName := cat.Name
	if name := strings.TrimSpace(in.Name); name != "" && name != cat.Name {
		if _, err := s.repo.FindByName(ctx, name); err == nil {
			return nil, domain.ErrCategoryExists
		} else if !errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, fmt.Errorf("update category: lookup name: %w", err)
		}
		cat.Name = name
	}
	if in.IsActive != nil {
		cat.IsActive = *in.IsActive
	}
	cat.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, cat); err != nil {
		if errors.Is(err, domain.ErrCategoryExists) || errors.Is(err, domain.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update category: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditUpdate,
		Entity:   domain.EntityCategory,
		EntityID: idRef(cat.ID),
		Actor:    actor,
		Metadata: map[string]any{"oldName": oldName, "newName": cat.Name, "isActive": cat.IsActive},
	})
	return cat, nil
}

// Delete removes a category permanently. Transactions referencing it keep
// their dangling category id.
func (s *CategoryService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, cat.ID); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return err
		}
		return fmt.Errorf("delete category: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditDelete,
		Entity:   domain.EntityCategory,
		EntityID: idRef(cat.ID),
		Actor:    actor,
		Metadata: map[string]any{"deletedCategoryName": cat.Name},
	})
	s.log.Info().Str("category_id", cat.ID).Str("name", cat.Name).Msg("category deleted")
	return nil
}

func (s *CategoryService) create(ctx context.Context, name string, typ domain.TransactionType, createdBy string) (*domain.Category, error) {
	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, domain.ErrCategoryExists
	} else if !errors.Is(err, domain.ErrCategoryNotFound) {
		return nil, fmt.Errorf("create category: lookup name: %w", err)
	}

	now := time.Now().UTC()
	cat, err := s.repo.Create(ctx, &domain.Category{
		Name:      name,
		Type:      typ,
		CreatedBy: createdBy,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return cat, nil
}
