package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

// exportHeader is the column order of the CSV export.
var exportHeader = []string{"Date", "User", "Email", "Category", "Description", "Amount", "PaymentType"}

// ExpenseService implements transaction management for owners and admins.
type ExpenseService struct {
	repo       ports.ExpenseRepository
	categories ports.CategoryRepository
	audit      ports.AuditRecorder
	log        zerolog.Logger
	now        func() time.Time
}

// NewExpenseService returns an ExpenseService.
func NewExpenseService(
	repo ports.ExpenseRepository,
	categories ports.CategoryRepository,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *ExpenseService {
	return &ExpenseService{repo: repo, categories: categories, audit: audit, log: log, now: time.Now}
}

// ListMine returns the actor's non-deleted transactions.
func (s *ExpenseService) ListMine(ctx context.Context, actor ports.Actor) ([]*domain.Expense, error) {
	list, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return list, nil
}

func (s *ExpenseService) Create(ctx context.Context, actor ports.Actor, in ports.CreateExpenseInput) (*domain.Expense, error) {
	if in.Amount == 0 || in.CategoryID == "" || strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.PaymentType) == "" {
		return nil, domain.Validation("please add all fields")
	}
	if in.Amount < 0 {
		return nil, domain.Validation("amount must be positive")
	}
	typ := in.Type
	if typ == "" {
		typ = domain.TypeExpense
	}
	if !typ.Valid() {
		return nil, domain.Validation("type must be income or expense")
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	date := now
	if in.Date != nil && !in.Date.IsZero() {
		date = in.Date.UTC()
	}

	e, err := s.repo.Create(ctx, &domain.Expense{
		UserID:      actor.UserID,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		Description: strings.TrimSpace(in.Description),
		PaymentType: strings.TrimSpace(in.PaymentType),
		Type:        typ,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditCreate,
		Entity:   e.AuditEntity(),
		EntityID: idRef(e.ID),
		Actor:    actor,
		Metadata: map[string]any{
			"amount":      e.Amount,
			"categoryId":  e.CategoryID,
			"description": e.Description,
			"type":        string(e.Type),
		},
	})
	return e, nil
}

// Update applies a partial update to a transaction owned by the actor.
func (s *ExpenseService) Update(ctx context.Context, actor ports.Actor, in ports.UpdateExpenseInput) (*domain.Expense, error) {
	e, err := s.repo.FindByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if e.UserID != actor.UserID {
		return nil, domain.ErrExpenseNotOwned
	}
	if e.IsDeleted {
		return nil, domain.ErrExpenseDeleted
	}

	oldData := expenseSnapshot(e)
	newData := map[string]any{}

	if in.Amount < 0 {
		return nil, domain.Validation("amount must be positive")
	}
	if in.Amount != 0 {
		e.Amount = in.Amount
		newData["amount"] = in.Amount
	}
	if in.CategoryID != "" && in.CategoryID != e.CategoryID {
		if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
			return nil, err
		}
		e.CategoryID = in.CategoryID
		newData["categoryId"] = in.CategoryID
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		e.Description = d
		newData["description"] = d
	}
	if p := strings.TrimSpace(in.PaymentType); p != "" {
		e.PaymentType = p
		newData["paymentType"] = p
	}
	if in.Date != nil && !in.Date.IsZero() {
		e.Date = in.Date.UTC()
		newData["date"] = e.Date
	}
	if in.Type != "" {
		if !in.Type.Valid() {
			return nil, domain.Validation("type must be income or expense")
		}
		e.Type = in.Type
		newData["type"] = string(in.Type)
	}
	e.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		if errors.Is(err, domain.ErrExpenseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update expense: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditUpdate,
		Entity:   e.AuditEntity(),
		EntityID: idRef(e.ID),
		Actor:    actor,
		Metadata: map[string]any{"oldData": oldData, "newData": newData},
	})
	return e, nil
}

// Delete soft-deletes a transaction owned by the actor.
func (s *ExpenseService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e.UserID != actor.UserID {
		return domain.ErrExpenseNotOwned
	}
	if e.IsDeleted {
		return domain.ErrExpenseAlreadyDeleted
	}
	if err := s.repo.MarkDeleted(ctx, e.ID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditDelete,
		Entity:   e.AuditEntity(),
		EntityID: idRef(e.ID),
		Actor:    actor,
		Metadata: map[string]any{"description": e.Description},
	})
	return nil
}

// ListAll returns every non-deleted transaction with owner and category.
func (s *ExpenseService) ListAll(ctx context.Context) ([]domain.ExpenseDetail, error) {
	list, err := s.repo.ListDetailed(ctx, ports.ExpenseFilter{})
	if err != nil {
		return nil, fmt.Errorf("list all expenses: %w", err)
	}
	return list, nil
}

// DeleteAny soft-deletes any transaction regardless of owner.
func (s *ExpenseService) DeleteAny(ctx context.Context, actor ports.Actor, id string) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if e.IsDeleted {
		return domain.ErrExpenseAlreadyDeleted
	}
	if err := s.repo.MarkDeleted(ctx, e.ID); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditDelete,
		Entity:   domain.EntityExpense,
		EntityID: idRef(e.ID),
		Actor:    actor,
		Metadata: map[string]any{"adminOverride": true, "description": e.Description},
	})
	s.log.Info().Str("expense_id", e.ID).Str("admin_id", actor.UserID).Msg("expense removed by admin")
	return nil
}

// Export writes the matching transactions to w as CSV with a header row.
func (s *ExpenseService) Export(ctx context.Context, actor ports.Actor, q ports.ExportQuery, w io.Writer) error {
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return domain.Validation("'to' must not be before 'from'")
	}

	rows, err := s.repo.ListDetailed(ctx, ports.ExpenseFilter{
		UserID:     q.UserID,
		CategoryID: q.CategoryID,
		From:       q.From,
		To:         q.To,
	})
	if err != nil {
		return fmt.Errorf("export expenses: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("export expenses: write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(exportRow(r)); err != nil {
			return fmt.Errorf("export expenses: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export expenses: flush: %w", err)
	}

	_ = s.audit.Record(ctx, ports.AuditRecord{
		Action:   domain.AuditExport,
		Entity:   domain.EntityExpense,
		Actor:    actor,
		Metadata: map[string]any{"query": exportQueryMetadata(q), "rows": len(rows)},
	})
	return nil
}

func (s *ExpenseService) ensureCategory(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return err
		}
		return fmt.Errorf("lookup category: %w", err)
	}
	return nil
}

func exportRow(d domain.ExpenseDetail) []string {
	user, email := "Unknown", "Unknown"
	if d.User != nil {
		user, email = d.User.Name, d.User.Email
	}
	category := d.Category
	if category == "" {
		category = "Unknown"
	}
	date := ""
	if !d.Date.IsZero() {
		date = d.Date.UTC().Format(time.DateOnly)
	}
	return []string{
		date,
		user,
		email,
		category,
		d.Description,
		strconv.FormatFloat(d.Amount, 'f', -1, 64),
		d.PaymentType,
	}
}

func exportQueryMetadata(q ports.ExportQuery) map[string]any {
	m := map[string]any{}
	if !q.From.IsZero() {
		m["from"] = q.From
	}
	if !q.To.IsZero() {
		m["to"] = q.To
	}
	if q.UserID != "" {
		m["userId"] = q.UserID
	}
	if q.CategoryID != "" {
		m["categoryId"] = q.CategoryID
	}
	return m
}

func expenseSnapshot(e *domain.Expense) map[string]any {
	return map[string]any{
		"amount":      e.Amount,
		"categoryId":  e.CategoryID,
		"description": e.Description,
		"paymentType": e.PaymentType,
		"type":        string(e.Type),
		"date":        e.Date,
	}
}
