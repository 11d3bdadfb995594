package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ledgerly/expense-tracker/internal/core/domain"
	"github.com/ledgerly/expense-tracker/internal/core/ports"
)

var errStoreDown = errors.New("store unavailable")

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	seq    int
	setErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.DeletedAt != nil {
		at := *u.DeletedAt
		clone.DeletedAt = &at
	}
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	c := cloneUser(user)
	c.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[c.ID] = cloneUser(c)
	return c, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) SetRefreshToken(_ context.Context, id, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setErr != nil {
		return r.setErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.RefreshToken = token
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = false
	u.DeletedAt = &at
	u.RefreshToken = ""
	return nil
}

// put stores u as-is, bypassing the service layer.
func (r *stubUserRepo) put(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = cloneUser(u)
}

func (r *stubUserRepo) storedToken(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u.RefreshToken
	}
	return ""
}

// ---------------------------------------------------------------------------
// Audit
// ---------------------------------------------------------------------------

type stubAuditRepo struct {
	mu        sync.Mutex
	entries   []*domain.AuditLogEntry
	insertErr error
	lastQuery ports.AuditFilter
}

func (r *stubAuditRepo) Insert(_ context.Context, e *domain.AuditLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	c := *e
	c.ID = fmt.Sprintf("audit-%d", len(r.entries)+1)
	e.ID = c.ID
	r.entries = append(r.entries, &c)
	return nil
}

func (r *stubAuditRepo) List(_ context.Context, f ports.AuditFilter) ([]domain.AuditLogView, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = f
	out := make([]domain.AuditLogView, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		out = append(out, domain.AuditLogView{AuditLogEntry: *r.entries[i]})
	}
	return out, nil
}

func (r *stubAuditRepo) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

func (r *stubAuditRepo) last() *domain.AuditLogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return nil
	}
	return r.entries[len(r.entries)-1]
}

type stubAuditSink struct {
	got []domain.AuditLogEntry
}

func (s *stubAuditSink) Enqueue(e domain.AuditLogEntry) { s.got = append(s.got, e) }

// newRecorder returns an AuditService over a fresh stub repository.
func newRecorder() (*AuditService, *stubAuditRepo) {
	repo := &stubAuditRepo{}
	return NewAuditService(repo, nil, nopLog), repo
}

// ---------------------------------------------------------------------------
// Denylist
// ---------------------------------------------------------------------------

type stubDenylist struct {
	revoked   map[string]time.Duration
	revokeErr error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Duration)}
}

func (d *stubDenylist) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if d.revokeErr != nil {
		return d.revokeErr
	}
	d.revoked[id] = ttl
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := d.revoked[id]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Categories
// ---------------------------------------------------------------------------

type stubCategoryRepo struct {
	cats map[string]*domain.Category
	seq  int
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{cats: make(map[string]*domain.Category)}
}

func cloneCategory(c *domain.Category) *domain.Category {
	clone := *c
	return &clone
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	for _, existing := range r.cats {
		if existing.Name == c.Name {
			return nil, domain.ErrCategoryExists
		}
	}
	r.seq++
	clone := cloneCategory(c)
	clone.ID = fmt.Sprintf("cat-%d", r.seq)
	r.cats[clone.ID] = cloneCategory(clone)
	return clone, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.cats[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	return cloneCategory(c), nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*domain.Category, error) {
	for _, c := range r.cats {
		if c.Name == name {
			return cloneCategory(c), nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) List(_ context.Context, f ports.CategoryFilter) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range r.cats {
		if f.Active != nil && c.IsActive != *f.Active {
			continue
		}
		if f.Type != "" && c.Type != f.Type {
			continue
		}
		out = append(out, cloneCategory(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) error {
	if _, ok := r.cats[c.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	r.cats[c.ID] = cloneCategory(c)
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.cats[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.cats, id)
	return nil
}

// ---------------------------------------------------------------------------
// Expenses
// ---------------------------------------------------------------------------

type stubExpenseRepo struct {
	items        map[string]*domain.Expense
	seq          int
	details      []domain.ExpenseDetail
	lastFilter   ports.ExpenseFilter
	analytics    *domain.Analytics
	analyticsErr error
	analyticsN   int
}

func newStubExpenseRepo() *stubExpenseRepo {
	return &stubExpenseRepo{items: make(map[string]*domain.Expense)}
}

func cloneExpense(e *domain.Expense) *domain.Expense {
	clone := *e
	return &clone
}

func (r *stubExpenseRepo) Create(_ context.Context, e *domain.Expense) (*domain.Expense, error) {
	r.seq++
	clone := cloneExpense(e)
	clone.ID = fmt.Sprintf("exp-%d", r.seq)
	r.items[clone.ID] = cloneExpense(clone)
	return clone, nil
}

func (r *stubExpenseRepo) FindByID(_ context.Context, id string) (*domain.Expense, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, domain.ErrExpenseNotFound
	}
	return cloneExpense(e), nil
}

func (r *stubExpenseRepo) ListByUser(_ context.Context, userID string) ([]*domain.Expense, error) {
	var out []*domain.Expense
	for _, e := range r.items {
		if e.UserID == userID && !e.IsDeleted {
			out = append(out, cloneExpense(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubExpenseRepo) ListDetailed(_ context.Context, f ports.ExpenseFilter) ([]domain.ExpenseDetail, error) {
	r.lastFilter = f
	return r.details, nil
}

func (r *stubExpenseRepo) Update(_ context.Context, e *domain.Expense) error {
	if _, ok := r.items[e.ID]; !ok {
		return domain.ErrExpenseNotFound
	}
	r.items[e.ID] = cloneExpense(e)
	return nil
}

func (r *stubExpenseRepo) MarkDeleted(_ context.Context, id string) error {
	e, ok := r.items[id]
	if !ok {
		return domain.ErrExpenseNotFound
	}
	e.IsDeleted = true
	return nil
}

func (r *stubExpenseRepo) Analytics(_ context.Context) (*domain.Analytics, error) {
	r.analyticsN++
	if r.analyticsErr != nil {
		return nil, r.analyticsErr
	}
	if r.analytics == nil {
		return &domain.Analytics{}, nil
	}
	a := *r.analytics
	return &a, nil
}

// ---------------------------------------------------------------------------
// Analytics cache
// ---------------------------------------------------------------------------

type stubAnalyticsCache struct {
	value  *domain.Analytics
	getErr error
	sets   int
}

func (c *stubAnalyticsCache) Get(_ context.Context) (*domain.Analytics, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.value, nil
}

func (c *stubAnalyticsCache) Set(_ context.Context, a *domain.Analytics) error {
	c.sets++
	c.value = a
	return nil
}
