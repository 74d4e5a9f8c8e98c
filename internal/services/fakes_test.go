package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"evently/internal/domain"
)

// fakeEventRepo is an in-memory EventRepository for tests. Insertion order is
// preserved so List results are deterministic.
type fakeEventRepo struct {
	byID   map[string]*domain.Event
	ids    []string
	nextID int

	createErr error
	listErr   error
	clearErr  error
	clearFn   func(ctx context.Context) error
	cleared   []string
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) add(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
		f.nextID++
	}
	f.byID[e.ID] = e
	f.ids = append(f.ids, e.ID)
	return e
}

func (f *fakeEventRepo) Create(ctx context.Context, draft *domain.EventDraft) (*domain.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	price := draft.Price
	if draft.IsFree {
		price = "0"
	}
	e := &domain.Event{
		Title:         draft.Title,
		Description:   draft.Description,
		Location:      draft.Location,
		StartDateTime: draft.StartDateTime,
		EndDateTime:   draft.EndDateTime,
		Price:         price,
		IsFree:        draft.IsFree,
	}
	if draft.OrganizerID != "" {
		e.Organizer = &domain.UserSummary{ID: draft.OrganizerID}
	}
	if draft.CategoryID != "" {
		e.Category = &domain.CategorySummary{ID: draft.CategoryID}
	}
	return f.add(e), nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := f.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) Update(ctx context.Context, patch *domain.EventPatch) (*domain.Event, error) {
	e, ok := f.byID[patch.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Description != nil {
		e.Description = *patch.Description
	}
	if patch.Price != nil {
		e.Price = *patch.Price
	}
	if patch.CategoryID != nil {
		e.Category = &domain.CategorySummary{ID: *patch.CategoryID}
	}
	return e, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, v := range f.ids {
		if v == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeEventRepo) matches(e *domain.Event, filter domain.EventFilter) bool {
	if filter.TitleQuery != "" && !strings.Contains(strings.ToLower(e.Title), strings.ToLower(filter.TitleQuery)) {
		return false
	}
	if filter.CategoryID != "" && (e.Category == nil || e.Category.ID != filter.CategoryID) {
		return false
	}
	if filter.OrganizerID != "" && (e.Organizer == nil || e.Organizer.ID != filter.OrganizerID) {
		return false
	}
	if filter.ExcludeEventID != "" && e.ID == filter.ExcludeEventID {
		return false
	}
	return true
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	var all []*domain.Event
	for _, id := range f.ids {
		if f.matches(f.byID[id], filter) {
			all = append(all, f.byID[id])
		}
	}
	total := len(all)
	offset := params.Offset()
	if offset > total {
		offset = total
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeEventRepo) ClearOrganizer(ctx context.Context, organizerID string) error {
	if f.clearFn != nil {
		if err := f.clearFn(ctx); err != nil {
			return err
		}
	}
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, organizerID)
	for _, e := range f.byID {
		if e.Organizer != nil && e.Organizer.ID == organizerID {
			e.Organizer = nil
		}
	}
	return nil
}

// fakeCategoryRepo is an in-memory CategoryRepository for tests.
type fakeCategoryRepo struct {
	categories []*domain.Category
	nextID     int
	err        error
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{nextID: 1}
}

func (f *fakeCategoryRepo) add(name string) *domain.Category {
	c := &domain.Category{ID: fmt.Sprintf("cat-%d", f.nextID), Name: name}
	f.nextID++
	f.categories = append(f.categories, c)
	return c
}

func (f *fakeCategoryRepo) Create(ctx context.Context, name string) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.add(name), nil
}

func (f *fakeCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, c := range f.categories {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(name)) {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.categories, nil
}

// fakeUserRepo is an in-memory UserRepository for tests.
type fakeUserRepo struct {
	byID   map[string]*domain.User
	nextID int

	createErr error
	deleteErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) add(u *domain.User) *domain.User {
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", f.nextID)
		f.nextID++
	}
	f.byID[u.ID] = u
	return u
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return domain.ErrDuplicateEmail
		}
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByExternalKey(ctx context.Context, externalKey string) (*domain.User, error) {
	for _, u := range f.byID {
		if u.ExternalKey == externalKey {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, externalKey string, patch *domain.UserPatch) (*domain.User, error) {
	u, err := f.GetByExternalKey(ctx, externalKey)
	if err != nil {
		return nil, err
	}
	if patch.FirstName != nil {
		u.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.PhotoURL != nil {
		u.PhotoURL = *patch.PhotoURL
	}
	return u, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeOrderRepo is an in-memory OrderRepository for tests.
type fakeOrderRepo struct {
	orders []*domain.Order
	nextID int

	createErr error
	clearErr  error
	clearFn   func(ctx context.Context) error
	cleared   []string
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{nextID: 1}
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	o.ID = fmt.Sprintf("order-%d", f.nextID)
	f.nextID++
	f.orders = append(f.orders, o)
	return nil
}

func (f *fakeOrderRepo) ListByEvent(ctx context.Context, eventID, search string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		if o.EventID != eventID {
			continue
		}
		if search != "" {
			if o.Buyer == nil {
				continue
			}
			full := strings.ToLower(o.Buyer.FirstName + " " + o.Buyer.LastName)
			if !strings.Contains(full, strings.ToLower(search)) {
				continue
			}
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderRepo) ClearBuyer(ctx context.Context, buyerID string) error {
	if f.clearFn != nil {
		if err := f.clearFn(ctx); err != nil {
			return err
		}
	}
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = append(f.cleared, buyerID)
	for _, o := range f.orders {
		if o.Buyer != nil && o.Buyer.ID == buyerID {
			o.Buyer = nil
		}
	}
	return nil
}

// fakeInvalidator records the stale paths it was asked to signal.
type fakeInvalidator struct {
	mu    sync.Mutex
	paths []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paths = append(f.paths, path)
}

func (f *fakeInvalidator) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.paths...)
}

// fakeEmailService counts sends per template.
type fakeEmailService struct {
	welcomes      []*domain.WelcomeMessageEmailData
	confirmations []*domain.OrderConfirmationEmailData
	err           error
}

func (f *fakeEmailService) SendWelcomeMessage(ctx context.Context, data *domain.WelcomeMessageEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, data)
	return nil
}

func (f *fakeEmailService) SendOrderConfirmation(ctx context.Context, data *domain.OrderConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.confirmations = append(f.confirmations, data)
	return nil
}
