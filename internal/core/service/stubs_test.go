package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*domain.User
	createErr error // if set, Create returns this error
	updates   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	clone := *u
	r.byID[u.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, p ports.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	r.updates++
	if p.FirstName.HasValue() {
		u.FirstName = p.FirstName.Value
	}
	if p.LastName.HasValue() {
		u.LastName = p.LastName.Value
	}
	if p.DateOfBirth.Set {
		u.DateOfBirth = p.DateOfBirth.Value
	}
	clone := *u
	return &clone, nil
}

type stubPropertyRepo struct {
	mu        sync.Mutex
	nextID    int64
	byID      map[int64]*domain.Property
	createErr error
	updates   int
	deletes   int
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{byID: make(map[int64]*domain.Property)}
}

func cloneProperty(p *domain.Property) *domain.Property {
	clone := *p
	clone.Rooms = append([]domain.Room(nil), p.Rooms...)
	return &clone
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.byID[p.ID] = cloneProperty(p)
	return nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id int64) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	return cloneProperty(p), nil
}

// List applies the same case-insensitive city match the SQL store uses.
func (r *stubPropertyRepo) List(_ context.Context, f ports.PropertyFilter) ([]*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Property{}
	for _, p := range r.byID {
		if f.City != "" && !strings.EqualFold(p.City, f.City) {
			continue
		}
		out = append(out, cloneProperty(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubPropertyRepo) Update(_ context.Context, id int64, patch ports.PropertyPatch) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	r.updates++
	if patch.Name.HasValue() {
		p.Name = patch.Name.Value
	}
	if patch.Description.Set {
		p.Description = patch.Description.Value
	}
	if patch.PropertyType.HasValue() {
		p.Type = domain.PropertyType(patch.PropertyType.Value)
	}
	if patch.City.HasValue() {
		p.City = patch.City.Value
	}
	if patch.Rooms.Set {
		p.Rooms = toRooms(patch.Rooms.Value)
	}
	return cloneProperty(p), nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	r.deletes++
	delete(r.byID, id)
	return nil
}

// ---------------------------------------------------------------------------
// Side-effect stubs
// ---------------------------------------------------------------------------

type stubAudit struct {
	events []domain.AuditEvent
	err    error
}

func (a *stubAudit) Record(_ context.Context, e domain.AuditEvent) error {
	if a.err != nil {
		return a.err
	}
	a.events = append(a.events, e)
	return nil
}

type stubIdempotency struct {
	keys      map[string]int64
	lookupErr error
}

func newStubIdempotency() *stubIdempotency {
	return &stubIdempotency{keys: make(map[string]int64)}
}

func (s *stubIdempotency) Lookup(_ context.Context, scope, key string) (int64, bool, error) {
	if s.lookupErr != nil {
		return 0, false, s.lookupErr
	}
	id, ok := s.keys[scope+"|"+key]
	return id, ok, nil
}

func (s *stubIdempotency) Remember(_ context.Context, scope, key string, id int64) error {
	if _, ok := s.keys[scope+"|"+key]; !ok {
		s.keys[scope+"|"+key] = id
	}
	return nil
}

var errBoom = errors.New("db unavailable")
