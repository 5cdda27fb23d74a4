package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

type propertyFixture struct {
	users *stubUserRepo
	repo  *stubPropertyRepo
	audit *stubAudit
	svc   *PropertyService
	owner *domain.User
	other *domain.User
}

func newPropertyFixture(t *testing.T) *propertyFixture {
	t.Helper()
	f := &propertyFixture{
		users: newStubUserRepo(),
		repo:  newStubPropertyRepo(),
		audit: &stubAudit{},
	}
	f.svc = NewPropertyService(f.repo, f.users, f.audit, newStubIdempotency(), discardLogger)

	users := NewUserService(f.users, nil, nil, discardLogger)
	f.owner = seedUser(t, users)
	f.other = seedUser(t, users)
	return f
}

func parisInput(ownerID int64) ports.CreatePropertyInput {
	return ports.CreatePropertyInput{
		OwnerID:      ownerID,
		Name:         "Appartement Paris",
		Description:  "Bel appartement",
		PropertyType: "apartment",
		City:         "Paris",
		Rooms: []ports.RoomInput{
			{Name: "chambre", Size: 12},
			{Name: "salon", Size: 20},
		},
	}
}

func (f *propertyFixture) seed(t *testing.T) *domain.Property {
	t.Helper()
	p, _, err := f.svc.CreateProperty(context.Background(), parisInput(f.owner.ID))
	if err != nil {
		t.Fatalf("seed property: %v", err)
	}
	return p
}

// ---------------------------------------------------------------------------
// CreateProperty tests
// ---------------------------------------------------------------------------

func TestPropertyService_Create_Success(t *testing.T) {
	f := newPropertyFixture(t)

	in := parisInput(f.owner.ID)
	in.Name = "  Appartement Paris  "
	in.Rooms[0].Name = " chambre "
	p, _, err := f.svc.CreateProperty(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.OwnerID != f.owner.ID {
		t.Errorf("expected owner %d, got %d", f.owner.ID, p.OwnerID)
	}
	if p.Name != "Appartement Paris" {
		t.Errorf("expected trimmed name, got %q", p.Name)
	}
	if len(p.Rooms) != 2 || p.Rooms[0].Name != "chambre" || p.Rooms[1].Size != 20 {
		t.Errorf("rooms not stored in order: %+v", p.Rooms)
	}
	if len(f.audit.events) != 1 || f.audit.events[0].ActorID != f.owner.ID {
		t.Errorf("expected one audit event by the owner, got %+v", f.audit.events)
	}
}

func TestPropertyService_Create_NoRooms(t *testing.T) {
	f := newPropertyFixture(t)

	in := parisInput(f.owner.ID)
	in.Rooms = nil
	p, _, err := f.svc.CreateProperty(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Rooms) != 0 {
		t.Errorf("expected no rooms, got %d", len(p.Rooms))
	}
}

func TestPropertyService_Create_UnknownOwner(t *testing.T) {
	f := newPropertyFixture(t)

	_, _, err := f.svc.CreateProperty(context.Background(), parisInput(999))
	if !errors.Is(err, domain.ErrOwnerNotFound) {
		t.Fatalf("expected ErrOwnerNotFound, got %v", err)
	}
	if len(f.repo.byID) != 0 {
		t.Error("property must not be stored for an unknown owner")
	}
}

func TestPropertyService_Create_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ports.CreatePropertyInput)
	}{
		{"blank name", func(in *ports.CreatePropertyInput) { in.Name = " " }},
		{"blank city", func(in *ports.CreatePropertyInput) { in.City = "" }},
		{"unknown type", func(in *ports.CreatePropertyInput) { in.PropertyType = "castle" }},
		{"missing type", func(in *ports.CreatePropertyInput) { in.PropertyType = "" }},
		{"unnamed room", func(in *ports.CreatePropertyInput) { in.Rooms[1].Name = "" }},
		{"zero size room", func(in *ports.CreatePropertyInput) { in.Rooms[0].Size = 0 }},
		{"negative size room", func(in *ports.CreatePropertyInput) { in.Rooms[0].Size = -3 }},
		{"name too long", func(in *ports.CreatePropertyInput) { in.Name = strings.Repeat("n", 201) }},
		{"city too long", func(in *ports.CreatePropertyInput) { in.City = strings.Repeat("c", 101) }},
		{"room name too long", func(in *ports.CreatePropertyInput) { in.Rooms[0].Name = strings.Repeat("r", 101) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPropertyFixture(t)
			in := parisInput(f.owner.ID)
			tc.mutate(&in)

			_, _, err := f.svc.CreateProperty(context.Background(), in)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(f.repo.byID) != 0 {
				t.Error("invalid property must not be stored")
			}
		})
	}
}

func TestPropertyService_Create_IdempotencyScopedByOwner(t *testing.T) {
	f := newPropertyFixture(t)

	in := parisInput(f.owner.ID)
	in.IdempotencyKey = "same-key"
	first, created, err := f.svc.CreateProperty(context.Background(), in)
	if err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}
	replay, created, err := f.svc.CreateProperty(context.Background(), in)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if created {
		t.Error("replay must not report a new property")
	}
	if replay.ID != first.ID {
		t.Errorf("replay must return property %d, got %d", first.ID, replay.ID)
	}

	other := parisInput(f.other.ID)
	other.IdempotencyKey = "same-key"
	p, _, err := f.svc.CreateProperty(context.Background(), other)
	if err != nil {
		t.Fatalf("other owner create: %v", err)
	}
	if p.ID == first.ID {
		t.Error("idempotency keys must not leak across owners")
	}
	if len(f.repo.byID) != 2 {
		t.Errorf("expected 2 stored properties, got %d", len(f.repo.byID))
	}
}

// ---------------------------------------------------------------------------
// Get / List tests
// ---------------------------------------------------------------------------

func TestPropertyService_Get_NotFound(t *testing.T) {
	f := newPropertyFixture(t)

	_, err := f.svc.GetProperty(context.Background(), 7)
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyService_List_CityFilter(t *testing.T) {
	f := newPropertyFixture(t)
	f.seed(t)
	lyon := parisInput(f.other.ID)
	lyon.City = "Lyon"
	if _, _, err := f.svc.CreateProperty(context.Background(), lyon); err != nil {
		t.Fatalf("create: %v", err)
	}

	cases := []struct {
		city string
		want int
	}{
		{"", 2},
		{"paris", 1},
		{"  PARIS ", 1},
		{"Par", 0},
		{"Marseille", 0},
	}
	for _, tc := range cases {
		got, err := f.svc.ListProperties(context.Background(), ports.PropertyFilter{City: tc.city})
		if err != nil {
			t.Fatalf("city=%q: unexpected error: %v", tc.city, err)
		}
		if len(got) != tc.want {
			t.Errorf("city=%q: expected %d properties, got %d", tc.city, tc.want, len(got))
		}
	}
}

// ---------------------------------------------------------------------------
// UpdateProperty tests
// ---------------------------------------------------------------------------

func TestPropertyService_Update_ReplacesRooms(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)

	patch := ports.PropertyPatch{Rooms: ports.Some([]ports.RoomInput{{Name: "studio", Size: 30}})}
	got, err := f.svc.UpdateProperty(context.Background(), f.owner.ID, p.ID, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Rooms) != 1 || got.Rooms[0].Name != "studio" {
		t.Errorf("expected rooms to be replaced, got %+v", got.Rooms)
	}
	if got.Name != p.Name {
		t.Errorf("unsent fields must be kept, got name %q", got.Name)
	}
}

func TestPropertyService_Update_NonOwnerForbidden(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)

	_, err := f.svc.UpdateProperty(context.Background(), f.other.ID, p.ID, ports.PropertyPatch{Name: ports.Some("Mine now")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.repo.updates != 0 {
		t.Error("forbidden update must not reach the repository")
	}
}

func TestPropertyService_Update_NotFoundBeforeForbidden(t *testing.T) {
	f := newPropertyFixture(t)

	_, err := f.svc.UpdateProperty(context.Background(), f.other.ID, 404, ports.PropertyPatch{Name: ports.Some("x")})
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyService_Update_ForbiddenBeforeValidation(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)

	_, err := f.svc.UpdateProperty(context.Background(), f.other.ID, p.ID, ports.PropertyPatch{PropertyType: ports.Some("castle")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPropertyService_Update_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		patch ports.PropertyPatch
	}{
		{"empty patch", ports.PropertyPatch{}},
		{"null name", ports.PropertyPatch{Name: ports.Null[string]()}},
		{"null city", ports.PropertyPatch{City: ports.Null[string]()}},
		{"blank city", ports.PropertyPatch{City: ports.Some("  ")}},
		{"bad type", ports.PropertyPatch{PropertyType: ports.Some("castle")}},
		{"bad room", ports.PropertyPatch{Rooms: ports.Some([]ports.RoomInput{{Name: "x", Size: 0}})}},
		{"city too long", ports.PropertyPatch{City: ports.Some(strings.Repeat("c", 101))}},
		{"name too long", ports.PropertyPatch{Name: ports.Some(strings.Repeat("n", 201))}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPropertyFixture(t)
			p := f.seed(t)

			_, err := f.svc.UpdateProperty(context.Background(), f.owner.ID, p.ID, tc.patch)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if f.repo.updates != 0 {
				t.Error("invalid patch must not reach the repository")
			}
		})
	}
}

func TestPropertyService_Update_NullClearsOptionalParts(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)

	patch := ports.PropertyPatch{
		Description: ports.Null[string](),
		Rooms:       ports.Null[[]ports.RoomInput](),
	}
	got, err := f.svc.UpdateProperty(context.Background(), f.owner.ID, p.ID, patch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Description != "" {
		t.Errorf("expected cleared description, got %q", got.Description)
	}
	if len(got.Rooms) != 0 {
		t.Errorf("expected no rooms, got %d", len(got.Rooms))
	}
}

func TestPropertyService_Update_TrimsValues(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)

	got, err := f.svc.UpdateProperty(context.Background(), f.owner.ID, p.ID, ports.PropertyPatch{
		City:         ports.Some("  Lyon "),
		PropertyType: ports.Some(" house "),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.City != "Lyon" || got.Type != domain.PropertyTypeHouse {
		t.Errorf("expected trimmed values, got city=%q type=%q", got.City, got.Type)
	}
}

// ---------------------------------------------------------------------------
// DeleteProperty tests
// ---------------------------------------------------------------------------

func TestPropertyService_Delete_Owner(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)

	if err := f.svc.DeleteProperty(context.Background(), f.owner.ID, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.svc.GetProperty(context.Background(), p.ID); !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Errorf("expected property to be gone, got %v", err)
	}
	last := f.audit.events[len(f.audit.events)-1]
	if last.Action != domain.AuditPropertyDeleted {
		t.Errorf("expected property.deleted audit event, got %q", last.Action)
	}
}

func TestPropertyService_Delete_NonOwnerForbidden(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)

	err := f.svc.DeleteProperty(context.Background(), f.other.ID, p.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if f.repo.deletes != 0 {
		t.Error("forbidden delete must not reach the repository")
	}
}

func TestPropertyService_Delete_NotFound(t *testing.T) {
	f := newPropertyFixture(t)

	err := f.svc.DeleteProperty(context.Background(), f.owner.ID, 55)
	if !errors.Is(err, domain.ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestPropertyService_Create_LengthBoundary(t *testing.T) {
	f := newPropertyFixture(t)
	in := parisInput(f.owner.ID)
	in.Name = strings.Repeat("n", domain.MaxPropertyNameLength)
	in.City = strings.Repeat("ï", domain.MaxCityLength)
	in.Rooms[0].Name = strings.Repeat("r", domain.MaxRoomNameLength)

	if _, _, err := f.svc.CreateProperty(context.Background(), in); err != nil {
		t.Fatalf("values at the column limits must be accepted: %v", err)
	}
}

func TestPropertyService_Update_ReportsFirstNullField(t *testing.T) {
	f := newPropertyFixture(t)
	p := f.seed(t)
	patch := ports.PropertyPatch{
		Name:         ports.Null[string](),
		PropertyType: ports.Null[string](),
		City:         ports.Null[string](),
	}

	for i := 0; i < 20; i++ {
		_, err := f.svc.UpdateProperty(context.Background(), f.owner.ID, p.ID, patch)
		if err == nil || err.Error() != "name cannot be empty" {
			t.Fatalf("expected the name error first, got %v", err)
		}
	}
}
