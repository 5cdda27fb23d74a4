package service

import (
	"fmt"
	"strings"

	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
	"github.com/property-management/property-api/internal/pkg/validation"
)

// rules holds the field constraints shared by creation and patching.
type rules struct {
	v *validation.Validator
}

func newRules() rules {
	return rules{v: validation.New()}
}

var propertyTypeTag = func() string {
	names := make([]string, len(domain.PropertyTypes))
	for i, t := range domain.PropertyTypes {
		names[i] = string(t)
	}
	return "oneof=" + strings.Join(names, " ")
}()

// text requires a non-blank value of at most max characters.
func (r rules) text(field, value string, max int) error {
	return invalid(r.v.Var(field, value, fmt.Sprintf("notblank,max=%d", max)))
}

func (r rules) date(field, value string) error {
	if err := invalid(r.v.Var(field, value, "notblank")); err != nil {
		return err
	}
	return invalid(r.v.Var(field, value, "datetime="+domain.DateLayout))
}

func (r rules) propertyType(value string) error {
	if err := invalid(r.v.Var("property_type", value, "notblank")); err != nil {
		return err
	}
	return invalid(r.v.Var("property_type", value, propertyTypeTag))
}

func (r rules) rooms(rooms []ports.RoomInput) error {
	for i, room := range rooms {
		if err := r.text(fmt.Sprintf("rooms_details[%d].name", i), strings.TrimSpace(room.Name), domain.MaxRoomNameLength); err != nil {
			return err
		}
		if err := invalid(r.v.Var(fmt.Sprintf("rooms_details[%d].size", i), room.Size, "gt=0")); err != nil {
			return err
		}
	}
	return nil
}

// cannotBeNull rejects an explicit null on a field that must keep a value.
func cannotBeNull[T any](field string, o ports.Optional[T]) error {
	if o.Set && o.Null {
		return domain.NewValidationError(field + " cannot be empty")
	}
	return nil
}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return domain.NewValidationError(err.Error())
}

func toRooms(in []ports.RoomInput) []domain.Room {
	rooms := make([]domain.Room, len(in))
	for i, r := range in {
		rooms[i] = domain.Room{Name: strings.TrimSpace(r.Name), Size: r.Size}
	}
	return rooms
}
