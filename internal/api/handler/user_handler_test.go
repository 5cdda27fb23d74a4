package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/property-management/property-api/internal/api/metrics"
	"github.com/property-management/property-api/internal/api/middleware"
	"github.com/property-management/property-api/internal/core/domain"
	"github.com/property-management/property-api/internal/core/ports"
)

type stubUserService struct {
	createFn func(ctx context.Context, input ports.CreateUserInput) (*domain.User, error)
	getFn    func(ctx context.Context, id int64) (*domain.User, error)
	listFn   func(ctx context.Context) ([]*domain.User, error)
	updateFn func(ctx context.Context, callerID, id int64, patch ports.UserPatch) (*domain.User, error)
	// replayed makes CreateUser answer like an idempotent replay.
	replayed bool
}

func (s *stubUserService) CreateUser(ctx context.Context, input ports.CreateUserInput) (*domain.User, bool, error) {
	u, err := s.createFn(ctx, input)
	return u, err == nil && !s.replayed, err
}

func (s *stubUserService) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) UpdateUser(ctx context.Context, callerID, id int64, patch ports.UserPatch) (*domain.User, error) {
	return s.updateFn(ctx, callerID, id, patch)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestUserHandler_Create_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		createFn: func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
			if in.FirstName != "Alice" || in.DateOfBirth != "1990-01-01" || in.IdempotencyKey != "k-1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 1, FirstName: in.FirstName, LastName: in.LastName, DateOfBirth: in.DateOfBirth}, nil
		},
	}
	h := NewUserHandler(stub)

	req := jsonRequest(http.MethodPost, "/users", `{"first_name":"Alice","last_name":"Owner","date_of_birth":"1990-01-01"}`)
	req.Header.Set(HeaderIdempotencyKey, "k-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != float64(1) || resp["first_name"] != "Alice" || resp["date_of_birth"] != "1990-01-01" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestUserHandler_Create_ValidationErrors(t *testing.T) {
	cases := map[string]string{
		"missing fields": `{}`,
		"blank name":     `{"first_name":"  ","last_name":"Owner","date_of_birth":"1990-01-01"}`,
		"bad date":       `{"first_name":"Alice","last_name":"Owner","date_of_birth":"1990/01/01"}`,
		"impossible day": `{"first_name":"Alice","last_name":"Owner","date_of_birth":"2023-02-30"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubUserService{
				createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
					t.Fatalf("should not be called")
					return nil, nil
				},
			}
			c := e.NewContext(jsonRequest(http.MethodPost, "/users", body), httptest.NewRecorder())

			err := NewUserHandler(stub).Create(c)
			if !domain.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUserHandler_Create_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{}
	c := e.NewContext(jsonRequest(http.MethodPost, "/users", "not-json"), httptest.NewRecorder())

	err := NewUserHandler(stub).Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestUserHandler_Get_NonNumericID(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(context.Context, int64) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/abc", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := NewUserHandler(stub).Get(c)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserHandler_Get_ClearedDateIsNull(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		getFn: func(_ context.Context, id int64) (*domain.User, error) {
			return &domain.User{ID: id, FirstName: "Bob", LastName: "Landlord"}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users/2", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := NewUserHandler(stub).Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"date_of_birth":null`) {
		t.Fatalf("expected null date_of_birth, got %s", rec.Body.String())
	}
}

func TestUserHandler_Update_PassesPresenceToService(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(_ context.Context, callerID, id int64, p ports.UserPatch) (*domain.User, error) {
			if callerID != 5 || id != 5 {
				t.Fatalf("unexpected ids caller=%d id=%d", callerID, id)
			}
			if !p.LastName.HasValue() || p.LastName.Value != "Smith" {
				t.Fatalf("expected last_name Smith, got %+v", p.LastName)
			}
			if !p.DateOfBirth.Set || !p.DateOfBirth.Null {
				t.Fatalf("expected explicit null date, got %+v", p.DateOfBirth)
			}
			if p.FirstName.Set {
				t.Fatalf("first_name was not sent")
			}
			return &domain.User{ID: id, FirstName: "Alice", LastName: "Smith"}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/users/5", `{"last_name":"Smith","date_of_birth":null}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("5")
	c.Set("user_id", int64(5))

	if err := NewUserHandler(stub).Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Update_WithoutIdentity(t *testing.T) {
	e := newTestEcho()
	c := e.NewContext(jsonRequest(http.MethodPatch, "/users/5", `{"first_name":"x"}`), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := NewUserHandler(&stubUserService{}).Update(c)
	if !errors.Is(err, domain.ErrMissingIdentity) {
		t.Fatalf("expected ErrMissingIdentity, got %v", err)
	}
}

func TestUserHandler_Update_Forbidden(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(context.Context, int64, int64, ports.UserPatch) (*domain.User, error) {
			return nil, domain.ErrForbidden
		},
	}
	req := jsonRequest(http.MethodPatch, "/users/5", `{"first_name":"x"}`)
	req.Header.Set(middleware.HeaderUserID, "6")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("5")

	err := middleware.RequireIdentity()(NewUserHandler(stub).Update)(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(context.Context) ([]*domain.User, error) {
			return []*domain.User{{ID: 1, FirstName: "Alice"}, {ID: 2, FirstName: "Bob"}}, nil
		},
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/users", nil), rec)

	if err := NewUserHandler(stub).List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 users, got %d", len(resp))
	}
}

func TestUserHandler_Create_CountsOnlyNewUsers(t *testing.T) {
	e := newTestEcho()
	body := `{"first_name":"Alice","last_name":"Owner","date_of_birth":"1990-01-01"}`
	stub := &stubUserService{
		createFn: func(context.Context, ports.CreateUserInput) (*domain.User, error) {
			return &domain.User{ID: 1, FirstName: "Alice", LastName: "Owner"}, nil
		},
	}
	h := NewUserHandler(stub)

	before := testutil.ToFloat64(metrics.UsersCreatedTotal)
	if err := h.Create(e.NewContext(jsonRequest(http.MethodPost, "/users", body), httptest.NewRecorder())); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := testutil.ToFloat64(metrics.UsersCreatedTotal); got != before+1 {
		t.Fatalf("expected counter %v, got %v", before+1, got)
	}

	stub.replayed = true
	rec := httptest.NewRecorder()
	if err := h.Create(e.NewContext(jsonRequest(http.MethodPost, "/users", body), rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(metrics.UsersCreatedTotal); got != before+1 {
		t.Fatalf("replay must not be counted, counter is %v", got)
	}
}
