package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"career-hub/internal/domain/employee"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	employees employee.Repository
}

func NewService(employees employee.Repository) *Service {
	return &Service{employees: employees}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (employee.Employee, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" {
		return employee.Employee{}, ErrInvalidInput
	}
	if !isValidPassword(in.Password) {
		return employee.Employee{}, ErrInvalidInput
	}

	role := employee.RoleEmployee
	if in.Role != "" {
		parsed, ok := employee.ParseRole(in.Role)
		if !ok {
			return employee.Employee{}, ErrInvalidInput
		}
		role = parsed
	}

	exists, err := s.employees.ExistsByEmail(ctx, email)
	if err != nil {
		return employee.Employee{}, ErrInternal
	}
	if exists {
		return employee.Employee{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return employee.Employee{}, ErrInternal
	}

	emp := employee.Employee{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}

	if err := s.employees.Create(ctx, emp); err != nil {
		exists, exErr := s.employees.ExistsByEmail(ctx, email)
		if exErr == nil && exists {
			return employee.Employee{}, ErrEmailAlreadyRegistered
		}
		return employee.Employee{}, ErrInternal
	}

	created, err := s.employees.GetByID(ctx, emp.ID)
	if err != nil {
		return employee.Employee{}, ErrInternal
	}
	return sanitize(created), nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (employee.Employee, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return employee.Employee{}, ErrInvalidCredentials
	}

	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return employee.Employee{}, ErrInvalidCredentials
		}
		return employee.Employee{}, ErrInternal
	}
	if !emp.Active {
		return employee.Employee{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(in.Password)); err != nil {
		return employee.Employee{}, ErrInvalidCredentials
	}

	return sanitize(emp), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}

func sanitize(e employee.Employee) employee.Employee {
	e.PasswordHash = ""
	return e
}
