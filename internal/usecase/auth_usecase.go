package usecase

import (
	"context"
	"errors"

	"career-hub/internal/domain/employee"
	"career-hub/internal/pkg/jwt"
	ucauth "career-hub/internal/usecase/auth"
)

var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (employee.Employee, string, string, error)
	Login(ctx context.Context, in ucauth.LoginInput) (employee.Employee, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

type Auth struct {
	authSvc   *ucauth.Service
	employees employee.Repository
	jwt       jwt.Service
}

func NewAuthUsecase(employees employee.Repository, jwtSvc jwt.Service) *Auth {
	return &Auth{authSvc: ucauth.NewService(employees), employees: employees, jwt: jwtSvc}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (employee.Employee, string, string, error) {
	emp, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return employee.Employee{}, "", "", err
	}
	return u.issueTokens(emp)
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (employee.Employee, string, string, error) {
	emp, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return employee.Employee{}, "", "", err
	}
	return u.issueTokens(emp)
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrRefreshTokenExpired
		}
		return "", "", ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return "", "", ErrInvalidRefreshToken
	}

	emp, err := u.employees.GetByID(ctx, claims.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			return "", "", ErrUnauthorized
		}
		return "", "", ErrInternal
	}
	if !emp.Active {
		return "", "", ErrUnauthorized
	}

	_, access, refresh, err := u.issueTokens(emp)
	return access, refresh, err
}

func (u *Auth) issueTokens(emp employee.Employee) (employee.Employee, string, string, error) {
	access, err := u.jwt.GenerateAccessToken(emp.ID, emp.Email, string(emp.Role))
	if err != nil {
		return employee.Employee{}, "", "", ErrInternal
	}
	refresh, err := u.jwt.GenerateRefreshToken(emp.ID)
	if err != nil {
		return employee.Employee{}, "", "", ErrInternal
	}
	return emp, access, refresh, nil
}
