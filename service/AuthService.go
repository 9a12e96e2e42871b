package service

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/raobaba/SkillBridge-Pro-sub006/dto"
	"github.com/raobaba/SkillBridge-Pro-sub006/model"
	"github.com/raobaba/SkillBridge-Pro-sub006/repository"
	"github.com/raobaba/SkillBridge-Pro-sub006/util"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

type AuthService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewAuthService(u repository.UserRepository, r repository.RoleRepository) *AuthService {
	return &AuthService{userRepo: u, roleRepo: r}
}

// Register creates a new user with the default developer role.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	defaultRole, err := s.roleRepo.GetByCode(string(model.RoleDeveloper))
	if err != nil {
		// A user without any role would pass authentication but fail every
		// role gate, so registration must not proceed without one.
		return nil, errors.New("system error: default role not found")
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashed,
		Roles:        []model.Role{*defaultRole},
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Roles: user.RoleCodes(),
	}, nil
}

// Login validates credentials and mints an access token with the user's
// current roles baked in.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := util.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	claims := &dto.AuthClaims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Roles:  user.RoleCodes(),
	}
	token, err := util.IssueToken(claims, &util.IssueOptions{TokenID: uuid.NewString()})
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int(s.accessTTLSeconds()),
	}, nil
}

// Refresh rotates a presented token: the codec verifies it, strips the
// temporal fields and reissues the remaining claims under a fresh jti.
func (s *AuthService) Refresh(req *dto.RefreshRequest) (*dto.RefreshResponse, error) {
	token, err := util.RefreshToken(req.Token, uuid.NewString())
	if err != nil {
		if errors.Is(err, util.ErrNoSigningKey) {
			return nil, err
		}
		return nil, ErrInvalidToken
	}

	return &dto.RefreshResponse{
		AccessToken: token,
		ExpiresIn:   int(s.accessTTLSeconds()),
	}, nil
}

func (s *AuthService) accessTTLSeconds() int64 {
	return int64(util.AccessTokenTTL() / time.Second)
}
