package service

import (
	"time"

	"revhub/internal/apperr"
	"revhub/internal/config"
	"revhub/internal/model"
	"revhub/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the thin auth collaborator surface: register, login,
// and token issuance. Request-side verification happens in middleware.
type AuthService interface {
	Register(name, email, password string) (*model.User, *TokenPair, error)
	Login(email, password string) (*model.User, *TokenPair, error)
	Me(userID string) (*model.User, error)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Register(name, email, password string) (*model.User, *TokenPair, error) {
	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, apperr.Internal("register lookup", err)
	}
	if existing != nil {
		return nil, nil, apperr.New(apperr.KindConflict, "EMAIL_TAKEN", "email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, apperr.Internal("password hash", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, nil, apperr.Internal("register create", err)
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *authService) Login(email, password string) (*model.User, *TokenPair, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, nil, apperr.Internal("login lookup", err)
	}
	if user == nil {
		return nil, nil, apperr.New(apperr.KindForbidden, "INVALID_CREDENTIALS", "invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, nil, apperr.New(apperr.KindForbidden, "INVALID_CREDENTIALS", "invalid email or password")
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

func (s *authService) Me(userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, apperr.Internal("me lookup", err)
	}
	if user == nil {
		return nil, apperr.ErrUserNotFound
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := s.signToken(user, "access", s.cfg.AccessTokenExpiry)
	if err != nil {
		return nil, apperr.Internal("token signing", err)
	}
	refresh, err := s.signToken(user, "refresh", s.cfg.RefreshTokenExpiry)
	if err != nil {
		return nil, apperr.Internal("token signing", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *authService) signToken(user *model.User, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"typ":  tokenType,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
