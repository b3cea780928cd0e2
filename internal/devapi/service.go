package devapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/petcare/petcare-client/internal/core/domain"
)

const minPasswordLength = 8

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Username    string `json:"username"     validate:"required,max=150"`
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

// ProfileInput is a partial profile update; username and role are read-only.
type ProfileInput struct {
	Email       *string `json:"email"        validate:"omitempty,email"`
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	PhoneNumber *string `json:"phone_number"`
}

// PasswordInput is the change-password payload.
type PasswordInput struct {
	OldPassword        string `json:"old_password"         validate:"required"`
	NewPassword        string `json:"new_password"         validate:"required"`
	ConfirmNewPassword string `json:"confirm_new_password" validate:"required"`
}

// AuthService implements the user endpoints of the backend.
type AuthService struct {
	repo      AccountRepository
	revoked   RevocationList
	jwtSecret []byte
	tokenTTL  time.Duration
	roles     map[string]struct{}
	now       func() time.Time
}

func NewAuthService(repo AccountRepository, revoked RevocationList, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:      repo,
		revoked:   revoked,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		roles: map[string]struct{}{
			domain.RoleAdministrator: {},
			domain.RoleCustomer:      {},
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Account, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.checkAvailable(ctx, in.Username, in.Email, 0); err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	created, err := s.repo.Create(ctx, &Account{
		Username:     in.Username,
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		PhoneNumber:  in.PhoneNumber,
		Role:         domain.RoleCustomer,
		PasswordHash: string(hash),
		IsActive:     true,
		DateJoined:   now,
		UpdatedAt:    now,
	})
	if errors.Is(err, ErrAccountExists) {
		return nil, "", fieldError("username", msgUsernameTaken)
	}
	if err != nil {
		return nil, "", err
	}

	token, err := s.issueToken(created)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login accepts a username or an email. The email is tried first.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, *Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", nil, nonFieldError(msgMissingCredentials)
	}

	acct, err := s.repo.FindByEmail(ctx, identifier)
	if errors.Is(err, ErrAccountNotFound) {
		acct, err = s.repo.FindByUsername(ctx, identifier)
	}
	if errors.Is(err, ErrAccountNotFound) {
		return "", nil, nonFieldError(msgInvalidCredentials)
	}
	if err != nil {
		return "", nil, err
	}

	if !acct.IsActive || bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
		return "", nil, nonFieldError(msgInvalidCredentials)
	}

	token, err := s.issueToken(acct)
	if err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

// Authenticate resolves a token to its account. Expired, revoked or
// malformed tokens all fail with 401.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*Account, *jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !tkn.Valid {
		return nil, nil, unauthorized(msgInvalidToken)
	}

	revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, unauthorized(msgInvalidToken)
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, nil, unauthorized(msgInvalidToken)
	}
	acct, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil, unauthorized(msgInvalidToken)
	}
	if err != nil {
		return nil, nil, err
	}
	if !acct.IsActive {
		return nil, nil, unauthorized(msgInvalidToken)
	}
	return acct, claims, nil
}

// Logout revokes the token described by claims.
func (s *AuthService) Logout(ctx context.Context, claims *jwt.RegisteredClaims) error {
	expiresAt := s.now().Add(s.tokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	if err := s.revoked.Revoke(ctx, claims.ID, expiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// UpdateProfile applies the non-nil fields of in.
func (s *AuthService) UpdateProfile(ctx context.Context, acct *Account, in ProfileInput) (*Account, error) {
	updated := cloneAccount(acct)
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if email != acct.Email {
			if err := s.checkAvailable(ctx, "", email, acct.ID); err != nil {
				return nil, err
			}
		}
		updated.Email = email
	}
	if in.FirstName != nil {
		updated.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		updated.LastName = *in.LastName
	}
	if in.PhoneNumber != nil {
		updated.PhoneNumber = *in.PhoneNumber
	}
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// ChangePassword checks the current password before storing the new one.
// Existing tokens stay valid.
func (s *AuthService) ChangePassword(ctx context.Context, acct *Account, in PasswordInput) error {
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(in.OldPassword)) != nil {
		return fieldError("old_password", msgWrongPassword)
	}
	if in.NewPassword != in.ConfirmNewPassword {
		return fieldError("new_password", msgPasswordMismatch)
	}
	if len(in.NewPassword) < minPasswordLength {
		return fieldError("new_password", msgPasswordTooShort)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	updated := cloneAccount(acct)
	updated.PasswordHash = string(hash)
	updated.UpdatedAt = s.now()
	return s.repo.Update(ctx, updated)
}

func (s *AuthService) ListAccounts(ctx context.Context) ([]*Account, error) {
	return s.repo.List(ctx)
}

// AssignRole sets the role of the account id.
func (s *AuthService) AssignRole(ctx context.Context, id int64, role string) (*Account, error) {
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, ok := s.roles[role]; !ok {
		return nil, fieldError("role_name", msgUnknownRole)
	}
	acct.Role = role
	acct.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// EnsureAdmin creates an administrator account unless the username exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) (*Account, error) {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrAccountNotFound) {
		return nil, err
	}

	created, _, err := s.Register(ctx, RegisterInput{Username: username, Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return s.AssignRole(ctx, created.ID, domain.RoleAdministrator)
}

func (s *AuthService) checkAvailable(ctx context.Context, username, email string, self int64) error {
	errs := FieldErrors{}
	if username != "" {
		if acct, err := s.repo.FindByUsername(ctx, username); err == nil && acct.ID != self {
			errs["username"] = []string{msgUsernameTaken}
		} else if err != nil && !errors.Is(err, ErrAccountNotFound) {
			return err
		}
	}
	if email != "" {
		if acct, err := s.repo.FindByEmail(ctx, email); err == nil && acct.ID != self {
			errs["email"] = []string{msgEmailTaken}
		} else if err != nil && !errors.Is(err, ErrAccountNotFound) {
			return err
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (s *AuthService) issueToken(acct *Account) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatInt(acct.ID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
