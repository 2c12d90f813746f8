package domain

import (
	"context"
	"time"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User represents a back-office account belonging to one tenant.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser returns a new User with the given fields. ID is set by the repository on create.
func NewUser(tenantID, email, name, lastName, role string, createdAt, updatedAt time.Time) *User {
	return &User{
		TenantID:  tenantID,
		Email:     email,
		Name:      name,
		LastName:  lastName,
		Role:      role,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenClaims is the identity carried by an issued token.
type TokenClaims struct {
	UserID   string
	TenantID string
	Role     string
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(claims TokenClaims, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the claims it carries.
type TokenVerifier interface {
	Verify(token string) (*TokenClaims, error)
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// SignUpInput holds everything needed to onboard a new gym: the tenant and
// its first admin account.
type SignUpInput struct {
	TenantName string
	Timezone   string
	Email      string
	Password   string
	Name       string
	LastName   string
}

// AuthService defines the business logic for sign-up and login.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*User, error)
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
