package models

import (
	"strings"
	"unicode"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type AuthTokenResponse struct {
	TokenType        string `json:"tokenType"`
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresInSeconds int64  `json:"expiresInSeconds"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// User is the answer of GET /me. Only Email is always present.
type User struct {
	ID    ID     `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// PasswordChecks lists which strength rules a password meets.
type PasswordChecks struct {
	MinLength bool
	Uppercase bool
	Lowercase bool
	Number    bool
	Special   bool
}

const MinPasswordLength = 8

func CheckPasswordRules(password string) PasswordChecks {
	c := PasswordChecks{MinLength: len([]rune(password)) >= MinPasswordLength}
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			c.Uppercase = true
		case r >= 'a' && r <= 'z':
			c.Lowercase = true
		case r >= '0' && r <= '9':
			c.Number = true
		default:
			c.Special = true
		}
	}
	return c
}

func (c PasswordChecks) OK() bool {
	return c.MinLength && c.Uppercase && c.Lowercase && c.Number && c.Special
}

// Missing describes the unmet rules, in a fixed order.
func (c PasswordChecks) Missing() []string {
	var out []string
	if !c.MinLength {
		out = append(out, "at least 8 characters")
	}
	if !c.Uppercase {
		out = append(out, "an uppercase letter")
	}
	if !c.Lowercase {
		out = append(out, "a lowercase letter")
	}
	if !c.Number {
		out = append(out, "a digit")
	}
	if !c.Special {
		out = append(out, "a special character")
	}
	return out
}

// CheckPassword returns a validation error naming every unmet rule.
func CheckPassword(password string) error {
	c := CheckPasswordRules(password)
	if c.OK() {
		return nil
	}
	return invalid("password needs %s", strings.Join(c.Missing(), ", "))
}

// ValidateName rejects blank display names.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name is required")
	}
	return nil
}

// ValidateEmail performs the minimal shape check done before login.
func ValidateEmail(email string) error {
	e := NormalizeEmail(email)
	at := strings.IndexRune(e, '@')
	if at <= 0 || at == len(e)-1 || strings.IndexFunc(e, unicode.IsSpace) >= 0 {
		return invalid("email %q is not valid", email)
	}
	return nil
}
