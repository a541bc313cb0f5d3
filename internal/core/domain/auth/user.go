package auth

import (
	"errors"
)

// User is the signed-in account as shown on the dashboard.
type User struct {
	ID      string `json:"id"`
	Subject string `json:"-"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture,omitzero"`
}

func (u User) Validate() error {
	if u.ID == "" {
		return errors.New("id is required")
	}
	if u.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// DisplayName falls back to the email when the provider sent no name.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Identity is the profile returned by the identity provider after a code exchange.
type Identity struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (i Identity) Validate() error {
	if i.Subject == "" {
		return errors.New("subject is required")
	}
	if i.Email == "" {
		return errors.New("email is required")
	}
	return nil
}

// ToUser maps the identity onto a user record with the given id.
func (i Identity) ToUser(id string) User {
	return User{
		ID:      id,
		Subject: i.Subject,
		Email:   i.Email,
		Name:    i.Name,
		Picture: i.Picture,
	}
}
