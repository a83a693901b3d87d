package identity

import (
	"context"
	"fmt"
	"os"

	"github.com/irsalhamdi/e-commerce-books/validate"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

type Client struct {
	ID   string `yaml:"id" validate:"required"`
	Hash string `yaml:"hash" validate:"required"`
}

type clientsFile struct {
	Clients []Client `yaml:"clients"`
}

// Passwords authenticates clients against a fixed table of bcrypt hashes.
type Passwords struct {
	hashes map[string][]byte
}

func NewPasswords(clients ...Client) (*Passwords, error) {
	hashes := make(map[string][]byte, len(clients))
	for _, c := range clients {
		if err := validate.Check(c); err != nil {
			return nil, fmt.Errorf("validating client[%s]: %w", c.ID, err)
		}
		if _, err := bcrypt.Cost([]byte(c.Hash)); err != nil {
			return nil, fmt.Errorf("client[%s] hash is not a bcrypt hash: %w", c.ID, err)
		}
		hashes[c.ID] = []byte(c.Hash)
	}
	return &Passwords{hashes: hashes}, nil
}

func LoadPasswords(path string) (*Passwords, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading clients file: %w", err)
	}

	var f clientsFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decoding clients file: %w", err)
	}

	return NewPasswords(f.Clients...)
}

func HashPassword(password string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("generating password hash: %w", err)
	}
	return string(h), nil
}

func (p *Passwords) Authenticate(ctx context.Context, clientID, password string) error {
	hash, ok := p.hashes[clientID]
	if !ok {
		return ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}

	return nil
}
