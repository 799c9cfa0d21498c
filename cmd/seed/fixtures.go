package main

import (
	"context"
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	adsmodel "adclad/internal/ads/domain/model"
	adsrepo "adclad/internal/ads/domain/repository"
	authmodel "adclad/internal/auth/domain/model"
	authrepo "adclad/internal/auth/domain/repository"
	"adclad/internal/shared/logger"
	sharedrepo "adclad/internal/shared/repository"
)

// Fixtures is the YAML document loaded by the seeder
type Fixtures struct {
	Users      []UserFixture     `yaml:"users"`
	Accounts   []AccountFixture  `yaml:"accounts"`
	Categories []CategoryFixture `yaml:"categories"`
	Sponsors   []SponsorFixture  `yaml:"sponsors"`
}

type UserFixture struct {
	FirstName string         `yaml:"firstName"`
	LastName  string         `yaml:"lastName"`
	Email     string         `yaml:"email"`
	Password  string         `yaml:"password"`
	Role      authmodel.Role `yaml:"role"`
}

// AccountFixture funds the user with Email
type AccountFixture struct {
	Email   string  `yaml:"email"`
	Balance float64 `yaml:"balance"`
}

type CategoryFixture struct {
	Name   string `yaml:"name"`
	ImgURL string `yaml:"imgUrl"`
}

type SponsorFixture struct {
	Name      string  `yaml:"name"`
	URL       string  `yaml:"url"`
	SortOrder float64 `yaml:"sortOrder"`
}

// LoadFixtures decodes a fixture document, rejecting unknown keys
func LoadFixtures(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	f := &Fixtures{}
	if err := dec.Decode(f); err != nil {
		if err == io.EOF {
			return f, nil
		}
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return f, nil
}

// Seeder writes fixtures through the module repositories
type Seeder struct {
	users      authrepo.UserRepository
	stores     adsrepo.Stores
	bcryptCost int
	logger     logger.Logger
}

func NewSeeder(users authrepo.UserRepository, stores adsrepo.Stores, bcryptCost int, log logger.Logger) *Seeder {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Seeder{users: users, stores: stores, bcryptCost: bcryptCost, logger: log.WithComponent("seed")}
}

// Seed inserts every fixture. Users whose e-mail is taken and categories
// whose name exists are skipped, so a seed can be re-run.
func (s *Seeder) Seed(ctx context.Context, f *Fixtures) error {
	owners := make(map[string]primitive.ObjectID, len(f.Users))

	for _, uf := range f.Users {
		email := authmodel.NormalizeEmail(uf.Email)
		existing, err := s.users.GetActiveByEmail(ctx, email)
		if err != nil {
			return fmt.Errorf("failed to look up user %s: %w", email, err)
		}
		if existing != nil {
			owners[email] = existing.ID
			s.logger.Infof("User %s already exists, skipped", email)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(uf.Password), s.bcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash password for %s: %w", email, err)
		}
		user := authmodel.NewUser(uf.FirstName, uf.LastName, email, string(hash), "")
		user.ID = primitive.NewObjectID()
		if uf.Role != "" {
			user.Role = uf.Role
		}
		if _, err := s.users.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", email, err)
		}
		owners[email] = user.ID
		s.logger.Infof("Created %s user %s", user.Role, email)
	}

	for _, af := range f.Accounts {
		email := authmodel.NormalizeEmail(af.Email)
		owner, ok := owners[email]
		if !ok {
			return fmt.Errorf("account references unknown user %s", email)
		}
		account := &adsmodel.Account{Owner: sharedrepo.NewRef(owner), Balance: sharedrepo.Num(af.Balance)}
		if _, err := s.stores.Accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("failed to create account for %s: %w", email, err)
		}
	}

	for _, cf := range f.Categories {
		existing, err := s.stores.Categories.GetOne(ctx, bson.M{"name": cf.Name, "isDeleted": false}, nil)
		if err != nil {
			return fmt.Errorf("failed to look up category %s: %w", cf.Name, err)
		}
		if existing != nil {
			continue
		}
		category := &adsmodel.Category{Name: cf.Name, ImgURL: cf.ImgURL, IsActive: true}
		if _, err := s.stores.Categories.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category %s: %w", cf.Name, err)
		}
	}

	for _, sf := range f.Sponsors {
		sponsor := &adsmodel.Sponsor{Name: sf.Name, URL: sf.URL, SortOrder: sf.SortOrder, IsActive: true}
		if _, err := s.stores.Sponsors.Create(ctx, sponsor); err != nil {
			return fmt.Errorf("failed to create sponsor %s: %w", sf.Name, err)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"users":      len(f.Users),
		"accounts":   len(f.Accounts),
		"categories": len(f.Categories),
		"sponsors":   len(f.Sponsors),
	}).Info("Fixtures loaded")
	return nil
}
