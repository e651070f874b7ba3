// Package user declares the User entity's schema and its entity-manager
// wrapper, which adds the credential-verification and validated/hashed
// creation flows specific to the user entity.
package user

import (
	"context"
	"fmt"

	"github.com/bugielektrik/fieldcache/internal/fce/entitymgr"
	"github.com/bugielektrik/fieldcache/internal/fce/handle"
	"github.com/bugielektrik/fieldcache/internal/fce/identity"
	"github.com/bugielektrik/fieldcache/internal/fce/schema"
	"github.com/bugielektrik/fieldcache/internal/fce/sharedcache"
	"github.com/bugielektrik/fieldcache/internal/fce/store"
	"github.com/bugielektrik/fieldcache/internal/metrics"
	"github.com/bugielektrik/fieldcache/internal/passwordhash"
	"github.com/bugielektrik/fieldcache/internal/validation"
	fceerrors "github.com/bugielektrik/fieldcache/pkg/errors"
	"github.com/bugielektrik/fieldcache/pkg/timeutil"
)

const (
	FieldEmail		= "email"
	FieldNickname		= "nickname"
	FieldFirstName		= "firstName"
	FieldLastName		= "lastName"
	FieldPasswordHash	= "passwordHash"
	FieldCreateDate		= "createDate"
	FieldIsAdmin		= "isAdmin"
	FieldLastLoginIP	= "lastLoginIP"
)

const collectionName = "user"

// NewSchema builds the User entity's Field Schema. passwordHash is the
// security invariant: Exclude() forces
// localEnabled=false and sharedEnabled=false, and Schema.New rejects any
// attempt to alias it onto the identity field, but nothing here lets a
// caller re-enable either cache for it: the descriptor is built once,
// inside this package, and never mutated afterward.
func NewSchema() (*schema.Schema, error) {
	return schema.New(collectionName, "_id",
		schema.NewFieldDescriptor(FieldEmail, "email"),
		schema.NewFieldDescriptor(FieldNickname, "nickname"),
		schema.NewFieldDescriptor(FieldFirstName, "first_name"),
		schema.NewFieldDescriptor(FieldLastName, "last_name"),
		schema.NewFieldDescriptor(FieldPasswordHash, "password_hash").Exclude(),
		schema.NewFieldDescriptor(FieldCreateDate, "create_date").WithShared(schema.TimeISO8601Converter()).WithStore(schema.TimeStoreConverter()),
		schema.NewFieldDescriptor(FieldIsAdmin, "is_admin").WithShared(schema.BoolFlagConverter()),
		schema.NewFieldDescriptor(FieldLastLoginIP, "last_login_ip"),
	)
}

// Manager is the User entity's facade, adding credential verification
// and validated/hashed creation on top of the generic entitymgr.Manager.
type Manager struct {
	*entitymgr.Manager
	validator	validation.Validator
	hasher		*passwordhash.Hasher
}

// NewManager wires a User entity manager against the given tiers plus
// the Validator and password-hash external collaborators.
func NewManager(shared sharedcache.Client, st store.Client, sharedTTL int, rec *metrics.Recorder, v validation.Validator, h *passwordhash.Hasher) (*Manager, error) {
	s, err := NewSchema()
	if err != nil {
		return nil, err
	}
	return &Manager{
		Manager:	entitymgr.New(collectionName, s, shared, st, sharedTTL, rec),
		validator:	v,
		hasher:		h,
	}, nil
}

// CreateInput is the set of fields required to register a new user.
type CreateInput struct {
	Email		string
	Nickname	string
	FirstName	string
	LastName	string
	Password	string
}

// Create validates every input via the Validator, formats it, rejects
// an already-registered email, hashes the password, insertOnes,
// flushes the type-wide shared cache, and hands out a Handle for the
// new identity.
func (m *Manager) Create(ctx context.Context, in CreateInput) (*handle.Handle, error) {
	if !m.validator.IsValid(validation.KindMail, in.Email) {
		return nil, fceerrors.ErrValidation.WithDetails("field", "email")
	}
	if !m.validator.IsValid(validation.KindNickname, in.Nickname) {
		return nil, fceerrors.ErrValidation.WithDetails("field", "nickname")
	}
	if !m.validator.IsValid(validation.KindFirstName, in.FirstName) {
		return nil, fceerrors.ErrValidation.WithDetails("field", "firstName")
	}
	if !m.validator.IsValid(validation.KindLastName, in.LastName) {
		return nil, fceerrors.ErrValidation.WithDetails("field", "lastName")
	}
	if !m.validator.IsValid(validation.KindPassword, in.Password) {
		return nil, fceerrors.ErrValidation.WithDetails("field", "password")
	}

	email := m.validator.Format(validation.KindMail, in.Email)
	if _, taken, err := m.FindByUniqueField(ctx, FieldEmail, email); err != nil {
		return nil, err
	} else if taken {
		return nil, fceerrors.ErrAlreadyExists.WithDetails("field", "email")
	}

	hash, err := m.hasher.Hash(in.Password)
	if err != nil {
		return nil, fceerrors.ErrValidation.WithDetails("field", "password").Wrap(err)
	}

	id := identity.New()
	doc := store.Document{
		"_id":			id.Hex(),
		"email":		email,
		"nickname":		m.validator.Format(validation.KindNickname, in.Nickname),
		"first_name":		m.validator.Format(validation.KindFirstName, in.FirstName),
		"last_name":		m.validator.Format(validation.KindLastName, in.LastName),
		"password_hash":	hash,
		"create_date":		timeutil.Now(),
		"is_admin":		false,
		"last_login_ip":	"",
	}
	return m.Manager.Create(ctx, id, doc)
}

// VerifyCredentials fetches
// {_id, passwordHash} directly from the authoritative store (never the
// shared or local cache, since the field is excluded from both),
// compares
// secret against it with the password-hash verifier, and returns the
// Handle on match.
func (m *Manager) VerifyCredentials(ctx context.Context, email, secret string) (*handle.Handle, bool, error) {
	s := m.Schema()
	emailField, err := s.Field(FieldEmail)
	if err != nil {
		return nil, false, err
	}
	pwField, err := s.Field(FieldPasswordHash)
	if err != nil {
		return nil, false, err
	}

	formatted := m.validator.Format(validation.KindMail, email)
	filter := store.Document{emailField.StoreName: formatted}
	projection := []string{s.IdentityField, pwField.StoreName}

	doc, ok, err := m.Store().FindOne(ctx, s.CollectionName, filter, projection)
	if err != nil {
		return nil, false, fceerrors.ErrStore.Wrap(err)
	}
	if !ok {
		return nil, false, nil
	}

	hash, _ := doc[pwField.StoreName].(string)
	if !m.hasher.Verify(secret, hash) {
		return nil, false, nil
	}

	id, err := identity.Parse(fmt.Sprint(doc[s.IdentityField]))
	if err != nil {
		return nil, false, fmt.Errorf("user: identity field is not a valid identity: %w", err)
	}
	return m.Instances().Create(id), true, nil
}
