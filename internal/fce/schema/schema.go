// Package schema declares, per entity type, the collection name and the
// per-field descriptors binding a logical field to its authoritative
// store name, its per-tier cache eligibility, and its converters.
package schema

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bugielektrik/fieldcache/internal/fce/convert"
	fceerrors "github.com/bugielektrik/fieldcache/pkg/errors"
)

// Converter is a type-erased total function crossing one tier boundary.
// FieldDescriptor stores converters this way so a single Schema can hold
// fields of differing in-memory types in one map.
type Converter struct {
	ToWire		func(any) (any, error)
	FromWire	func(any) (any, error)
}

// identityConverter is substituted whenever a descriptor leaves a
// converter nil, per the Conversion Registry's "absence means identity
// conversion" rule.
var identityConverter = Converter{
	ToWire:		func(v any) (any, error) { return v, nil },
	FromWire:	func(v any) (any, error) { return v, nil },
}

// FieldDescriptor binds one logical field to its authoritative-store
// name, per-tier eligibility, and per-tier converters.
type FieldDescriptor struct {
	// LogicalName is the name callers use (getField/setField).
	LogicalName string
	// StoreName is the key under which the field lives in the
	// authoritative store; may differ from LogicalName.
	StoreName string
	// LocalEnabled controls whether reads/writes populate the
	// per-instance local cache. Defaults to true via NewFieldDescriptor.
	LocalEnabled bool
	// SharedEnabled controls whether reads/writes populate the shared
	// cache. Defaults to true via NewFieldDescriptor.
	SharedEnabled bool
	// Shared is the converter pair used crossing the shared-cache wire
	// boundary. Nil means identity conversion.
	Shared *Converter
	// Store is the converter pair used crossing the authoritative-store
	// wire boundary. Nil means identity conversion.
	Store *Converter
}

// NewFieldDescriptor builds a descriptor with both caches enabled by
// default.
func NewFieldDescriptor(logicalName, storeName string) FieldDescriptor {
	return FieldDescriptor{
		LogicalName:	logicalName,
		StoreName:	storeName,
		LocalEnabled:	true,
		SharedEnabled:	true,
	}
}

// WithShared attaches a shared-cache converter pair.
func (d FieldDescriptor) WithShared(c Converter) FieldDescriptor {
	d.Shared = &c
	return d
}

// WithStore attaches an authoritative-store converter pair.
func (d FieldDescriptor) WithStore(c Converter) FieldDescriptor {
	d.Store = &c
	return d
}

// Exclude turns off both local and shared caching for this field. This
// is how the security invariant for password-hash-like fields is
// expressed: the field is readable only via the authoritative store.
func (d FieldDescriptor) Exclude() FieldDescriptor {
	d.LocalEnabled = false
	d.SharedEnabled = false
	return d
}

func (d FieldDescriptor) sharedConverter() Converter {
	if d.Shared != nil {
		return *d.Shared
	}
	return identityConverter
}

func (d FieldDescriptor) storeConverter() Converter {
	if d.Store != nil {
		return *d.Store
	}
	return identityConverter
}

// SharedToWire applies the field's shared-cache encoding converter.
func (d FieldDescriptor) SharedToWire(v any) (any, error) {
	return d.sharedConverter().ToWire(v)
}

// SharedFromWire applies the field's shared-cache decoding converter.
func (d FieldDescriptor) SharedFromWire(v any) (any, error) {
	return d.sharedConverter().FromWire(v)
}

// StoreToWire applies the field's authoritative-store encoding converter.
func (d FieldDescriptor) StoreToWire(v any) (any, error) {
	return d.storeConverter().ToWire(v)
}

// StoreFromWire applies the field's authoritative-store decoding converter.
func (d FieldDescriptor) StoreFromWire(v any) (any, error) {
	return d.storeConverter().FromWire(v)
}

// Schema is the immutable, per-entity-type declaration of its
// collection name and field descriptors.
type Schema struct {
	CollectionName	string
	IdentityField	string
	fields		map[string]FieldDescriptor
	order		[]string
}

// New builds a Schema, validating that no field's storeName aliases
// the identity field and that every logical name is unique.
//
// identityField is the store-level name of the identity column (always
// projected alongside any requested field; never itself a descriptor).
func New(collectionName, identityField string, fields ...FieldDescriptor) (*Schema, error) {
	s := &Schema{
		CollectionName:	collectionName,
		IdentityField:	identityField,
		fields:		make(map[string]FieldDescriptor, len(fields)),
	}
	for _, f := range fields {
		if f.StoreName == identityField {
			return nil, fceerrors.ErrInvalidSchema.WithDetails("field", f.LogicalName).
				WithDetails("reason", "storeName aliases the identity field")
		}
		if _, exists := s.fields[f.LogicalName]; exists {
			return nil, fceerrors.ErrInvalidSchema.WithDetails("field", f.LogicalName).
				WithDetails("reason", "duplicate logical field name")
		}
		s.fields[f.LogicalName] = f
		s.order = append(s.order, f.LogicalName)
	}
	return s, nil
}

// Field looks up a field descriptor by logical name.
func (s *Schema) Field(logicalName string) (FieldDescriptor, error) {
	f, ok := s.fields[logicalName]
	if !ok {
		return FieldDescriptor{}, fceerrors.ErrUnknownField.WithDetails("field", logicalName).
			WithDetails("collection", s.CollectionName)
	}
	return f, nil
}

// Fields returns every declared field descriptor, in declaration order.
func (s *Schema) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.fields[name])
	}
	return out
}

// HasField reports whether logicalName is declared.
func (s *Schema) HasField(logicalName string) bool {
	_, ok := s.fields[logicalName]
	return ok
}

// SharedKeyPrefix returns the shared-cache key prefix for one identity,
// per the layout model:<coll>:<idHex>:
func (s *Schema) SharedKeyPrefix(identityHex string) string {
	return fmt.Sprintf("model:%s:%s:", s.CollectionName, identityHex)
}

// SharedKey returns the shared-cache key for one field of one identity.
func (s *Schema) SharedKey(identityHex, logicalField string) string {
	return s.SharedKeyPrefix(identityHex) + logicalField
}

// SharedExistsKey returns the per-identity existence-probe key.
func (s *Schema) SharedExistsKey(identityHex string) string {
	return s.SharedKeyPrefix(identityHex) + "exists"
}

// SharedWildcard returns the wildcard pattern matching every shared-cache
// key for one identity within this collection.
func (s *Schema) SharedWildcard(identityHex string) string {
	return s.SharedKeyPrefix(identityHex) + "*"
}

// SharedTypeWildcard returns the wildcard pattern matching every
// shared-cache key for this collection, across all identities; used by
// EntityManager.flush.
func (s *Schema) SharedTypeWildcard() string {
	return fmt.Sprintf("model:%s:*", s.CollectionName)
}

// TimeISO8601Converter adapts convert.TimeISO8601 to the type-erased
// Converter shape, for date fields.
func TimeISO8601Converter() Converter {
	c := convert.TimeISO8601()
	return Converter{
		ToWire: func(v any) (any, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("schema: expected time.Time, got %T", v)
			}
			return c.ToWire(t)
		},
		FromWire: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return time.Time{}, fmt.Errorf("schema: expected string wire value, got %T", v)
			}
			return c.FromWire(s)
		},
	}
}

// BoolFlagConverter adapts convert.BoolFlag to the type-erased Converter
// shape, for boolean fields stored as "1"/"0" in the shared cache.
func BoolFlagConverter() Converter {
	c := convert.BoolFlag()
	return Converter{
		ToWire: func(v any) (any, error) {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("schema: expected bool, got %T", v)
			}
			return c.ToWire(b)
		},
		FromWire: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return false, fmt.Errorf("schema: expected string wire value, got %T", v)
			}
			return c.FromWire(s)
		},
	}
}

// TimeStoreConverter crosses the authoritative-store boundary for date
// fields. The Mongo driver decodes BSON datetimes as primitive.DateTime,
// not time.Time, so FromWire accepts either form; the fake store hands
// back whatever time.Time was inserted.
func TimeStoreConverter() Converter {
	return Converter{
		ToWire: func(v any) (any, error) {
			t, ok := v.(time.Time)
			if !ok {
				return nil, fmt.Errorf("schema: expected time.Time, got %T", v)
			}
			return t.UTC(), nil
		},
		FromWire: func(v any) (any, error) {
			switch t := v.(type) {
			case time.Time:
				return t.UTC(), nil
			case primitive.DateTime:
				return t.Time().UTC(), nil
			default:
				return nil, fmt.Errorf("schema: expected datetime, got %T", v)
			}
		},
	}
}

// IntStoreConverter crosses the authoritative-store boundary for integer
// fields. The Mongo driver decodes BSON integers as int32 or int64
// depending on magnitude; FromWire normalizes all of them to int.
func IntStoreConverter() Converter {
	return Converter{
		ToWire: func(v any) (any, error) {
			i, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("schema: expected int, got %T", v)
			}
			return i, nil
		},
		FromWire: func(v any) (any, error) {
			switch i := v.(type) {
			case int:
				return i, nil
			case int32:
				return int(i), nil
			case int64:
				return int(i), nil
			default:
				return nil, fmt.Errorf("schema: expected integer, got %T", v)
			}
		},
	}
}

// IntDecimalConverter adapts convert.IntDecimal to the type-erased
// Converter shape, for integer fields stored as decimal strings in the
// shared cache.
func IntDecimalConverter() Converter {
	c := convert.IntDecimal()
	return Converter{
		ToWire: func(v any) (any, error) {
			i, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("schema: expected int, got %T", v)
			}
			return c.ToWire(i)
		},
		FromWire: func(v any) (any, error) {
			s, ok := v.(string)
			if !ok {
				return 0, fmt.Errorf("schema: expected string wire value, got %T", v)
			}
			return c.FromWire(s)
		},
	}
}
