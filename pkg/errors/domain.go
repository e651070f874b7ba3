package errors

import "net/http"

// Field cache engine error taxonomy.
//
// Not-found is deliberately excluded from this list: an absent identity or
// field is a sentinel result (ok=false), never one of these errors.
var (
	// ErrStore marks an infrastructure failure talking to the
	// authoritative store (unreachable, timed out, or rejected the
	// operation). Always surfaced to the caller intact. The entity
	// manager's Flush also returns it when the shared cache fails to
	// enumerate or delete the type's keys.
	ErrStore = &Error{
		Code:		"STORE_ERROR",
		Message:	"authoritative store operation failed",
		HTTPStatus:	http.StatusInternalServerError,
	}

	// ErrUnknownField marks a request for a logical field name the
	// schema does not declare. Programmer error; aborts the operation.
	ErrUnknownField = &Error{
		Code:		"UNKNOWN_FIELD",
		Message:	"field is not declared in the schema",
		HTTPStatus:	http.StatusInternalServerError,
	}

	// ErrConverter marks an error returned by a converter while
	// crossing a tier boundary.
	ErrConverter = &Error{
		Code:		"CONVERTER_ERROR",
		Message:	"field converter failed",
		HTTPStatus:	http.StatusInternalServerError,
	}

	// ErrInvalidSchema marks a schema declaration that violates an
	// engine invariant (e.g. storeName aliasing the identity field).
	ErrInvalidSchema = &Error{
		Code:		"INVALID_SCHEMA",
		Message:	"schema declaration violates an engine invariant",
		HTTPStatus:	http.StatusInternalServerError,
	}
)
