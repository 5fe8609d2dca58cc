package environment

import (
	"errors"

	"github.com/caesium-lab/evacenv/pkg/jsondoc"
	"github.com/caesium-lab/evacenv/pkg/shape"
)

// ExteriorID is the reserved id of the exterior, the safety domain that every
// evacuation ends in. It never names a stored Domain.
const ExteriorID int32 = 0

var (
	// ErrReservedDomainID is returned when adding a domain whose id is ExteriorID.
	ErrReservedDomainID = errors.New("domain id 0 is reserved for the exterior")
	// ErrNilDomain is returned when adding a nil domain.
	ErrNilDomain = errors.New("nil domain")
	// ErrMissingShape is returned when an obstacle or access without a shape
	// is added to a domain.
	ErrMissingShape = errors.New("missing shape")
	// ErrGatewayRejected is returned when a gateway is a self-loop or names a
	// domain that is not in the environment.
	ErrGatewayRejected = errors.New("gateway rejected")
	// ErrIO wraps failures reading or writing environment files.
	ErrIO = errors.New("environment i/o failure")

	// Re-exported so callers can match every decode failure from one package.
	ErrMalformedDocument = jsondoc.ErrMalformed
	ErrParseFailure      = jsondoc.ErrParse
	ErrUnknownShapeType  = shape.ErrUnknownShapeType
	ErrInvalidShape      = shape.ErrInvalidShape
)
