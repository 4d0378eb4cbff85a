package auth

import (
	"github.com/soffa-projects/record-api/util/h"
)

// WildcardPermission marks public entry points: any caller passes,
// authenticated or not.
const WildcardPermission = "*"

// Authorizer evaluates a flat permission set. Finer-grained policies would be
// a new implementation behind this interface, not a bigger set check.
type Authorizer interface {
	Authorize(granted []string, required []string) bool
}

type setAuthorizer struct{}

func NewAuthorizer() Authorizer {
	return &setAuthorizer{}
}

func (setAuthorizer) Authorize(granted []string, required []string) bool {
	if h.Contains(required, WildcardPermission) {
		return true
	}
	return h.ContainsAll(granted, required)
}
