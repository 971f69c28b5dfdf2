package ports

import "inkwell/src/core/domain"

// TokenIssuer signs and verifies bearer credentials for authenticated
// callers. The concrete implementation lives in src/infra/token.
type TokenIssuer interface {
	// Issue signs a token embedding the given identity.
	Issue(identity domain.Identity) (string, error)

	// Verify parses and validates a token, returning the identity it
	// was issued for.
	Verify(token string) (*domain.Identity, error)
}
