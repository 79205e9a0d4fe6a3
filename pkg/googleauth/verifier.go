package googleauth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

var ErrInvalidGoogleToken = errors.New("invalid google token")

// Identity holds the fields extracted from a verified Google ID token
type Identity struct {
	GoogleID  string
	Email     string
	FirstName string
	LastName  string
}

// Verifier validates Google ID tokens against the application's client ID
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (*Identity, error)
}

// IDTokenVerifier verifies tokens through Google's public keys
type IDTokenVerifier struct {
	clientID string
}

// NewIDTokenVerifier creates a verifier bound to the given OAuth client ID
func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID}
}

// Verify checks the token signature and audience and extracts the identity.
// Verification failures are not retried; they are fatal for the request.
func (v *IDTokenVerifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidGoogleToken, err)
	}

	identity := &Identity{
		GoogleID:  payload.Subject,
		Email:     claimString(payload.Claims, "email"),
		FirstName: claimString(payload.Claims, "given_name"),
		LastName:  claimString(payload.Claims, "family_name"),
	}
	if identity.GoogleID == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: payload missing subject or email", ErrInvalidGoogleToken)
	}

	return identity, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
