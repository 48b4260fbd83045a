// Package googleauth valida ID tokens de Google Sign-In.
package googleauth

import (
	"context"
	"fmt"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"github.com/issaqr/inventory-qr-api/internal/domain"
)

// Verifier implementa auth.GoogleVerifier contra los certificados públicos de
// Google, validando que el token haya sido emitido para nuestro client ID.
type Verifier struct {
	clientID string
}

// NewVerifier construye el verificador para el client ID configurado.
func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID}
}

// Verify valida firma y audiencia del ID token y extrae email y nombre.
func (v *Verifier) Verify(_ context.Context, idToken string) (string, string, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return "", "", domain.ErrUnauthorized
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return "", "", fmt.Errorf("decodificar id token: %w", err)
	}
	if claims.Email == "" {
		return "", "", domain.ErrUnauthorized
	}
	return claims.Email, claims.Name, nil
}
