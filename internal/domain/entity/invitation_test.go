package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/issaqr/inventory-qr-api/internal/domain/entity"
)

func TestInvitation_Validez(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	used := now.Add(-time.Hour)

	cases := []struct {
		name      string
		expiresAt time.Time
		usedAt    *time.Time
		valid     bool
	}{
		{"vigente y sin usar", now.Add(24 * time.Hour), nil, true},
		{"expirada", now.Add(-time.Minute), nil, false},
		{"expira exactamente ahora", now, nil, false},
		{"usada aunque vigente", now.Add(24 * time.Hour), &used, false},
		{"usada y expirada", now.Add(-time.Minute), &used, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			inv := entity.Invitation{ExpiresAt: tc.expiresAt, UsedAt: tc.usedAt}
			assert.Equal(t, tc.valid, inv.IsValid(now))
			assert.Equal(t, tc.usedAt != nil, inv.IsUsed())
		})
	}
}

func TestInvitation_ExpiracionEsCalculada(t *testing.T) {
	// La expiración no es estado almacenado: la misma invitación pasa de
	// válida a inválida solo por el paso del tiempo.
	inv := entity.Invitation{ExpiresAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}

	antes := inv.ExpiresAt.Add(-time.Second)
	despues := inv.ExpiresAt.Add(time.Second)

	assert.True(t, inv.IsValid(antes))
	assert.False(t, inv.IsValid(despues))
	assert.False(t, inv.IsExpired(antes))
	assert.True(t, inv.IsExpired(despues))
}
