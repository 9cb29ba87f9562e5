package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stokespro/cake-crm-sub002/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// withRetry: reintento acotado ante fallos transitorios de concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestWithRetry_AgotaLosIntentosAnteSerializacion(t *testing.T) {
	r := &TxRunner{}
	serErr := &pgconn.PgError{Code: "40001"}
	attempts := 0

	err := r.withRetry(context.Background(), func(context.Context) error {
		attempts++
		return fmt.Errorf("commit transaction: %w", serErr)
	})

	require.Error(t, err)
	assert.Equal(t, txMaxAttempts, attempts, "la transacción completa se reintenta hasta el tope")
	assert.ErrorIs(t, err, serErr, "tras agotar los intentos se devuelve el último error")
}

func TestWithRetry_DeadlockSeRecuperaEnElSegundoIntento(t *testing.T) {
	r := &TxRunner{}
	attempts := 0

	err := r.withRetry(context.Background(), func(context.Context) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWithRetry_ErrorDeNegocioNoSeReintenta(t *testing.T) {
	r := &TxRunner{}
	attempts := 0

	err := r.withRetry(context.Background(), func(context.Context) error {
		attempts++
		return domain.ErrInsufficientStock
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 1, attempts, "los errores de negocio se devuelven al primer intento")
}

func TestWithRetry_ExitoAlPrimerIntento(t *testing.T) {
	r := &TxRunner{}
	attempts := 0

	err := r.withRetry(context.Background(), func(context.Context) error {
		attempts++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestWithRetry_ContextoCanceladoCortaElReintento(t *testing.T) {
	r := &TxRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0

	err := r.withRetry(ctx, func(context.Context) error {
		attempts++
		cancel()
		return &pgconn.PgError{Code: "40001"}
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts, "con el contexto cancelado no hay segundo intento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de errores por SQLSTATE
// ──────────────────────────────────────────────────────────────────────────────

func TestIsRetryableTxError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"serialization_failure 40001", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock_detected 40P01", &pgconn.PgError{Code: "40P01"}, true},
		{"envuelto con %w", fmt.Errorf("commit transaction: %w", &pgconn.PgError{Code: "40001"}), true},
		{"unique_violation no es transitorio", &pgconn.PgError{Code: "23505"}, false},
		{"error cualquiera", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableTxError(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert material: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
