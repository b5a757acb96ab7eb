package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taazabazaar/internal/cache"
	"github.com/taazabazaar/internal/config"
	"github.com/taazabazaar/internal/constants"
	"github.com/taazabazaar/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("store down")

// failingStore 所有读写都返回错误
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, errStoreDown }
func (failingStore) Set(context.Context, string, []byte) error        { return errStoreDown }
func (failingStore) Delete(context.Context, string) error             { return errStoreDown }

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
}

func customerSession() *Session {
	return &Session{
		ID:      "9876500001",
		Name:    constants.CustomerDefaultName,
		Phone:   "9876500001",
		Address: "12 MG Road, Pune",
		Role:    constants.RoleCustomer,
	}
}

func newTestSessionService(t *testing.T, store cache.Store) *SessionService {
	t.Helper()
	svc, err := NewSessionService(store, config.AdminConfig{Username: "anmol", Password: "1234"})
	require.NoError(t, err)
	svc.now = fixedNow
	return svc
}

func newTestCartService(store cache.Store, memory *repository.MemoryStore) *CartService {
	return NewCartService(store, memory.Products())
}
