package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"shop/internal/domain/model"
	"shop/internal/infra/dbtest"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// =====================
// Mock: SessionRepository
// =====================

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) Resolve(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) Invalidate(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// =====================
// Fake: ProductSearcher
// =====================

type fakeSearcher struct {
	mu       sync.Mutex
	docs      map[int64]model.Product
	indexErr  error
	lastQuery string
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{docs: map[int64]model.Product{}}
}

func (f *fakeSearcher) Index(_ context.Context, p model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexErr != nil {
		return f.indexErr
	}
	f.docs[p.ID] = p
	return nil
}

func (f *fakeSearcher) Search(_ context.Context, query string) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastQuery = query
	out := []model.Product{}
	for _, p := range f.docs {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSearcher) Rebuild(_ context.Context, products []model.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs = map[int64]model.Product{}
	for _, p := range products {
		f.docs[p.ID] = p
	}
	return nil
}

var errIndexDown = errors.New("index down")

func newHasher() *usecase.BcryptPasswordHasher {
	return usecase.NewBcryptPasswordHasher(bcrypt.MinCost)
}

func seedUser(t *testing.T, db *gorm.DB, username string) model.User {
	t.Helper()
	u := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, infraRepo.NewUserGormRepository(db).Create(context.Background(), u))
	return *u
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) model.Product {
	t.Helper()
	ctx := context.Background()
	c, err := infraRepo.NewCategoryGormRepository(db).FirstOrCreate(ctx, "General")
	require.NoError(t, err)
	p, err := infraRepo.NewProductGormRepository(db).Create(ctx, model.Product{Name: name, Price: price, CategoryID: c.ID})
	require.NoError(t, err)
	return p
}

func openDB(t *testing.T) *gorm.DB {
	return dbtest.Open(t)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	return he.Status
}
