package testutils

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pantrychef/v1/internal/domain/user"
	"github.com/pantrychef/v1/internal/ports/outbound"
)

// FakeUserRepository is an in-memory UserRepository for service tests
type FakeUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*user.User

	// CreateErr forces Create to fail when set
	CreateErr error
}

// NewFakeUserRepository creates an empty in-memory user repository
func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{
		users: make(map[uuid.UUID]*user.User),
	}
}

func (r *FakeUserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.CreateErr != nil {
		return r.CreateErr
	}
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return user.ErrEmailTaken
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *FakeUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (r *FakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *FakeUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.users[id]
	return ok, nil
}

// FakeFavoriteRepository is an in-memory FavoriteRepository for service tests
type FakeFavoriteRepository struct {
	mu        sync.RWMutex
	favorites map[uuid.UUID]map[uuid.UUID]*user.Favorite
}

// NewFakeFavoriteRepository creates an empty in-memory favorite repository
func NewFakeFavoriteRepository() *FakeFavoriteRepository {
	return &FakeFavoriteRepository{
		favorites: make(map[uuid.UUID]map[uuid.UUID]*user.Favorite),
	}
}

func (r *FakeFavoriteRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*user.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*user.Favorite, 0, len(r.favorites[userID]))
	for _, f := range r.favorites[userID] {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		return out[i].ID().String() < out[j].ID().String()
	})
	return out, nil
}

func (r *FakeFavoriteRepository) Add(ctx context.Context, userID uuid.UUID, favorite *user.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.favorites[userID] == nil {
		r.favorites[userID] = make(map[uuid.UUID]*user.Favorite)
	}
	r.favorites[userID][favorite.ID()] = favorite
	return nil
}

func (r *FakeFavoriteRepository) Remove(ctx context.Context, userID, favoriteID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.favorites[userID], favoriteID)
	return nil
}

// FakeSessionStore is an in-memory SessionStore for service and handler tests
type FakeSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]uuid.UUID

	// CreateErr forces Create to fail when set
	CreateErr error
}

// NewFakeSessionStore creates an empty in-memory session store
func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{
		sessions: make(map[string]uuid.UUID),
	}
}

func (s *FakeSessionStore) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CreateErr != nil {
		return "", s.CreateErr
	}
	token := uuid.NewString()
	s.sessions[token] = userID
	return token, nil
}

func (s *FakeSessionStore) Get(ctx context.Context, token string) (uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, ok := s.sessions[token]
	if !ok {
		return uuid.Nil, outbound.ErrSessionNotFound
	}
	return userID, nil
}

func (s *FakeSessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

// Len reports the number of live sessions
func (s *FakeSessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// StubGenerator returns a canned generation result or error
type StubGenerator struct {
	Result *outbound.GeneratedRecipe
	Err    error

	// Calls records the ingredient lists it was invoked with
	Calls [][]string
}

func (g *StubGenerator) Generate(ctx context.Context, ingredients []string) (*outbound.GeneratedRecipe, error) {
	g.Calls = append(g.Calls, ingredients)
	if g.Err != nil {
		return nil, g.Err
	}
	if g.Result != nil {
		return g.Result, nil
	}
	return &outbound.GeneratedRecipe{Text: "stub recipe", FinishReason: "STOP"}, nil
}

var _ outbound.UserRepository = (*FakeUserRepository)(nil)
var _ outbound.FavoriteRepository = (*FakeFavoriteRepository)(nil)
var _ outbound.SessionStore = (*FakeSessionStore)(nil)
var _ outbound.RecipeGenerator = (*StubGenerator)(nil)
