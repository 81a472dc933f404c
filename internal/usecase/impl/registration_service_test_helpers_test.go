package impl

import (
	"context"
	"io"
	"log/slog"

	"onlyoomfs/internal/domain/entity"
	"onlyoomfs/internal/domain/repository"
	"onlyoomfs/internal/domain/service"
	"onlyoomfs/internal/usecase"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func registerInput(username, password, remoteAddr string) *usecase.RegisterUserInput {
	return &usecase.RegisterUserInput{
		Username:   username,
		Password:   password,
		RemoteAddr: remoteAddr,
	}
}

// fakeUserRepo is a hand-rolled UserRepository stub. Each method delegates to
// an optional function field and records what it was called with.
type fakeUserRepo struct {
	createFn func(ctx context.Context, user *entity.User) error
	findFn   func(ctx context.Context, username string) (*entity.User, error)

	createdUsers []*entity.User
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if r.findFn != nil {
		return r.findFn(ctx, username)
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if r.createFn != nil {
		if err := r.createFn(ctx, user); err != nil {
			return err
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.createdUsers = append(r.createdUsers, user)

	return nil
}

// fakeTxManager runs the callback against a factory bound to the given repo,
// mirroring the real manager's commit-on-nil contract without a database.
type fakeTxManager struct {
	repo     *fakeUserRepo
	beginErr error
}

type fakeRepoFactory struct {
	repo *fakeUserRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository {
	return f.repo
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	if m.beginErr != nil {
		return m.beginErr
	}

	return fn(&fakeRepoFactory{repo: m.repo})
}

// fakeHasher returns a fixed hash or a configured error.
type fakeHasher struct {
	hash    string
	hashErr error
}

func (h *fakeHasher) Hash(_ string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}

	return h.hash, nil
}

func (h *fakeHasher) Check(_, _ string) bool {
	return false
}

// fakeLocator records the looked-up address and returns a fixed answer.
type fakeLocator struct {
	coords    entity.Coordinates
	locateErr error
	lastAddr  string
}

func (l *fakeLocator) Locate(_ context.Context, addr string) (entity.Coordinates, error) {
	l.lastAddr = addr
	if l.locateErr != nil {
		return entity.Coordinates{}, l.locateErr
	}

	return l.coords, nil
}

// fakePublisher records published events and optionally fails.
type fakePublisher struct {
	publishErr error
	events     []*service.RegistrationEvent
}

func (p *fakePublisher) PublishRegistrationEvent(_ context.Context, event *service.RegistrationEvent) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.events = append(p.events, event)

	return nil
}

func (p *fakePublisher) Close() error {
	return nil
}

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service   *userService
	repo      *fakeUserRepo
	txManager *fakeTxManager
	hasher    *fakeHasher
	locator   *fakeLocator
	publisher *fakePublisher
}

func createTestUserService() userServiceFixtures {
	repo := &fakeUserRepo{}
	txManager := &fakeTxManager{repo: repo}
	hasher := &fakeHasher{hash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"}
	locator := &fakeLocator{coords: entity.Coordinates{Latitude: 51.5, Longitude: -0.1, Known: true}}
	publisher := &fakePublisher{}

	service := &userService{
		txManager: txManager,
		userRepo:  repo,
		hasher:    hasher,
		locator:   locator,
		publisher: publisher,
		logger:    newDiscardLogger(),
	}

	return userServiceFixtures{
		service:   service,
		repo:      repo,
		txManager: txManager,
		hasher:    hasher,
		locator:   locator,
		publisher: publisher,
	}
}
