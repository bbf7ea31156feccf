package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Rohityadav8366/service-provider-platform/internal/core/auth"
	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
	"github.com/Rohityadav8366/service-provider-platform/internal/service"
)

// memRepo is an in-memory UserRepository. Register enforces email uniqueness
// under a single lock, like the database's unique index does.
type memRepo struct {
	mu      sync.Mutex
	seq     int64
	users   map[int64]*domain.User
	byEmail map[string]int64
}

func newMemRepo() *memRepo {
	return &memRepo{users: map[int64]*domain.User{}, byEmail: map[string]int64{}}
}

func (m *memRepo) Register(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byEmail[u.Email]; taken {
		return domain.Duplicate("email already registered")
	}
	m.seq++
	u.ID = m.seq
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	if u.CustomerProfile != nil {
		u.CustomerProfile.UserID = u.ID
	}
	if u.ProviderProfile != nil {
		u.ProviderProfile.UserID = u.ID
	}
	cp := *u
	m.users[u.ID] = &cp
	m.byEmail[u.Email] = u.ID
	return nil
}

func (m *memRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, nil
	}
	cp := *m.users[id]
	return &cp, nil
}

func (m *memRepo) FindByVerificationToken(_ context.Context, token string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *memRepo) Update(_ context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func newService(repo domain.UserRepository) (*service.UserService, *auth.JWTer) {
	j := &auth.JWTer{Secret: []byte("test-secret"), TTL: time.Hour}
	return service.NewUserService(repo, j, nil, nil, zap.NewNop()), j
}

func customerInput(email string) service.RegisterInput {
	return service.RegisterInput{
		Email:    email,
		Password: "Passw0rd@",
		Role:     domain.RoleCustomer,
		FullName: "Alice A",
		Phone:    "9999999999",
	}
}

func TestRegisterCustomer(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	view, err := svc.Register(context.Background(), customerInput("alice@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", view.Email)
	assert.Equal(t, domain.RoleCustomer, view.Role)
	assert.Equal(t, domain.StatusActive, view.Status)
	assert.False(t, view.EmailVerified)
	assert.Equal(t, "Alice A", view.FullName)
	assert.Equal(t, "9999999999", view.Phone)
	assert.Empty(t, view.BusinessName)
	assert.Nil(t, view.IsVerified)

	// verification token exists server-side but never in the view
	stored, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.VerificationToken)
	assert.NotEmpty(t, *stored.VerificationToken)

	// profile exclusivity
	assert.NotNil(t, stored.CustomerProfile)
	assert.Nil(t, stored.ProviderProfile)
}

func TestRegisterProviderDefaults(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	view, err := svc.Register(context.Background(), service.RegisterInput{
		Email:          "bob@example.com",
		Password:       "Passw0rd@",
		Role:           domain.RoleProvider,
		FullName:       "Bob the Plumber",
		Phone:          "8888888888",
		Specialization: "Plumber",
	})
	require.NoError(t, err)

	// business name falls back to the full name
	assert.Equal(t, "Bob the Plumber", view.BusinessName)
	assert.Equal(t, "Plumber", view.Specialization)
	require.NotNil(t, view.ExperienceYears)
	assert.Equal(t, 0, *view.ExperienceYears)
	require.NotNil(t, view.IsVerified)
	assert.False(t, *view.IsVerified)

	stored, err := repo.FindByEmail(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.ProviderProfile)
	assert.True(t, stored.ProviderProfile.IsAvailable)
	assert.Nil(t, stored.CustomerProfile)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	_, err := svc.Register(context.Background(), customerInput("dup@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), customerInput("dup@example.com"))
	require.Error(t, err)
	assert.Equal(t, domain.KindDuplicate, domain.KindOf(err))
	assert.Equal(t, 1, repo.count())
}

func TestRegisterConcurrentDuplicate(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	const n = 8
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(context.Background(), customerInput("race@example.com"))
		}(i)
	}
	wg.Wait()

	okCount := 0
	for _, err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.Equal(t, domain.KindDuplicate, domain.KindOf(err))
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, repo.count())
}

func TestRegisterPasswordPolicy(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	for _, pw := range []string{"alllower1@", "ALLUPPER1@", "NoDigits@@", "NoSymbol11a", "Sh0r@t"} {
		in := customerInput("weak@example.com")
		in.Password = pw
		_, err := svc.Register(context.Background(), in)
		require.Error(t, err, pw)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), pw)
		var de *domain.Error
		require.ErrorAs(t, err, &de)
		assert.Contains(t, de.Fields, "password")
	}
}

func TestRegisterAcceptsExamplePassword(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	in := customerInput("alice@example.com")
	in.Password = "Passw0rd!"
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
}

func TestRegisterInvalidRole(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	in := customerInput("x@example.com")
	in.Role = "SUPERUSER"
	_, err := svc.Register(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestLoginIssuesToken(t *testing.T) {
	repo := newMemRepo()
	svc, jwter := newService(repo)

	_, err := svc.Register(context.Background(), customerInput("alice@example.com"))
	require.NoError(t, err)

	// email not yet verified; login must still succeed
	res, err := svc.Login(context.Background(), "alice@example.com", "Passw0rd@")
	require.NoError(t, err)

	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, "alice@example.com", res.Email)
	assert.Equal(t, domain.RoleCustomer, res.Role)
	assert.Equal(t, int64(3600), res.ExpiresIn)

	claims, err := jwter.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "CUSTOMER", claims.Role)
}

func TestLoginUniformFailures(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	_, err := svc.Register(context.Background(), customerInput("alice@example.com"))
	require.NoError(t, err)

	_, errWrongPw := svc.Login(context.Background(), "alice@example.com", "Wrong0rd@")
	_, errNoUser := svc.Login(context.Background(), "ghost@example.com", "Passw0rd@")

	require.Error(t, errWrongPw)
	require.Error(t, errNoUser)
	// indistinguishable: same kind, same message
	assert.Equal(t, domain.KindInvalidCredentials, domain.KindOf(errWrongPw))
	assert.Equal(t, domain.KindInvalidCredentials, domain.KindOf(errNoUser))
	assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
}

func TestLoginNonActiveStatus(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	_, err := svc.Register(context.Background(), customerInput("alice@example.com"))
	require.NoError(t, err)

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	u.Status = domain.StatusSuspended
	require.NoError(t, repo.Update(context.Background(), u))

	_, err = svc.Login(context.Background(), "alice@example.com", "Passw0rd@")
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidCredentials, domain.KindOf(err))
}

func TestVerifyEmailSingleUse(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	_, err := svc.Register(context.Background(), customerInput("alice@example.com"))
	require.NoError(t, err)

	u, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	token := *u.VerificationToken

	require.NoError(t, svc.VerifyEmail(context.Background(), token))

	u, err = repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, u.EmailVerified)
	assert.Nil(t, u.VerificationToken)

	// token is single-use
	err = svc.VerifyEmail(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	err := svc.VerifyEmail(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestProfileNotFound(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	_, err := svc.Profile(context.Background(), 12345)
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestProfileByID(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	created, err := svc.Register(context.Background(), customerInput("alice@example.com"))
	require.NoError(t, err)

	view, err := svc.Profile(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, view.ID)
	assert.Equal(t, "Alice A", view.FullName)
}

func TestEmailExists(t *testing.T) {
	repo := newMemRepo()
	svc, _ := newService(repo)

	ok, err := svc.EmailExists(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Register(context.Background(), customerInput("alice@example.com"))
	require.NoError(t, err)

	ok, err = svc.EmailExists(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}
