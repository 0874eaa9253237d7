package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"urbanset/database/repository/memory"
	"urbanset/models"
	"urbanset/utils"
)

type mapRoleCache struct {
	mu    sync.Mutex
	roles map[string]string
}

func newMapRoleCache() *mapRoleCache { return &mapRoleCache{roles: map[string]string{}} }

func (c *mapRoleCache) GetRole(_ context.Context, id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roles[id], nil
}

func (c *mapRoleCache) SetRole(_ context.Context, id, role string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles[id] = role
	return nil
}

func (c *mapRoleCache) FillRole(_ context.Context, id, role string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.roles[id]; !ok {
		c.roles[id] = role
	}
	return nil
}

func (c *mapRoleCache) cached(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	role, ok := c.roles[id]
	return role, ok
}

// pausingUsers holds GetByID after it has read the account until resume
// is closed.
type pausingUsers struct {
	*memory.UserRepo
	read   chan struct{}
	resume chan struct{}
}

func (u *pausingUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := u.UserRepo.GetByID(ctx, id)
	close(u.read)
	<-u.resume
	return user, err
}

func newService(t *testing.T) (*DefaultAuthService, *mapRoleCache) {
	t.Helper()
	cache := newMapRoleCache()
	return NewDefaultAuthService(memory.NewUserRepo(), cache, time.Hour), cache
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: " Asha@Example.com ", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	if reg.User.Role != models.RoleUser || reg.User.Email != "asha@example.com" {
		t.Fatalf("user = %+v", reg.User)
	}
	if reg.User.PasswordHash == "correct-horse" {
		t.Fatal("password stored in clear")
	}

	login, err := svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	claims, err := utils.ParseToken(login.Token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != reg.User.ID || claims.Role != models.RoleUser {
		t.Fatalf("claims = %+v", claims)
	}
}

func TestRegisterRejects(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"}); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		in   RegisterInput
		kind utils.ErrorKind
	}{
		{"duplicate email", RegisterInput{Name: "Other", Email: "ASHA@example.com", Password: "another-pass"}, utils.KindConflict},
		{"bad email", RegisterInput{Name: "Other", Email: "nope", Password: "another-pass"}, utils.KindValidation},
		{"short password", RegisterInput{Name: "Other", Email: "o@example.com", Password: "short"}, utils.KindValidation},
		{"missing name", RegisterInput{Email: "o@example.com", Password: "another-pass"}, utils.KindValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.in)
			if got := utils.KindOf(err); got != tc.kind {
				t.Fatalf("kind = %s, want %s (err %v)", got, tc.kind, err)
			}
		})
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Login(ctx, LoginInput{Email: "asha@example.com", Password: "wrong-horse"}); utils.KindOf(err) != utils.KindUnauthenticated {
		t.Fatalf("wrong password: got %v", err)
	}
	if _, err := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "whatever"}); utils.KindOf(err) != utils.KindUnauthenticated {
		t.Fatalf("unknown email: got %v", err)
	}
}

func TestRoleFlipRefreshesCache(t *testing.T) {
	svc, cache := newService(t)
	ctx := context.Background()
	reg, err := svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	id := reg.User.ID

	role, err := svc.ResolveRole(ctx, id)
	if err != nil || role != models.RoleUser {
		t.Fatalf("role = %q, %v", role, err)
	}
	if got, _ := cache.cached(id); got != models.RoleUser {
		t.Fatal("role should be cached after resolution")
	}

	if err := svc.SetRole(ctx, id, models.RoleWorker); err != nil {
		t.Fatal(err)
	}
	if got, _ := cache.cached(id); got != models.RoleWorker {
		t.Fatalf("cached role after flip = %q, want worker", got)
	}
	role, err = svc.ResolveRole(ctx, id)
	if err != nil || role != models.RoleWorker {
		t.Fatalf("role after flip = %q, %v", role, err)
	}

	if err := svc.SetRole(ctx, id, "admin"); utils.KindOf(err) != utils.KindValidation {
		t.Fatalf("unknown role: got %v", err)
	}
	if _, err := svc.ResolveRole(ctx, models.NewID()); utils.KindOf(err) != utils.KindUnauthenticated {
		t.Fatalf("unknown identity: got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	reg, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	me, err := svc.Me(ctx, models.Principal{ID: reg.User.ID, Role: models.RoleUser})
	if err != nil || me.Name != "Asha" {
		t.Fatalf("me = %+v, %v", me, err)
	}
	if _, err := svc.Me(ctx, models.Principal{ID: models.NewID()}); utils.KindOf(err) != utils.KindNotFound {
		t.Fatalf("got %v", err)
	}
}

func TestSlowResolveDoesNotOverwriteFlippedRole(t *testing.T) {
	users := memory.NewUserRepo()
	cache := newMapRoleCache()
	svc := NewDefaultAuthService(users, cache, time.Hour)
	ctx := context.Background()

	reg, err := svc.Register(ctx, RegisterInput{Name: "Ravi", Email: "ravi@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatal(err)
	}
	id := reg.User.ID

	slow := &pausingUsers{UserRepo: users, read: make(chan struct{}), resume: make(chan struct{})}
	reader := NewDefaultAuthService(slow, cache, time.Hour)
	done := make(chan string)
	go func() {
		role, _ := reader.ResolveRole(ctx, id)
		done <- role
	}()

	<-slow.read
	if err := svc.SetRole(ctx, id, models.RoleWorker); err != nil {
		t.Fatal(err)
	}
	close(slow.resume)
	if role := <-done; role != models.RoleUser {
		t.Fatalf("in-flight resolve = %q, want the role it read", role)
	}

	role, err := svc.ResolveRole(ctx, id)
	if err != nil || role != models.RoleWorker {
		t.Fatalf("role after flip = %q, %v", role, err)
	}
}

func TestUpdateMe(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	reg, err := svc.Register(ctx, RegisterInput{Name: "Asha", Email: "asha@example.com", Password: "correct-horse", City: "Pune"})
	if err != nil {
		t.Fatal(err)
	}
	p := models.Principal{ID: reg.User.ID, Role: models.RoleUser}

	name := "  Asha K  "
	user, err := svc.UpdateMe(ctx, p, UpdateMeInput{Name: &name})
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != "Asha K" || user.City != "Pune" {
		t.Fatalf("after name edit = %+v", user)
	}

	city := "Mumbai"
	if _, err := svc.UpdateMe(ctx, p, UpdateMeInput{City: &city}); err != nil {
		t.Fatal(err)
	}
	me, err := svc.Me(ctx, p)
	if err != nil || me.Name != "Asha K" || me.City != "Mumbai" {
		t.Fatalf("me = %+v, %v", me, err)
	}

	blank := "   "
	long := strings.Repeat("x", 101)
	cases := []struct {
		name string
		p    models.Principal
		in   UpdateMeInput
		kind utils.ErrorKind
	}{
		{"no fields", p, UpdateMeInput{}, utils.KindValidation},
		{"blank name", p, UpdateMeInput{Name: &blank}, utils.KindValidation},
		{"long city", p, UpdateMeInput{City: &long}, utils.KindValidation},
		{"unknown account", models.Principal{ID: models.NewID()}, UpdateMeInput{City: &city}, utils.KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateMe(ctx, tc.p, tc.in)
			if got := utils.KindOf(err); got != tc.kind {
				t.Fatalf("kind = %s, want %s (err %v)", got, tc.kind, err)
			}
		})
	}
}
