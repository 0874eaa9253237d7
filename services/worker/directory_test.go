package worker

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"urbanset/database/repository/memory"
	"urbanset/models"
	"urbanset/services/storage"
	"urbanset/utils"
)

type fakeRoles struct {
	fail  bool
	roles map[string]string
}

func (f *fakeRoles) SetRole(_ context.Context, id, role string) error {
	if f.fail {
		return errors.New("users collection unavailable")
	}
	f.roles[id] = role
	return nil
}

type fakeStore struct {
	fail    bool
	uploads []string
}

func (f *fakeStore) Upload(_ context.Context, folder string, file storage.Upload) (string, error) {
	if f.fail {
		return "", errors.New("storage down")
	}
	f.uploads = append(f.uploads, file.Filename)
	return "https://files.example.com/" + folder + "/" + file.Filename, nil
}

func newService() (*DefaultDirectoryService, *fakeRoles, *fakeStore) {
	roles := &fakeRoles{roles: map[string]string{}}
	store := &fakeStore{}
	return NewDefaultDirectoryService(memory.NewWorkerRepo(), roles, store, "profiles"), roles, store
}

func registration() RegistrationInput {
	return RegistrationInput{
		Name:       "Ravi Kumar",
		Email:      "Ravi@Example.com ",
		Skills:     models.SplitSkills("Electrician, Home Wiring ,electrician"),
		Experience: 5,
		Price:      400,
		City:       "Delhi",
	}
}

func principal() models.Principal {
	return models.Principal{ID: models.NewID(), Role: models.RoleUser}
}

func wantKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if got := utils.KindOf(err); err == nil || got != kind {
		t.Fatalf("want %s error, got %v", kind, err)
	}
}

func TestRegisterCreatesProfileAndFlipsRole(t *testing.T) {
	svc, roles, store := newService()
	ctx := context.Background()
	p := principal()

	avatar := &storage.Upload{Reader: strings.NewReader("png"), Filename: "me.png"}
	w, created, err := svc.Register(ctx, p, registration(), RegistrationFiles{Avatar: avatar})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !created {
		t.Fatal("first registration should create a profile")
	}
	if roles.roles[p.ID] != models.RoleWorker {
		t.Fatalf("role = %q, want worker", roles.roles[p.ID])
	}
	if w.RegistrationState != models.RegistrationComplete {
		t.Fatalf("state = %s", w.RegistrationState)
	}
	if !reflect.DeepEqual(w.Skills, []string{"Electrician", "Home Wiring"}) {
		t.Fatalf("skills = %v", w.Skills)
	}
	if !reflect.DeepEqual(w.SkillKeys, []string{"electrician", "home-wiring"}) {
		t.Fatalf("skill keys = %v", w.SkillKeys)
	}
	if w.Email != "ravi@example.com" {
		t.Fatalf("email = %q", w.Email)
	}
	if w.Avatar != "https://files.example.com/profiles/me.png" || len(store.uploads) != 1 {
		t.Fatalf("avatar = %q, uploads = %v", w.Avatar, store.uploads)
	}
	if !reflect.DeepEqual(w.Availability, models.DefaultAvailability) {
		t.Fatalf("availability = %v", w.Availability)
	}
}

func TestRegisterRetryAfterRoleFailureConverges(t *testing.T) {
	svc, roles, _ := newService()
	ctx := context.Background()
	p := principal()

	roles.fail = true
	_, _, err := svc.Register(ctx, p, registration(), RegistrationFiles{})
	wantKind(t, err, utils.KindUnexpected)

	pending, err := svc.FindByOwner(ctx, p.ID)
	if err != nil {
		t.Fatalf("profile should exist after partial failure: %v", err)
	}
	if pending.RegistrationState != models.RegistrationPending {
		t.Fatalf("state = %s, want pending", pending.RegistrationState)
	}
	listed, _ := svc.FindByService(ctx, "electrician")
	if len(listed) != 0 {
		t.Fatal("half-registered profile must not be searchable")
	}

	roles.fail = false
	w, created, err := svc.Register(ctx, p, registration(), RegistrationFiles{})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if created || w.ID != pending.ID {
		t.Fatalf("retry should reuse profile %s, got %s (created=%v)", pending.ID, w.ID, created)
	}
	listed, _ = svc.FindByService(ctx, "Electrician")
	if len(listed) != 1 {
		t.Fatalf("completed profile should be searchable, got %d", len(listed))
	}
}

func TestRegisterUploadFailureSavesNothing(t *testing.T) {
	svc, roles, store := newService()
	ctx := context.Background()
	p := principal()
	store.fail = true

	_, _, err := svc.Register(ctx, p, registration(), RegistrationFiles{
		Avatar: &storage.Upload{Reader: strings.NewReader("x"), Filename: "a.png"},
	})
	wantKind(t, err, utils.KindUnexpected)

	_, err = svc.FindByOwner(ctx, p.ID)
	wantKind(t, err, utils.KindNotFound)
	if _, ok := roles.roles[p.ID]; ok {
		t.Fatal("role must not change when nothing was saved")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newService()
	cases := map[string]func(*RegistrationInput){
		"no skills":      func(in *RegistrationInput) { in.Skills = []string{" ", ""} },
		"zero price":     func(in *RegistrationInput) { in.Price = 0 },
		"negative exp":   func(in *RegistrationInput) { in.Experience = -1 },
		"missing city":   func(in *RegistrationInput) { in.City = "" },
		"bad email":      func(in *RegistrationInput) { in.Email = "nope" },
		"half geo point": func(in *RegistrationInput) { lat := 12.9; in.Latitude = &lat },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := registration()
			mutate(&in)
			_, _, err := svc.Register(context.Background(), principal(), in, RegistrationFiles{})
			wantKind(t, err, utils.KindValidation)
		})
	}
}

func TestFindByOwnerIsIdempotent(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	p := principal()
	if _, _, err := svc.Register(ctx, p, registration(), RegistrationFiles{}); err != nil {
		t.Fatal(err)
	}

	first, err := svc.FindByOwner(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.FindByOwner(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("profiles differ:\n%+v\n%+v", first, second)
	}
}

func TestUpdateSkillsAndPriceRoundTrip(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	p := principal()
	w, _, err := svc.Register(ctx, p, registration(), RegistrationFiles{})
	if err != nil {
		t.Fatal(err)
	}

	skills := []string{"Plumber", "Pipe Fitting"}
	if _, err := svc.UpdateSkillsAndPrice(ctx, p.ID, skills, 275.5); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.FindByID(ctx, w.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Skills, skills) || got.Price != 275.5 {
		t.Fatalf("got skills %v price %v", got.Skills, got.Price)
	}

	byService, _ := svc.FindByService(ctx, "pipe_fitting")
	if len(byService) != 1 {
		t.Fatal("updated skill keys should be searchable")
	}

	_, err = svc.UpdateSkillsAndPrice(ctx, p.ID, nil, 100)
	wantKind(t, err, utils.KindValidation)
	_, err = svc.UpdateSkillsAndPrice(ctx, p.ID, skills, 0)
	wantKind(t, err, utils.KindValidation)
	_, err = svc.UpdateSkillsAndPrice(ctx, models.NewID(), skills, 10)
	wantKind(t, err, utils.KindNotFound)
}

func TestFindByIDValidation(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.FindByID(context.Background(), "abc")
	wantKind(t, err, utils.KindValidation)
	_, err = svc.FindByID(context.Background(), models.NewID())
	wantKind(t, err, utils.KindNotFound)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()
	p := principal()
	if _, _, err := svc.Register(ctx, p, registration(), RegistrationFiles{}); err != nil {
		t.Fatal(err)
	}

	bio := "  Licensed electrician  "
	w, err := svc.UpdateProfile(ctx, p, ProfileUpdate{Bio: &bio, Availability: []string{"Evening"}},
		&storage.Upload{Reader: strings.NewReader("x"), Filename: "new.png"})
	if err != nil {
		t.Fatal(err)
	}
	if w.Bio != "Licensed electrician" || w.Avatar == "" || !reflect.DeepEqual(w.Availability, []string{"evening"}) {
		t.Fatalf("profile = %+v", w)
	}
	if w.Price != 400 {
		t.Fatalf("profile edit must not touch price, got %v", w.Price)
	}

	empty := " "
	_, err = svc.UpdateProfile(ctx, p, ProfileUpdate{Name: &empty}, nil)
	wantKind(t, err, utils.KindValidation)
}
