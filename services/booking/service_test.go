package booking

import (
	"context"
	"testing"

	"urbanset/database/repository/memory"
	"urbanset/models"
	"urbanset/utils"
)

type recordingInvalidator struct {
	workers []string
}

func (r *recordingInvalidator) Invalidate(_ context.Context, workerID string) error {
	r.workers = append(r.workers, workerID)
	return nil
}

type fixture struct {
	svc      *DefaultBookingService
	bookings *memory.BookingRepo
	stats    *recordingInvalidator
	customer models.Principal
	owner    models.Principal
	worker   *models.Worker
}

func newFixture(t *testing.T, policy TransitionPolicy) *fixture {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepo()
	workers := memory.NewWorkerRepo()
	bookings := memory.NewBookingRepo()
	stats := &recordingInvalidator{}

	customer := &models.User{ID: models.NewID(), Name: "Priya", Email: "priya@example.com", Role: models.RoleUser}
	owner := &models.User{ID: models.NewID(), Name: "Ravi", Email: "ravi@example.com", Role: models.RoleWorker}
	for _, u := range []*models.User{customer, owner} {
		if err := users.Create(ctx, u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	worker := &models.Worker{
		ID:                models.NewID(),
		OwnerID:           owner.ID,
		Name:              "Ravi",
		Skills:            []string{"Electrician"},
		SkillKeys:         []string{"electrician"},
		Price:             400,
		RegistrationState: models.RegistrationComplete,
	}
	if err := workers.Create(ctx, worker); err != nil {
		t.Fatalf("create worker: %v", err)
	}

	return &fixture{
		svc:      NewDefaultBookingService(bookings, workers, users, policy, stats),
		bookings: bookings,
		stats:    stats,
		customer: models.Principal{ID: customer.ID, Role: models.RoleUser},
		owner:    models.Principal{ID: owner.ID, Role: models.RoleWorker},
		worker:   worker,
	}
}

func (f *fixture) input(price float64) models.BookingInput {
	return models.BookingInput{
		WorkerID: f.worker.ID,
		Service:  "electrician",
		Date:     "2024-06-01",
		Slot:     "10:30 AM",
		Address:  "12 MG Road",
		Price:    price,
	}
}

func (f *fixture) book(t *testing.T) *models.Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), f.customer, f.input(250))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func wantKind(t *testing.T, err error, kind utils.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s error, got nil", kind)
	}
	if got := utils.KindOf(err); got != kind {
		t.Fatalf("want %s error, got %s (%v)", kind, got, err)
	}
}

func TestCreateBookingIsPendingWithSubmittedPrice(t *testing.T) {
	f := newFixture(t, nil)

	b := f.book(t)
	if b.Status != models.StatusPending {
		t.Fatalf("status = %s, want pending", b.Status)
	}
	if b.Price != 250 {
		t.Fatalf("price = %v, want the submitted 250 rather than the worker's 400", b.Price)
	}
	if b.CustomerID != f.customer.ID {
		t.Fatalf("customer = %s, want %s", b.CustomerID, f.customer.ID)
	}

	stored, err := f.bookings.GetByID(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("stored booking: %v", err)
	}
	if stored.Price != 250 || stored.Status != models.StatusPending {
		t.Fatalf("stored = %+v", stored)
	}
	if len(f.stats.workers) != 1 || f.stats.workers[0] != f.worker.ID {
		t.Fatalf("stats invalidations = %v", f.stats.workers)
	}
}

func TestCreateBookingRejectsInvalidInput(t *testing.T) {
	f := newFixture(t, nil)

	cases := map[string]func(*models.BookingInput){
		"zero price":      func(in *models.BookingInput) { in.Price = 0 },
		"negative price":  func(in *models.BookingInput) { in.Price = -50 },
		"missing worker":  func(in *models.BookingInput) { in.WorkerID = "" },
		"malformed id":    func(in *models.BookingInput) { in.WorkerID = "not-an-id" },
		"missing service": func(in *models.BookingInput) { in.Service = "  " },
		"missing date":    func(in *models.BookingInput) { in.Date = "" },
		"bad date":        func(in *models.BookingInput) { in.Date = "01/06/2024" },
		"missing slot":    func(in *models.BookingInput) { in.Slot = "" },
		"missing address": func(in *models.BookingInput) { in.Address = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := f.input(250)
			mutate(&in)
			_, err := f.svc.CreateBooking(context.Background(), f.customer, in)
			wantKind(t, err, utils.KindValidation)
		})
	}

	list, _ := f.bookings.ListByCustomer(context.Background(), f.customer.ID)
	if len(list) != 0 {
		t.Fatalf("invalid requests persisted %d bookings", len(list))
	}
}

func TestCreateBookingUnknownWorker(t *testing.T) {
	f := newFixture(t, nil)
	in := f.input(250)
	in.WorkerID = models.NewID()

	_, err := f.svc.CreateBooking(context.Background(), f.customer, in)
	wantKind(t, err, utils.KindNotFound)
}

func TestCreateBookingAcceptsUppercaseWorkerID(t *testing.T) {
	f := newFixture(t, nil)
	in := f.input(100)
	in.WorkerID = "  " + upper(f.worker.ID) + " "

	b, err := f.svc.CreateBooking(context.Background(), f.customer, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if b.WorkerID != f.worker.ID {
		t.Fatalf("worker id = %s, want canonical %s", b.WorkerID, f.worker.ID)
	}
}

func upper(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - 'a' + 'A'
		}
	}
	return string(out)
}

func TestUpdateStatusByNonOwnerLeavesStatusUnchanged(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.book(t)

	other := models.Principal{ID: models.NewID(), Role: models.RoleWorker}
	otherProfile := &models.Worker{ID: models.NewID(), OwnerID: other.ID, Price: 10}
	if err := f.svc.Workers.Create(ctx, otherProfile); err != nil {
		t.Fatal(err)
	}

	for name, p := range map[string]models.Principal{
		"customer":           f.customer,
		"other worker":       other,
		"worker, no profile": {ID: models.NewID(), Role: models.RoleWorker},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.UpdateStatus(ctx, b.ID, p, "confirmed")
			wantKind(t, err, utils.KindAuthorization)

			stored, _ := f.bookings.GetByID(ctx, b.ID)
			if stored.Status != models.StatusPending {
				t.Fatalf("status = %s, want pending", stored.Status)
			}
		})
	}
}

func TestUpdateStatusValidationAndNotFound(t *testing.T) {
	f := newFixture(t, nil)
	b := f.book(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, b.ID, f.owner, "cancelled")
	wantKind(t, err, utils.KindValidation)

	_, err = f.svc.UpdateStatus(ctx, "42", f.owner, "confirmed")
	wantKind(t, err, utils.KindValidation)

	_, err = f.svc.UpdateStatus(ctx, models.NewID(), f.owner, "confirmed")
	wantKind(t, err, utils.KindNotFound)
}

func TestUpdateStatusStrictPolicy(t *testing.T) {
	f := newFixture(t, StrictTransitions{})
	ctx := context.Background()
	b := f.book(t)

	got, err := f.svc.UpdateStatus(ctx, b.ID, f.owner, "confirmed")
	if err != nil {
		t.Fatalf("pending -> confirmed: %v", err)
	}
	if got.Status != models.StatusConfirmed {
		t.Fatalf("status = %s", got.Status)
	}

	if _, err := f.svc.UpdateStatus(ctx, b.ID, f.owner, "confirmed"); err != nil {
		t.Fatalf("same status should be a no-op: %v", err)
	}

	_, err = f.svc.UpdateStatus(ctx, b.ID, f.owner, "pending")
	wantKind(t, err, utils.KindConflict)

	if _, err := f.svc.UpdateStatus(ctx, b.ID, f.owner, "completed"); err != nil {
		t.Fatalf("confirmed -> completed: %v", err)
	}
	for _, back := range []string{"pending", "confirmed"} {
		_, err = f.svc.UpdateStatus(ctx, b.ID, f.owner, back)
		wantKind(t, err, utils.KindConflict)
	}

	stored, _ := f.bookings.GetByID(ctx, b.ID)
	if stored.Status != models.StatusCompleted {
		t.Fatalf("completed must be terminal, got %s", stored.Status)
	}
}

func TestUpdateStatusPermissivePolicy(t *testing.T) {
	f := newFixture(t, PermissiveTransitions{})
	ctx := context.Background()
	b := f.book(t)

	for _, s := range []string{"completed", "pending", "confirmed"} {
		got, err := f.svc.UpdateStatus(ctx, b.ID, f.owner, s)
		if err != nil {
			t.Fatalf("-> %s: %v", s, err)
		}
		if string(got.Status) != s {
			t.Fatalf("status = %s, want %s", got.Status, s)
		}
	}
}

// staleReads serves a snapshot taken before another writer moved the booking.
type staleReads struct {
	*memory.BookingRepo
	snapshot models.Booking
}

func (s *staleReads) GetByID(_ context.Context, _ string) (*models.Booking, error) {
	b := s.snapshot
	return &b, nil
}

func TestUpdateStatusLostRaceIsConflict(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.book(t)

	// A concurrent request confirms the booking after our read.
	if _, err := f.bookings.CompareAndSetStatus(ctx, b.ID, models.StatusPending, models.StatusConfirmed, b.CreatedAt); err != nil {
		t.Fatal(err)
	}
	f.svc.Bookings = &staleReads{BookingRepo: f.bookings, snapshot: *b}

	_, err := f.svc.UpdateStatus(ctx, b.ID, f.owner, "completed")
	wantKind(t, err, utils.KindConflict)

	stored, _ := f.bookings.GetByID(ctx, b.ID)
	if stored.Status != models.StatusConfirmed {
		t.Fatalf("winner's write was overwritten: %s", stored.Status)
	}
}

func TestListingsJoinCounterpart(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.book(t)

	mine, err := f.svc.ListBookingsForCustomer(ctx, f.customer.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ID != b.ID || mine[0].Worker == nil || mine[0].Worker.Name != "Ravi" {
		t.Fatalf("customer listing = %+v", mine)
	}
	if mine[0].Customer != nil {
		t.Fatalf("customer listing should not carry a customer projection")
	}

	theirs, err := f.svc.ListOwnWorkerBookings(ctx, f.owner)
	if err != nil {
		t.Fatal(err)
	}
	if len(theirs) != 1 || theirs[0].Customer == nil || theirs[0].Customer.Email != "priya@example.com" {
		t.Fatalf("worker listing = %+v", theirs)
	}

	_, err = f.svc.ListBookingsForWorker(ctx, f.customer, f.worker.ID)
	wantKind(t, err, utils.KindAuthorization)

	byID, err := f.svc.ListBookingsForWorker(ctx, f.owner, f.worker.ID)
	if err != nil || len(byID) != 1 {
		t.Fatalf("owner listing by id = %v, %v", byID, err)
	}
}

func TestGetBookingVisibility(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.book(t)

	if _, err := f.svc.GetBooking(ctx, f.customer, b.ID); err != nil {
		t.Fatalf("customer: %v", err)
	}
	if _, err := f.svc.GetBooking(ctx, f.owner, b.ID); err != nil {
		t.Fatalf("worker: %v", err)
	}
	_, err := f.svc.GetBooking(ctx, models.Principal{ID: models.NewID(), Role: models.RoleUser}, b.ID)
	wantKind(t, err, utils.KindAuthorization)
}

func TestUpdateDetailsOnlyWhilePending(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	b := f.book(t)
	addr := "44 Park Street"

	got, err := f.svc.UpdateDetails(ctx, f.customer, b.ID, DetailsInput{Address: &addr})
	if err != nil {
		t.Fatal(err)
	}
	if got.Address != addr || got.Price != b.Price {
		t.Fatalf("details update = %+v", got)
	}

	_, err = f.svc.UpdateDetails(ctx, f.owner, b.ID, DetailsInput{Address: &addr})
	wantKind(t, err, utils.KindAuthorization)

	if _, err := f.svc.UpdateStatus(ctx, b.ID, f.owner, "confirmed"); err != nil {
		t.Fatal(err)
	}
	_, err = f.svc.UpdateDetails(ctx, f.customer, b.ID, DetailsInput{Address: &addr})
	wantKind(t, err, utils.KindConflict)
}
