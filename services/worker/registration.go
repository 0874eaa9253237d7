package worker

import (
	"context"
	"errors"
	"math"
	"strings"

	"urbanset/database/repository"
	"urbanset/models"
	"urbanset/services/storage"
	"urbanset/utils"

	"go.uber.org/zap"
)

// Register creates or refreshes the caller's worker profile and makes the
// caller a worker. Steps run in order: validate, upload files, upsert the
// profile as pending, flip the identity role, mark the profile complete.
// A failure after the profile write is reported as unexpected and the whole
// call can be repeated: the same identity always converges on the same
// profile. The bool result reports whether a new profile was created.
func (s *DefaultDirectoryService) Register(ctx context.Context, p models.Principal, in RegistrationInput, files RegistrationFiles) (*models.Worker, bool, error) {
	logger := utils.GetLogger().With(zap.String("identityId", p.ID))

	in, display, keys, err := normalizeRegistration(in)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.Repo.GetByOwner(ctx, p.ID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, false, utils.NewUnexpectedError("could not load worker profile", err)
	}

	refs, err := s.uploadAll(ctx, files)
	if err != nil {
		logger.Warn("registration upload failed", zap.Error(err))
		return nil, false, utils.NewUnexpectedError("file upload failed, nothing was saved; please retry", err)
	}

	w := existing
	created := w == nil
	if created {
		w = &models.Worker{
			ID:                models.NewID(),
			OwnerID:           p.ID,
			RegistrationState: models.RegistrationPending,
		}
	}
	applyRegistration(w, in, display, keys, refs)

	if created {
		if err := s.Repo.Create(ctx, w); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, false, utils.NewConflictError("a worker profile already exists for this account")
			}
			return nil, false, utils.NewUnexpectedError("could not save worker profile", err)
		}
	} else if err := s.Repo.Update(ctx, w); err != nil {
		return nil, false, utils.NewUnexpectedError("could not save worker profile", err)
	}

	if err := s.Roles.SetRole(ctx, p.ID, models.RoleWorker); err != nil {
		logger.Error("worker role flip failed after profile write",
			zap.String("workerId", w.ID), zap.Error(err))
		return nil, false, utils.NewUnexpectedError("profile saved but account role was not updated; please retry registration", err)
	}

	if w.RegistrationState != models.RegistrationComplete {
		if err := s.Repo.SetRegistrationState(ctx, w.ID, models.RegistrationComplete); err != nil {
			logger.Error("could not complete worker registration",
				zap.String("workerId", w.ID), zap.Error(err))
			return nil, false, utils.NewUnexpectedError("registration incomplete; please retry registration", err)
		}
		w.RegistrationState = models.RegistrationComplete
	}

	logger.Info("worker registered", zap.String("workerId", w.ID), zap.Bool("created", created))
	return w, created, nil
}

// UpdateProfile applies the caller's profile edits and optional new avatar.
func (s *DefaultDirectoryService) UpdateProfile(ctx context.Context, p models.Principal, in ProfileUpdate, avatar *storage.Upload) (*models.Worker, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	w, err := s.FindByOwner(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	setTrimmed := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	setTrimmed(&w.Name, in.Name)
	setTrimmed(&w.Phone, in.Phone)
	setTrimmed(&w.Bio, in.Bio)
	setTrimmed(&w.Location.City, in.City)
	setTrimmed(&w.Location.State, in.State)
	setTrimmed(&w.Location.Pincode, in.Pincode)
	setTrimmed(&w.Address, in.Address)
	if in.Experience != nil {
		w.Experience = *in.Experience
	}
	if in.Availability != nil {
		w.Availability = normalizeAvailability(in.Availability)
	}
	if w.Name == "" || w.Location.City == "" {
		return nil, utils.NewValidationError("name and city cannot be empty")
	}

	if avatar != nil {
		url, err := s.Storage.Upload(ctx, s.Folder, *avatar)
		if err != nil {
			utils.GetLogger().Warn("avatar upload failed", zap.String("workerId", w.ID), zap.Error(err))
			return nil, utils.NewUnexpectedError("avatar upload failed; please retry", err)
		}
		w.Avatar = url
	}

	if err := s.Repo.Update(ctx, w); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NewNotFoundError("worker profile not found")
		}
		return nil, utils.NewUnexpectedError("could not save worker profile", err)
	}
	return w, nil
}

func (s *DefaultDirectoryService) uploadAll(ctx context.Context, files RegistrationFiles) (models.ProfileFiles, error) {
	var refs models.ProfileFiles
	for _, f := range []struct {
		upload *storage.Upload
		dst    *string
	}{
		{files.Avatar, &refs.Avatar},
		{files.IDProof, &refs.IDProof},
		{files.Certificate, &refs.Certificate},
	} {
		if f.upload == nil {
			continue
		}
		url, err := s.Storage.Upload(ctx, s.Folder, *f.upload)
		if err != nil {
			return refs, err
		}
		*f.dst = url
	}
	return refs, nil
}

func normalizeRegistration(in RegistrationInput) (RegistrationInput, []string, []string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Bio = strings.TrimSpace(in.Bio)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Pincode = strings.TrimSpace(in.Pincode)
	in.Address = strings.TrimSpace(in.Address)

	display, keys := models.NormalizeSkills(in.Skills)
	in.Skills = display
	if err := utils.ValidateStruct(in); err != nil {
		return in, nil, nil, err
	}
	if !validPrice(in.Price) {
		return in, nil, nil, utils.NewValidationError("price must be a positive number")
	}
	if (in.Latitude == nil) != (in.Longitude == nil) {
		return in, nil, nil, utils.NewValidationError("latitude and longitude must be sent together")
	}
	return in, display, keys, nil
}

// applyRegistration copies submitted fields onto w. Stored file references
// survive a retry that does not resend the files.
func applyRegistration(w *models.Worker, in RegistrationInput, display, keys []string, refs models.ProfileFiles) {
	w.Name = in.Name
	w.Email = in.Email
	w.Phone = in.Phone
	w.Skills = display
	w.SkillKeys = keys
	w.Experience = in.Experience
	w.Price = in.Price
	w.Bio = in.Bio
	w.Address = in.Address
	w.Location = models.Location{City: in.City, State: in.State, Pincode: in.Pincode}
	if in.Latitude != nil {
		w.Location.Geo = &models.GeoPoint{Type: "Point", Coordinates: []float64{*in.Longitude, *in.Latitude}}
	}
	w.Availability = normalizeAvailability(in.Availability)
	if refs.Avatar != "" {
		w.Avatar = refs.Avatar
	}
	if refs.IDProof != "" {
		w.IDProof = refs.IDProof
	}
	if refs.Certificate != "" {
		w.Certificate = refs.Certificate
	}
}

func normalizeAvailability(in []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, a := range in {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" && !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return append([]string(nil), models.DefaultAvailability...)
	}
	return out
}

func validPrice(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}
