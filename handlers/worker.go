package handlers

import (
	"net/http"

	"urbanset/services/worker"

	"github.com/gin-gonic/gin"
)

// WorkerHandler serves worker registration and profile endpoints.
type WorkerHandler struct {
	Directory      worker.DirectoryService
	UploadMaxBytes int64
}

func NewWorkerHandler(directory worker.DirectoryService, uploadMaxBytes int64) *WorkerHandler {
	return &WorkerHandler{Directory: directory, UploadMaxBytes: uploadMaxBytes}
}

// RegisterWorkerHandler accepts a multipart registration form with optional
// avatar, idProof and certificate files.
func (h *WorkerHandler) RegisterWorkerHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	in, err := registrationFromForm(c)
	if err != nil {
		respondError(c, err)
		return
	}

	uploads := &uploadSet{}
	defer uploads.Close()
	var files worker.RegistrationFiles
	if files.Avatar, err = uploads.formUpload(c, "avatar", h.UploadMaxBytes); err != nil {
		respondError(c, err)
		return
	}
	if files.IDProof, err = uploads.formUpload(c, "idProof", h.UploadMaxBytes); err != nil {
		respondError(c, err)
		return
	}
	if files.Certificate, err = uploads.formUpload(c, "certificate", h.UploadMaxBytes); err != nil {
		respondError(c, err)
		return
	}

	w, created, err := h.Directory.Register(c.Request.Context(), p, in, files)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, statusFor(created), w)
}

func registrationFromForm(c *gin.Context) (worker.RegistrationInput, error) {
	in := worker.RegistrationInput{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Phone:   c.PostForm("phone"),
		Bio:     c.PostForm("bio"),
		City:    c.PostForm("city"),
		State:   c.PostForm("state"),
		Pincode: c.PostForm("pincode"),
		Address: c.PostForm("address"),
	}
	in.Skills, _ = formList(c, "skills")
	in.Availability, _ = formList(c, "availability")

	experience, err := formInt(c, "experience")
	if err != nil {
		return in, err
	}
	if experience != nil {
		in.Experience = *experience
	}
	price, err := formFloat(c, "price")
	if err != nil {
		return in, err
	}
	if price != nil {
		in.Price = *price
	}
	if in.Latitude, err = formFloat(c, "latitude"); err != nil {
		return in, err
	}
	if in.Longitude, err = formFloat(c, "longitude"); err != nil {
		return in, err
	}
	return in, nil
}

// GetOwnProfileHandler returns the caller's worker profile.
func (h *WorkerHandler) GetOwnProfileHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	w, err := h.Directory.FindByOwner(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, w)
}

// UpdateOwnProfileHandler applies a multipart profile edit. Fields that are
// not sent are left unchanged.
func (h *WorkerHandler) UpdateOwnProfileHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	update := worker.ProfileUpdate{
		Name:    formString(c, "name"),
		Phone:   formString(c, "phone"),
		Bio:     formString(c, "bio"),
		City:    formString(c, "city"),
		State:   formString(c, "state"),
		Pincode: formString(c, "pincode"),
		Address: formString(c, "address"),
	}
	update.Availability, _ = formList(c, "availability")
	experience, err := formInt(c, "experience")
	if err != nil {
		respondError(c, err)
		return
	}
	update.Experience = experience

	uploads := &uploadSet{}
	defer uploads.Close()
	avatar, err := uploads.formUpload(c, "avatar", h.UploadMaxBytes)
	if err != nil {
		respondError(c, err)
		return
	}

	w, err := h.Directory.UpdateProfile(c.Request.Context(), p, update, avatar)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, w)
}

// GetOwnServicesHandler returns the caller's skills and price.
func (h *WorkerHandler) GetOwnServicesHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	services, err := h.Directory.GetServices(c.Request.Context(), p.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, services)
}

type updateServicesRequest struct {
	Skills []string `json:"skills"`
	Price  float64  `json:"price"`
}

// UpdateOwnServicesHandler replaces the caller's skills and price.
func (h *WorkerHandler) UpdateOwnServicesHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req updateServicesRequest
	if !bindJSON(c, &req) {
		return
	}
	w, err := h.Directory.UpdateSkillsAndPrice(c.Request.Context(), p.ID, req.Skills, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, w)
}

// GetWorkerByIDHandler returns a worker's public profile.
func (h *WorkerHandler) GetWorkerByIDHandler(c *gin.Context) {
	w, err := h.Directory.FindByID(c.Request.Context(), c.Param("workerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, w)
}
