package handlers

import (
	"net/http"

	"urbanset/services/feedback"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	Feedback feedback.FeedbackService
}

func NewFeedbackHandler(svc feedback.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{Feedback: svc}
}

// SubmitFeedbackHandler records a rating for a worker.
func (h *FeedbackHandler) SubmitFeedbackHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var in feedback.FeedbackInput
	if !bindJSON(c, &in) {
		return
	}
	f, err := h.Feedback.Submit(c.Request.Context(), p, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, f)
}

func (h *FeedbackHandler) WorkerFeedbackHandler(c *gin.Context) {
	entries, err := h.Feedback.ListForWorker(c.Request.Context(), c.Param("workerId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entries)
}

func (h *FeedbackHandler) OwnFeedbackHandler(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	entries, err := h.Feedback.ListOwn(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, entries)
}
