package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"socialfeed/internal/models"
	"socialfeed/internal/service"
)

type CommentsResponse struct {
	Comments      []models.Comment `json:"comments"`
	TotalComments int              `json:"totalComments"`
	HasMore       bool             `json:"hasMore"`
	NextCursor    string           `json:"nextCursor,omitempty"`
}

type RepliesResponse struct {
	Replies      []models.Reply `json:"replies"`
	TotalReplies int            `json:"totalReplies"`
	HasMore      bool           `json:"hasMore"`
	NextCursor   string         `json:"nextCursor,omitempty"`
}

func (h *Handlers) GetComments(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	cursor := r.URL.Query().Get("after")

	page, next, err := h.FeedService.ListComments(r.Context(), postID, pageSize, cursor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if page.Comments == nil {
		page.Comments = []models.Comment{}
	}

	WriteSuccess(w, CommentsResponse{
		Comments:      page.Comments,
		TotalComments: page.TotalComments,
		HasMore:       page.HasMore,
		NextCursor:    next,
	}, http.StatusOK)
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["id"]

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	comment, err := h.FeedService.AddComment(r.Context(), userID(r), postID, req.Content)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, comment, http.StatusCreated)
}

func (h *Handlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]
	commentID := vars["commentId"]

	if err := h.FeedService.DeleteComment(r.Context(), userID(r), postID, commentID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Comment deleted"}, http.StatusOK)
}

func (h *Handlers) GetReplies(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]
	commentID := vars["commentId"]

	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	cursor := r.URL.Query().Get("after")

	page, next, err := h.FeedService.ListReplies(r.Context(), postID, commentID, pageSize, cursor)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	if page.Replies == nil {
		page.Replies = []models.Reply{}
	}

	WriteSuccess(w, RepliesResponse{
		Replies:      page.Replies,
		TotalReplies: page.TotalReplies,
		HasMore:      page.HasMore,
		NextCursor:   next,
	}, http.StatusOK)
}

func (h *Handlers) AddReply(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	postID := vars["id"]
	commentID := vars["commentId"]

	var req service.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return
	}

	reply, err := h.FeedService.AddReply(r.Context(), userID(r), postID, commentID, req.Content)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, reply, http.StatusCreated)
}
