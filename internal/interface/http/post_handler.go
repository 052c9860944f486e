package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devconnector/devconnector/internal/application"
	"github.com/devconnector/devconnector/internal/interface/middleware"
	"github.com/devconnector/devconnector/pkg/response"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	Text string `json:"text" binding:"required"`
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingFailed(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	p, err := h.Svc.Create(c.Request.Context(), uid, req.Text)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// List GET /api/posts
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.List(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, posts)
}

// Get GET /api/posts/:post_id
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("post_id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, p)
}

// Delete DELETE /api/posts/:post_id
func (h *PostHandler) Delete(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Delete(c.Request.Context(), uid, c.Param("post_id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Msg(c, http.StatusOK, "Post removed")
}

// Like PUT /api/posts/like/:post_id
func (h *PostHandler) Like(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	likes, err := h.Svc.Like(c.Request.Context(), uid, c.Param("post_id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, likes)
}

// Unlike PUT /api/posts/unlike/:post_id
func (h *PostHandler) Unlike(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	likes, err := h.Svc.Unlike(c.Request.Context(), uid, c.Param("post_id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, likes)
}

// AddComment PUT /api/posts/comment/:post_id
func (h *PostHandler) AddComment(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindingFailed(c, err)
		return
	}
	uid := c.GetString(middleware.CtxUserIDKey)
	comments, err := h.Svc.AddComment(c.Request.Context(), uid, c.Param("post_id"), req.Text)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, comments)
}

// DeleteComment DELETE /api/posts/comment/:post_id/:comment_id
func (h *PostHandler) DeleteComment(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	comments, err := h.Svc.DeleteComment(c.Request.Context(), uid, c.Param("post_id"), c.Param("comment_id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, comments)
}
