package rest

import (
	"context"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CommentService interface {
	CreateComment(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	GetCommentsByScenicID(ctx context.Context, scenicID uint64) ([]domain.Comment, error)
	GetCommentsByUserID(ctx context.Context, userID uint) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, id uint64, userID uint) error
}

type CommentHandler struct {
	commentService CommentService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewCommentHandler(commentService CommentService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type CreateCommentRequest struct {
	ScenicID uint64 `json:"scenic_id" validate:"required"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Content  string `json:"content"`
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate comment request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comment := &domain.Comment{
		UserID:   userID,
		ScenicID: req.ScenicID,
		Rating:   req.Rating,
		Content:  req.Content,
	}

	newComment, err := h.commentService.CreateComment(ctx, comment)
	if err != nil {
		logger.Error("Failed to create comment", err)
		if err.Error() == "scenic spot not found" ||
			err.Error() == "rating must be between 1 and 5" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "comment successfully created",
		"comment": newComment,
	})
}

func (h *CommentHandler) GetCommentsByScenicID(c echo.Context) error {
	scenicIDStr := c.Param("id")

	scenicID, err := strconv.ParseUint(scenicIDStr, 10, 64)
	if err != nil {
		logger.Error("Invalid scenic spot id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comments, err := h.commentService.GetCommentsByScenicID(ctx, scenicID)
	if err != nil {
		logger.Error("Failed to find comments", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get comments",
		"comments": comments,
	})
}

func (h *CommentHandler) GetMyComments(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	comments, err := h.commentService.GetCommentsByUserID(ctx, userID)
	if err != nil {
		logger.Error("Failed to find comments", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get comments",
		"comments": comments,
	})
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		logger.Error("Invalid comment id", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	err = h.commentService.DeleteComment(ctx, id, userID)
	if err != nil {
		logger.Error("Failed to delete comment", err)
		if err.Error() == "comment not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "comment does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "comment successfully deleted",
		"comment_id": id,
	})
}
