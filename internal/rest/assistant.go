package rest

import (
	"context"
	"myTourGuide/business/assistant"
	"myTourGuide/domain"
	"myTourGuide/pkg/logger"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AssistantService interface {
	CreateSession(ctx context.Context, userID uint, title string) (*domain.ChatSession, error)
	GetUserSessions(ctx context.Context, userID uint) ([]domain.ChatSession, error)
	GetSessionMessages(ctx context.Context, userID uint, sessionID string) ([]domain.ChatMessage, error)
	Chat(ctx context.Context, userID uint, sessionID, message string) (*assistant.Reply, error)
}

type AssistantHandler struct {
	assistantService AssistantService
	validator        *validator.Validate
	timeout          time.Duration
}

func NewAssistantHandler(assistantService AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
		validator:        validator.New(),
		// model round trips take longer than database calls
		timeout: 60 * time.Second,
	}
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message" validate:"required"`
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

func (h *AssistantHandler) Chat(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate chat request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	reply, err := h.assistantService.Chat(ctx, userID, req.SessionID, req.Message)
	if err != nil {
		logger.Error("Failed to run assistant turn", err)
		if err.Error() == "chat session not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "chat session does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		if err.Error() == "message is required" {
			return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "assistant replied successfully",
		"reply":   reply,
	})
}

func (h *AssistantHandler) CreateSession(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	session, err := h.assistantService.CreateSession(ctx, userID, req.Title)
	if err != nil {
		logger.Error("Failed to create chat session", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "chat session successfully created",
		"session": session,
	})
}

func (h *AssistantHandler) GetMySessions(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sessions, err := h.assistantService.GetUserSessions(ctx, userID)
	if err != nil {
		logger.Error("Failed to find chat sessions", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get chat sessions",
		"sessions": sessions,
	})
}

func (h *AssistantHandler) GetSessionMessages(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		logger.Error("Failed to get user_id from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	sessionID := c.Param("id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "session id is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	messages, err := h.assistantService.GetSessionMessages(ctx, userID, sessionID)
	if err != nil {
		logger.Error("Failed to find chat messages", err)
		if err.Error() == "chat session not found" {
			return c.JSON(http.StatusNotFound, ResponseError{Message: err.Error()})
		}
		if err.Error() == "chat session does not belong to user" {
			return c.JSON(http.StatusForbidden, ResponseError{Message: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "successfully get chat messages",
		"messages": messages,
	})
}
