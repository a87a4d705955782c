package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/natexcvi/speedcam-llm/agents"
	"github.com/natexcvi/speedcam-llm/engines"
	log "github.com/sirupsen/logrus"
)

const messageRequired = "Message is required"

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	ID            string                     `json:"id"`
	Response      string                     `json:"response"`
	FunctionCalls []agents.FunctionCallTrace `json:"function_calls"`
}

type ErrorResponse struct {
	Error         string                     `json:"error"`
	ErrorDetails  string                     `json:"error_details,omitempty"`
	FunctionCalls []agents.FunctionCallTrace `json:"function_calls"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}

func (s *Server) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		log.Debugf("unreadable chat request: %v", err)
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": messageRequired,
		})
	}

	turn, err := s.assistant.Run(c.UserContext(), req.Message)
	if err != nil {
		return s.chatError(c, turn, err)
	}
	return c.JSON(ChatResponse{
		ID:            turn.ID,
		Response:      turn.Response,
		FunctionCalls: turn.FunctionCalls,
	})
}

func (s *Server) chatError(c *fiber.Ctx, turn *agents.Turn, err error) error {
	resp := ErrorResponse{
		Error:         engines.UserMessage(err),
		ErrorDetails:  err.Error(),
		FunctionCalls: []agents.FunctionCallTrace{},
	}
	if turn != nil && turn.FunctionCalls != nil {
		resp.FunctionCalls = turn.FunctionCalls
	}
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, agents.ErrEmptyInput):
		status = fiber.StatusBadRequest
		resp.Error = messageRequired
	case engines.IsRateLimited(err):
		status = fiber.StatusTooManyRequests
	}
	log.WithError(err).Warnf("chat request failed with %d", status)
	return c.Status(status).JSON(resp)
}
