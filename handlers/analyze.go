// handlers/analyze.go - Standalone heuristic analysis endpoints
package handlers

import (
	"phishguard/detector"

	"github.com/gofiber/fiber/v2"
)

type AnalyzeURLRequest struct {
	URL string `json:"url"`
}

type AnalyzeEmailRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Sender  string `json:"sender"`
}

// AnalyzeURL runs the heuristic analyzer over a user-submitted URL.
// Malformed URLs are scored, not rejected.
func AnalyzeURL(c *fiber.Ctx) error {
	var req AnalyzeURLRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.URL == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing required field: url"})
	}

	result := detector.AnalyzeURL(req.URL)

	return c.JSON(fiber.Map{
		"success":  true,
		"analysis": result,
	})
}

// AnalyzeEmail runs the heuristic analyzer over email content.
func AnalyzeEmail(c *fiber.Ctx) error {
	var req AnalyzeEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Body == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing required field: body"})
	}

	result := detector.AnalyzeEmail(req.Subject, req.Body, req.Sender)

	return c.JSON(fiber.Map{
		"success":  true,
		"analysis": result,
	})
}
