package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/soltixdb/tsfunc/internal/compression"
	"github.com/soltixdb/tsfunc/internal/models"
)

// Transform handles POST /v1/transform.
// The body may be snappy-compressed (Content-Encoding: snappy).
func (h *Handler) Transform(c *fiber.Ctx) error {
	body, err := decodeBody(c)
	if err != nil {
		return err
	}

	var req models.TransformRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	resp, err := h.transformService.Execute(c.UserContext(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Functions handles GET /v1/functions
func (h *Handler) Functions(c *fiber.Ctx) error {
	return c.JSON(h.transformService.Functions())
}

func decodeBody(c *fiber.Ctx) ([]byte, error) {
	decoder, err := compression.ForContentEncoding(c.Get(fiber.HeaderContentEncoding))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnsupportedMediaType, err.Error())
	}

	// raw body: Ctx.Body would try to decode Content-Encoding itself
	body, err := decoder.Decompress(c.Request().Body())
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if len(body) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Request body is required")
	}
	return body, nil
}
