package models

import "github.com/gofiber/fiber/v2"

// DataResponse is the success-with-data envelope.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// MessageResponse is the success-with-message envelope.
type MessageResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithData writes a success-with-data envelope.
func RespondWithData(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(DataResponse{Data: data})
}

// RespondWithMessage writes a success-with-message envelope. data may be nil.
func RespondWithMessage(c *fiber.Ctx, status int, message string, data interface{}) error {
	return c.Status(status).JSON(MessageResponse{Message: message, Data: data})
}
