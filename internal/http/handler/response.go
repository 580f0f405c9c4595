package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"corpusapi/internal/service"
)

// Envelope is the body of every /files response.
// Code is 0 on success, otherwise one of the service failure codes.
type Envelope struct {
	Code    int    `json:"code" example:"0"`
	Message string `json:"message" example:""`
	Result  any    `json:"result"`
}

// emptyResult is the result of a failed operation other than upload.
var emptyResult = fiber.Map{}

func writeSuccess(c *fiber.Ctx, result any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Result: result})
}

// writeFailure renders a *service.Failure as an envelope with HTTP 200, the
// way existing clients expect. Any other error goes to the ErrorHandler.
func writeFailure(c *fiber.Ctx, err error, result any) error {
	var f *service.Failure
	if !errors.As(err, &f) {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Code:    f.Cause.Code(),
		Message: f.Cause.Message(),
		Result:  result,
	})
}
