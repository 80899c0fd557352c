package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	msgInvalidBody   = "Invalid request body"
	msgInternalError = "Internal Server Error"
)

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage returns the message for the first field that failed
// validation. Fields are checked in declaration order.
func validationMessage(err error, messages map[string]string) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return msgInvalidBody
	}
	e := validationErrors[0]
	if msg, ok := messages[e.Field()]; ok {
		return msg
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}

// parseBody decodes a JSON request body into out. An empty body, or one not
// sent as application/json, leaves out untouched so that the required-field
// checks report the missing fields.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if len(c.Body()) == 0 || !c.Is("json") {
		return nil
	}
	return c.BodyParser(out)
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   true,
		"message": msgInvalidBody,
	})
}

func internalError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   true,
		"message": msgInternalError,
	})
}
