package handlers

import (
	"errors"

	"bazaar/internal/domain"
	applog "bazaar/internal/log"
	"bazaar/internal/services"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps a core error kind onto its HTTP status.
func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindStockExceeded, domain.KindInsufficientStock, domain.KindEmptyCart:
		return fiber.StatusConflict
	case domain.KindAuth:
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// userMessage is the text safe to show for err. Internal errors are never shown.
func userMessage(err error) string {
	var de *domain.Error
	if services.IsUserError(err) && errors.As(err, &de) {
		return de.Error()
	}
	return "Something went wrong. Please try again."
}

func errFields(err error, fields map[string]any) map[string]any {
	if fields == nil {
		fields = map[string]any{}
	}
	var de *domain.Error
	if errors.As(err, &de) {
		fields["kind"] = de.Kind.String()
		if de.Field != "" {
			fields["field"] = de.Field
		}
	}
	return fields
}

// fail logs err under action and renders the notice page. Internal errors are
// handed to the app error handler.
func fail(c *fiber.Ctx, action string, err error, fields map[string]any) error {
	if !services.IsUserError(err) {
		applog.Error(c, action, err, fields)
		return err
	}
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindAuth:
		applog.Security(c, action, errFields(err, fields))
	default:
		applog.Info(c, action, errFields(err, fields))
	}
	return message(c, statusFor(err), userMessage(err))
}

// failJSON is fail for the /api routes.
func failJSON(c *fiber.Ctx, action string, err error) error {
	if !services.IsUserError(err) {
		applog.Error(c, action, err, nil)
	}
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error":   domain.KindOf(err).String(),
		"message": userMessage(err),
	})
}
