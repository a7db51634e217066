package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/placement-portal/internal/application/dto"
	"github.com/jhoicas/placement-portal/internal/application/notify"
	"github.com/jhoicas/placement-portal/internal/application/student"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotAuthenticated, fiber.StatusUnauthorized, "NOT_AUTHENTICATED"},
	{domain.ErrAlreadyApplied, fiber.StatusConflict, "ALREADY_APPLIED"},
	{domain.ErrRequestInFlight, fiber.StatusConflict, "IN_FLIGHT"},
	{domain.ErrJobNotOpen, fiber.StatusBadRequest, "JOB_NOT_OPEN"},
	{domain.ErrNotPDF, fiber.StatusBadRequest, "NOT_PDF"},
	{domain.ErrFileTooLarge, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, "INVALID_TRANSITION"},
	{domain.ErrProtectedAccount, fiber.StatusForbidden, "PROTECTED_ACCOUNT"},
	{domain.ErrUnknownRole, fiber.StatusBadRequest, "UNKNOWN_ROLE"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// writeError traduce errores de dominio y del backend a dto.ErrorResponse.
// El mensaje es el del error: textual del servidor o el fallback del caso de uso.
func writeError(c *fiber.Ctx, err error) error {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "BACKEND_ERROR", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// fiberCodes nombre de cada error de transporte que Fiber corta antes de llegar al handler.
var fiberCodes = map[int]string{
	fiber.StatusBadRequest:            "INVALID_REQUEST",
	fiber.StatusNotFound:              "NOT_FOUND",
	fiber.StatusMethodNotAllowed:      "METHOD_NOT_ALLOWED",
	fiber.StatusRequestTimeout:        "TIMEOUT",
	fiber.StatusRequestEntityTooLarge: "FILE_TOO_LARGE",
	fiber.StatusUnsupportedMediaType:  "UNSUPPORTED_MEDIA_TYPE",
}

// errorHandler ErrorHandler de la app: errores de Fiber con su código propio, el resto 500.
// Un cuerpo por encima de BodyLimit solo puede ser un currículum demasiado grande.
func errorHandler(pub notify.Publisher, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		code, ok := fiberCodes[fe.Code]
		if !ok {
			code = "INTERNAL"
		}
		msg := fe.Message
		if fe.Code == fiber.StatusRequestEntityTooLarge {
			msg = student.MsgResumeTooLarge
			pub.Error(msg)
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: msg})
	}
}
