package errhandler

import (
	"errors"
	"unicode/utf8"

	"file-gateway/core/logger"
	"file-gateway/core/response"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DefaultServiceCode replaces service codes that are not exactly two characters.
const DefaultServiceCode = "FS"

// ServiceCode returns code when it is two characters long and
// DefaultServiceCode otherwise.
func ServiceCode(code string) string {
	if utf8.RuneCountInString(code) != 2 {
		return DefaultServiceCode
	}
	return code
}

// New returns a Fiber error handler that renders errors as response envelopes
// prefixed with serviceCode.
func New(serviceCode string, l *zap.Logger) fiber.ErrorHandler {
	serviceCode = ServiceCode(serviceCode)
	return func(c *fiber.Ctx, err error) error {
		status, entry := Classify(err)

		log := logger.WithRayID(l, c)
		if status >= fiber.StatusInternalServerError {
			log.Error("Request failed", zap.Int("status", status), zap.Error(err))
		} else {
			log.Warn("Request rejected", zap.Int("status", status), zap.Error(err))
		}

		return Write(c, status, serviceCode, entry, err.Error())
	}
}

// Classify maps an error to an HTTP status and a registry entry.
func Classify(err error) (int, response.ErrorCode) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch {
		case fiberErr.Code == fiber.StatusNotFound:
			return fiberErr.Code, response.NotFound()
		case fiberErr.Code == fiber.StatusRequestEntityTooLarge:
			return fiberErr.Code, response.ValidError()
		case fiberErr.Code >= 400 && fiberErr.Code < 500:
			return fiberErr.Code, response.BadRequest()
		default:
			return fiber.StatusInternalServerError, response.UnknownError()
		}
	}

	switch errx.GetType(err) {
	case errx.T_NotFound:
		return fiber.StatusNotFound, response.NotFound()
	case errx.T_Validation:
		return fiber.StatusBadRequest, response.ValidError()
	case errx.T_Authentication:
		return fiber.StatusUnauthorized, response.TokenError()
	default:
		return fiber.StatusInternalServerError, response.UnknownError()
	}
}

// Write sends an error envelope with info set to detail. An invalid
// serviceCode is replaced by DefaultServiceCode.
func Write(c *fiber.Ctx, status int, serviceCode string, entry response.ErrorCode, detail string) error {
	resp, err := response.Error[string](ServiceCode(serviceCode), entry)
	if err != nil {
		// the entry code itself is malformed
		resp, _ = response.Error[string](DefaultServiceCode, response.UnknownError())
	}
	return c.Status(status).JSON(resp.WithInfo(detail))
}
