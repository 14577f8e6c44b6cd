package server

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"blogly/internal/middleware"
	"blogly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const flashKey = "flashes"

// parseID extracts a route parameter as a positive uint. A non-numeric or
// non-positive id renders the 404 page and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.renderNotFound(c)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// formIDs reads every value of a repeated checkbox field as ids. Values that
// do not parse are dropped; the templates only emit numeric values.
func formIDs(c *fiber.Ctx, key string) []uint {
	raw := c.Request().PostArgs().PeekMulti(key)
	ids := make([]uint, 0, len(raw))
	for _, v := range raw {
		id, err := strconv.ParseUint(string(v), 10, 32)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}

// flash queues a one-time message for the next rendered page.
func (s *Server) flash(c *fiber.Ctx, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "session unavailable for flash",
			slog.String("error", err.Error()))
		return
	}
	existing, _ := sess.Get(flashKey).(string)
	if existing != "" {
		existing += "\n"
	}
	sess.Set(flashKey, existing+message)
	if err := sess.Save(); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to save flash",
			slog.String("error", err.Error()))
	}
}

// popFlashes returns and clears the queued flash messages.
func (s *Server) popFlashes(c *fiber.Ctx) []string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}
	raw, _ := sess.Get(flashKey).(string)
	if raw == "" {
		return nil
	}
	sess.Delete(flashKey)
	if err := sess.Save(); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "failed to clear flashes",
			slog.String("error", err.Error()))
	}
	return strings.Split(raw, "\n")
}

// render draws the named template inside the main layout, attaching any
// pending flash messages.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["Flashes"] = s.popFlashes(c)
	return c.Render(name, data, "layouts/main")
}

func (s *Server) renderNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{}, "layouts/main")
}

func (s *Server) renderServerError(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{}, "layouts/main")
}

// handleError translates a service error into the response the UI expects:
// 404 page for missing rows, flash + redirect back to the originating form for
// validation and conflict errors, 500 page otherwise.
func (s *Server) handleError(c *fiber.Ctx, err error, backTo string) error {
	switch models.ErrorCode(err) {
	case models.CodeNotFound:
		return s.renderNotFound(c)
	case models.CodeValidation, models.CodeConflict:
		s.flash(c, err.Error())
		return c.Redirect(backTo, fiber.StatusSeeOther)
	default:
		middleware.Logger.ErrorContext(c.UserContext(), "handler error",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()))
		return s.renderServerError(c)
	}
}
