package server

import (
	"fmt"

	"blogly/internal/middleware"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return s.handleError(c, err, "/users")
	}
	return s.render(c, "users/index", fiber.Map{"Users": users})
}

// NewUserForm handles GET /users/new
func (s *Server) NewUserForm(c *fiber.Ctx) error {
	return s.render(c, "users/new", nil)
}

// CreateUser handles POST /users/new
func (s *Server) CreateUser(c *fiber.Ctx) error {
	user, err := s.userService.CreateUser(c.UserContext(), service.UserInput{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		ImgURL:    c.FormValue("img_url"),
	})
	if err != nil {
		return s.handleError(c, err, "/users/new")
	}

	middleware.EntityWrites.WithLabelValues("user", "create").Inc()
	s.flash(c, fmt.Sprintf("User %s added.", user.FullName()))
	return c.Redirect("/users", fiber.StatusSeeOther)
}

// ShowUser handles GET /users/:id
func (s *Server) ShowUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/users")
	}
	return s.render(c, "users/show", fiber.Map{"User": user})
}

// EditUserForm handles GET /users/:id/edit
func (s *Server) EditUserForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/users")
	}
	return s.render(c, "users/edit", fiber.Map{"User": user})
}

// UpdateUser handles POST /users/:id/edit
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.UpdateUser(c.UserContext(), id, service.UserInput{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		ImgURL:    c.FormValue("img_url"),
	})
	if err != nil {
		return s.handleError(c, err, fmt.Sprintf("/users/%d/edit", id))
	}

	middleware.EntityWrites.WithLabelValues("user", "update").Inc()
	s.flash(c, fmt.Sprintf("User %s edited.", user.FullName()))
	return c.Redirect("/users", fiber.StatusSeeOther)
}

// DeleteUser handles POST /users/:id/delete
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.DeleteUser(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/users")
	}

	middleware.EntityWrites.WithLabelValues("user", "delete").Inc()
	s.flash(c, fmt.Sprintf("User %s deleted.", user.FullName()))
	return c.Redirect("/users", fiber.StatusSeeOther)
}
