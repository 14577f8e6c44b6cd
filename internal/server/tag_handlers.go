package server

import (
	"fmt"

	"blogly/internal/middleware"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListTags handles GET /tags
func (s *Server) ListTags(c *fiber.Ctx) error {
	tags, err := s.tagService.ListTags(c.UserContext())
	if err != nil {
		return s.handleError(c, err, "/tags")
	}
	return s.render(c, "tags/index", fiber.Map{"Tags": tags})
}

// NewTagForm handles GET /tags/new
func (s *Server) NewTagForm(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.handleError(c, err, "/tags")
	}
	return s.render(c, "tags/new", fiber.Map{"Posts": posts})
}

// CreateTag handles POST /tags/new
func (s *Server) CreateTag(c *fiber.Ctx) error {
	tag, err := s.tagService.CreateTag(c.UserContext(), service.TagInput{
		Name:    c.FormValue("name"),
		PostIDs: formIDs(c, "post_ids"),
	})
	if err != nil {
		return s.handleError(c, err, "/tags/new")
	}

	middleware.EntityWrites.WithLabelValues("tag", "create").Inc()
	s.flash(c, fmt.Sprintf("Tag '%s' added.", tag.Name))
	return c.Redirect("/tags", fiber.StatusSeeOther)
}

// ShowTag handles GET /tags/:id
func (s *Server) ShowTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagService.GetTag(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/tags")
	}
	return s.render(c, "tags/show", fiber.Map{"Tag": tag})
}

// EditTagForm handles GET /tags/:id/edit
func (s *Server) EditTagForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagService.GetTag(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/tags")
	}

	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.handleError(c, err, "/tags")
	}

	assigned := make(map[uint]bool, len(tag.Posts))
	for _, p := range tag.Posts {
		assigned[p.ID] = true
	}

	return s.render(c, "tags/edit", fiber.Map{
		"Tag":      tag,
		"Posts":    posts,
		"Assigned": assigned,
	})
}

// UpdateTag handles POST /tags/:id/edit
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagService.UpdateTag(c.UserContext(), id, service.TagInput{
		Name:    c.FormValue("name"),
		PostIDs: formIDs(c, "post_ids"),
	})
	if err != nil {
		return s.handleError(c, err, fmt.Sprintf("/tags/%d/edit", id))
	}

	middleware.EntityWrites.WithLabelValues("tag", "update").Inc()
	s.flash(c, fmt.Sprintf("Tag '%s' edited.", tag.Name))
	return c.Redirect("/tags", fiber.StatusSeeOther)
}

// DeleteTag handles POST /tags/:id/delete
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tag, err := s.tagService.DeleteTag(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/tags")
	}

	middleware.EntityWrites.WithLabelValues("tag", "delete").Inc()
	s.flash(c, fmt.Sprintf("Tag '%s' deleted.", tag.Name))
	return c.Redirect("/tags", fiber.StatusSeeOther)
}
