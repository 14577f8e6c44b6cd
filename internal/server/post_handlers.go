package server

import (
	"fmt"

	"blogly/internal/middleware"
	"blogly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NewPostForm handles GET /users/:id/posts/new
func (s *Server) NewPostForm(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return s.handleError(c, err, "/users")
	}

	tags, err := s.tagService.ListTags(c.UserContext())
	if err != nil {
		return s.handleError(c, err, "/users")
	}

	return s.render(c, "posts/new", fiber.Map{"User": user, "Tags": tags})
}

// CreatePost handles POST /users/:id/posts/new
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:  userID,
		Title:   c.FormValue("title"),
		Content: c.FormValue("content"),
		TagIDs:  formIDs(c, "tag_ids"),
	})
	if err != nil {
		return s.handleError(c, err, fmt.Sprintf("/users/%d/posts/new", userID))
	}

	middleware.EntityWrites.WithLabelValues("post", "create").Inc()
	s.flash(c, fmt.Sprintf("Post '%s' added.", post.Title))
	return c.Redirect(fmt.Sprintf("/users/%d", userID), fiber.StatusSeeOther)
}

// ShowPost handles GET /posts/:id
func (s *Server) ShowPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/")
	}
	return s.render(c, "posts/show", fiber.Map{"Post": post})
}

// EditPostForm handles GET /posts/:id/edit
func (s *Server) EditPostForm(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/")
	}
	return s.render(c, "posts/edit", fiber.Map{"Post": post})
}

// UpdatePost handles POST /posts/:id/edit
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id,
		c.FormValue("title"), c.FormValue("content"))
	if err != nil {
		return s.handleError(c, err, fmt.Sprintf("/posts/%d/edit", id))
	}

	middleware.EntityWrites.WithLabelValues("post", "update").Inc()
	s.flash(c, fmt.Sprintf("Post '%s' edited.", post.Title))
	return c.Redirect(fmt.Sprintf("/posts/%d", id), fiber.StatusSeeOther)
}

// DeletePost handles POST /posts/:id/delete
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	ownerID, err := s.postService.DeletePost(c.UserContext(), id)
	if err != nil {
		return s.handleError(c, err, "/")
	}

	middleware.EntityWrites.WithLabelValues("post", "delete").Inc()
	s.flash(c, "Post deleted.")
	return c.Redirect(fmt.Sprintf("/users/%d", ownerID), fiber.StatusSeeOther)
}
