package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"todolist/internal/apperror"
	"todolist/internal/models"
)

// handleIndex renders the full todo list.
func (s *Server) handleIndex(c *gin.Context) {
	todos, err := s.store.List(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, todos); err != nil {
		s.respondError(c, apperror.Render(err))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// handleCreate adds a todo from the submitted form.
func (s *Server) handleCreate(c *gin.Context) {
	var req models.NewTodo
	if err := bindForm(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.Create(c.Request.Context(), req.Description); err != nil {
		s.respondError(c, err)
		return
	}
	redirectHome(c)
}

// handleToggle flips the done flag of a todo.
func (s *Server) handleToggle(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.Toggle(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	redirectHome(c)
}

// handleRename replaces the description of a todo.
func (s *Server) handleRename(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}

	var req models.RenameTodo
	if err := bindForm(c, &req); err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.Rename(c.Request.Context(), id, req.Description); err != nil {
		s.respondError(c, err)
		return
	}
	redirectHome(c)
}

// handleDelete removes a todo.
func (s *Server) handleDelete(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		s.respondError(c, err)
		return
	}
	redirectHome(c)
}

// bindForm decodes the form body into dst and validates it. Only the
// request body is read; query parameters never populate the form.
func bindForm(c *gin.Context, dst any) error {
	var b binding.Binding
	switch ct := c.ContentType(); ct {
	case binding.MIMEPOSTForm:
		b = binding.FormPost
	case binding.MIMEMultipartPOSTForm:
		b = binding.FormMultipart
	default:
		return apperror.MalformedRequest(fmt.Errorf("expected a form body, got content type %q", ct))
	}

	err := c.ShouldBindWith(dst, b)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return apperror.Validation(err)
	}
	return apperror.MalformedRequest(err)
}
