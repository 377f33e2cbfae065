package server

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"todolist/internal/view"
)

// mountStatic serves the stylesheet, from disk when a directory is
// configured and from the embedded copy otherwise.
func (s *Server) mountStatic() {
	if s.opts.StaticDir != "" {
		info, err := os.Stat(s.opts.StaticDir)
		if err == nil && info.IsDir() {
			s.engine.StaticFS("/static", gin.Dir(s.opts.StaticDir, false))
			return
		}
		s.logger.Warn("static directory missing; using embedded assets", "path", s.opts.StaticDir, "error", err)
	}
	s.engine.StaticFS("/static", http.FS(view.Assets()))
}
