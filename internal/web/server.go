package web

import (
	"html/template"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jacobduba/sd18-isu/internal/search"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>Code Search</title></head>
<body>
  <h1>Code Search</h1>
  <form method="post" action="/">
    <input type="text" name="code_description" size="60"
           placeholder="Describe the code you are looking for" value="{{.Query}}">
    <button type="submit">Search</button>
  </form>
  {{if .Unavailable}}
    <p><strong>Search is currently unavailable.</strong> {{.Reason}}</p>
  {{else if .Searched}}
    {{if .Results}}
      <ol>
        {{range .Results}}
        <li>
          <pre>{{.Snippet}}</pre>
          <p>score: {{printf "%.2f" .Score}}</p>
        </li>
        {{end}}
      </ol>
    {{else}}
      <p>No matches.</p>
    {{end}}
  {{end}}
</body>
</html>`

// Server is the thin HTML presentation layer over the search service.
type Server struct {
	service *search.Service
	topK    int
	router  *gin.Engine
}

func NewServer(service *search.Service, topK int) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{service: service, topK: topK, router: gin.New()}
	s.router.Use(gin.Recovery())
	s.router.SetHTMLTemplate(template.Must(template.New("index").Parse(pageTemplate)))
	s.router.GET("/", s.handleIndex)
	s.router.POST("/", s.handleSearch)
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return s
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	log.Printf("web: listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index", gin.H{})
}

func (s *Server) handleSearch(c *gin.Context) {
	query := c.PostForm("code_description")

	resp, err := s.service.SearchAndRank(c.Request.Context(), query, s.topK)
	if err != nil {
		log.Printf("web: search failed: %v", err)
		c.HTML(http.StatusServiceUnavailable, "index", gin.H{
			"Query":       query,
			"Unavailable": true,
			"Reason":      resp.Reason,
		})
		return
	}

	c.HTML(http.StatusOK, "index", gin.H{
		"Query":    query,
		"Searched": true,
		"Results":  resp.Results,
	})
}
