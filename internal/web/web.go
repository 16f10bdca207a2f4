// Package web serves the embedded single-page browser client for the job
// tracker. The client keeps its state in memory and synchronizes with the
// REST API; the API base URL is injected from configuration.
package web

import (
	"embed"
	"encoding/json"
	"net/http"
	"text/template"

	"github.com/gin-gonic/gin"
	"github.com/jobtrack/jobtrack-be/internal/api/domain"
)

//go:embed assets/index.html assets/app.js
var files embed.FS

var appTemplate = template.Must(template.New("app.js").ParseFS(files, "assets/app.js"))

// statusOptions are the status choices the client offers, rendered into the
// page as a JSON array.
var statusOptions = mustJSON([]string{
	domain.StatusApplied,
	domain.StatusInterview,
	domain.StatusOffer,
	domain.StatusRejected,
})

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

// App serves the embedded client.
type App struct {
	apiBaseURL string
}

// New creates the client app. apiBaseURL is what the browser will call,
// usually just "/api" when the client is served by the API service itself.
func New(apiBaseURL string) *App {
	if apiBaseURL == "" {
		apiBaseURL = "/api"
	}
	return &App{apiBaseURL: apiBaseURL}
}

// Register mounts the client routes on the router.
func (a *App) Register(r *gin.Engine) {
	r.GET("/", a.index)
	r.GET("/app.js", a.script)
}

func (a *App) index(c *gin.Context) {
	page, err := files.ReadFile("assets/index.html")
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (a *App) script(c *gin.Context) {
	c.Header("Content-Type", "application/javascript; charset=utf-8")
	c.Status(http.StatusOK)
	_ = appTemplate.Execute(c.Writer, map[string]string{
		"APIBaseURL": a.apiBaseURL,
		"Statuses":   statusOptions,
	})
}
