package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

const displayDateLayout = "Jan 2, 2006"

var funcMap = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(displayDateLayout)
	},
	"dateOrDash": func(t *time.Time) string {
		if t == nil || t.IsZero() {
			return "-"
		}
		return t.Format(displayDateLayout)
	},
	"orNA": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
}

// loadTemplates parses the page and partial templates. An empty dir uses
// the copies compiled into the binary.
func loadTemplates(dir string) (*template.Template, error) {
	tmpl := template.New("").Funcs(funcMap)
	if dir != "" {
		return tmpl.ParseGlob(dir + "/*.html")
	}
	return tmpl.ParseFS(embeddedTemplates, "templates/*.html")
}

// serveStatic mounts /static from dir, or from the embedded assets when
// dir is empty.
func serveStatic(router *gin.Engine, dir string) {
	if dir != "" {
		router.Static("/static", dir)
		return
	}
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	router.StaticFS("/static", http.FS(sub))
}
