// Package web holds the storefront's HTML templates.
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	html "github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templates embed.FS

// Engine returns a template engine over the embedded templates.
func Engine() *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("money", Money)
	engine.AddFunc("date", func(t time.Time) string { return t.Local().Format("02 Jan 2006 15:04") })
	return engine
}

// Money formats an amount in rupees with two decimals.
func Money(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
