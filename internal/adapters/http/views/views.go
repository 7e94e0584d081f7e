package views

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templates embed.FS

// Layout is the page shell every storefront view renders into
const Layout = "layouts/main"

// New builds the HTML engine over the embedded templates.
// money renders an amount in the store currency.
func New(money func(int64) string, reload bool) *html.Engine {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		panic(err)
	}

	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.Reload(reload)
	engine.AddFunc("money", money)
	engine.AddFunc("inc", func(i int) int { return i + 1 })
	engine.AddFunc("dec", func(i int) int { return i - 1 })
	return engine
}
