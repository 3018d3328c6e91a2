package forms

import (
	"embed"
	"io/fs"

	gohttp "github.com/km-arc/formguard/framework/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

type pageInput struct {
	Name    string
	Value   string
	Rules   string // rule names joined with |
	Visible bool   // the error element of the input is shown
	Message string
}

// pageData drives the server-rendered page. The page has no client-side
// event wiring, so its submit button stays enabled; Invalid only marks the
// form for styling.
type pageData struct {
	Title     string
	Form      string
	Session   string
	Inputs    []pageInput
	Invalid   bool
	Submitted bool
}

func newViewEngine() *gohttp.ViewEngine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err) // fixed path inside the embedded tree
	}
	return gohttp.NewViewEngine(sub, ".html")
}
