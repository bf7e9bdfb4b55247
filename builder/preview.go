package builder

import (
	"bytes"
	"html/template"
)

// BaselineCSS is prepended to every rendered page.
const BaselineCSS = `*, *::before, *::after { box-sizing: border-box; }
body { margin: 0; font-family: system-ui, -apple-system, "Segoe UI", Roboto, sans-serif; }
img, video, iframe, embed, object { max-width: 100%; height: auto; }
.responsive-columns { display: grid; grid-template-columns: repeat(2, minmax(0, 1fr)); gap: 16px; }
.responsive-columns.three { grid-template-columns: repeat(3, minmax(0, 1fr)); }
@media (max-width: 767px) {
  .responsive-columns, .responsive-columns.three { grid-template-columns: 1fr; }
}`

var documentTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>{{.Baseline}}</style>
<style>{{.CSS}}</style>
</head>
<body>
{{.HTML}}
</body>
</html>
`))

// RenderDocument wraps markup in a standalone HTML document. The markup is
// trusted editor output and is inserted as is.
func RenderDocument(title string, m Markup) (string, error) {
	var buf bytes.Buffer
	err := documentTemplate.Execute(&buf, struct {
		Title    string
		Baseline template.CSS
		CSS      template.CSS
		HTML     template.HTML
	}{
		Title:    title,
		Baseline: template.CSS(BaselineCSS),
		CSS:      template.CSS(m.CSS),
		HTML:     template.HTML(m.HTML),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
