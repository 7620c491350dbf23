package report

import (
	"io"
	"text/template"
)

// Values are inserted verbatim. Package and license strings come from the
// local toolchain and are not HTML-escaped.
var htmlTemplate = template.Must(template.New("report").Parse(`<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
<p>Ecosystem: {{.R.Meta.Ecosystem}} &middot; Generated: {{.Generated}}{{with .R.Meta.Repo}} &middot; Repository: {{.}}{{end}}{{with .R.Meta.Branch}} &middot; Branch: {{.}}{{end}}{{with .R.Meta.Commit}} &middot; Commit: {{.}}{{end}}</p>
<h2>Dependencies and Licenses</h2>
<table border="1">
<tr><th>Package</th><th>License</th></tr>
{{range .R.Dependencies}}<tr><td>{{.Name}}</td><td>{{.License}}</td></tr>
{{end}}</table>
{{if .R.Findings}}<h2>Incompatible Licenses</h2>
<ul>
{{range .R.Findings}}<li>{{.String}}</li>
{{end}}</ul>
{{else}}<h2>No Incompatible Licenses Found</h2>
{{end}}</body>
</html>
`))

// WriteHTML renders r as an HTML document.
func WriteHTML(w io.Writer, r Report) error {
	return htmlTemplate.Execute(w, struct {
		Title     string
		Generated string
		R         Report
	}{
		Title:     Title,
		Generated: r.Meta.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		R:         r,
	})
}
