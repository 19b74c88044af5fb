package rendering

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// layoutCSS carries layout hints into the templates. PagePadding is typed
// as CSS because it is a raw value like "0.5in 0.5in" that the HTML
// escaper would otherwise reject.
type layoutCSS struct {
	BodyFontSize     int
	NameFontSize     int
	SectionTitleSize int
	PagePadding      template.CSS
	LineHeight       float64
}

func toLayoutCSS(layout types.LayoutOptions) layoutCSS {
	return layoutCSS{
		BodyFontSize:     layout.BodyFontSize,
		NameFontSize:     layout.NameFontSize,
		SectionTitleSize: layout.SectionTitleSize,
		PagePadding:      template.CSS(layout.PagePadding),
		LineHeight:       layout.LineHeight,
	}
}

type resumeTemplateData struct {
	Resume      *types.ResumeDocument
	ContactLine string
	Layout      layoutCSS
}

type coverLetterTemplateData struct {
	Letter *types.CoverLetterDocument
	Layout layoutCSS
}

var resumeTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Resume.Name}}</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: Helvetica, Arial, sans-serif;
  font-size: {{.Layout.BodyFontSize}}pt;
  line-height: {{.Layout.LineHeight}};
  color: #000;
  max-width: 8.5in;
  margin: 0 auto;
  padding: {{.Layout.PagePadding}};
  background: white;
}
h1 {
  font-size: {{.Layout.NameFontSize}}pt;
  text-align: center;
  letter-spacing: 0.5pt;
  margin-bottom: 6pt;
}
.contact {
  text-align: center;
  border-bottom: 2pt solid #000;
  padding-bottom: 6pt;
  margin-bottom: 6pt;
}
.summary { margin-bottom: 6pt; }
.section { margin-bottom: 6pt; }
.section-title {
  font-size: {{.Layout.SectionTitleSize}}pt;
  font-weight: bold;
  text-transform: uppercase;
  border-bottom: 1pt solid #000;
  padding-bottom: 2pt;
  margin-bottom: 3pt;
}
.item { margin-bottom: 4pt; break-inside: avoid; }
.item-header { display: flex; justify-content: space-between; margin-bottom: 1pt; }
.item-meta { text-align: right; font-style: italic; }
.bullets { margin-left: 18pt; margin-top: 2pt; }
.bullets li { margin-bottom: 1.5pt; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
<h1>{{.Resume.Name}}</h1>
{{if .ContactLine}}<div class="contact">{{.ContactLine}}</div>{{end}}
{{with .Resume.Summary}}<p class="summary">{{.}}</p>{{end}}
{{range .Resume.Sections}}<div class="section">
<h3 class="section-title">{{.Name}}</h3>
{{range .Items}}<div class="item">
{{if or .Title .Organization}}<div class="item-header">
<div>{{if .Organization}}<strong>{{.Organization}}</strong>{{end}}{{if and .Organization .Title}} &bull; {{end}}{{if .Title}}<em>{{.Title}}</em>{{end}}</div>
<div class="item-meta">{{.Location}} {{.DateRange}}</div>
</div>
{{end}}{{if .Bullets}}<ul class="bullets">
{{range .Bullets}}<li>{{.Text}}</li>
{{end}}</ul>
{{end}}</div>
{{end}}</div>
{{end}}</body>
</html>
`))

var coverLetterTemplate = template.Must(template.New("cover_letter").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>Cover Letter</title>
<style>
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
  font-family: Georgia, 'Times New Roman', serif;
  font-size: {{.Layout.BodyFontSize}}pt;
  line-height: {{.Layout.LineHeight}};
  color: #000;
  max-width: 8.5in;
  margin: 0 auto;
  padding: {{.Layout.PagePadding}};
  background: white;
}
p { margin-bottom: 1em; text-align: justify; }
.date, .salutation { margin-bottom: 1em; }
.closing { margin-top: 1em; white-space: pre-line; }
@media print { body { margin: 0; } }
</style>
</head>
<body>
{{with .Letter.Date}}<div class="date">{{.}}</div>{{end}}
<div class="salutation">{{.Letter.Salutation}}</div>
{{range .Letter.Paragraphs}}<p>{{.Text}}</p>
{{end}}<div class="closing">{{.Letter.Closing}}</div>
</body>
</html>
`))

// RenderResumeHTML produces the print-ready HTML for a tailored resume.
// Document text is escaped by the template engine; layout hints control
// the embedded stylesheet.
func RenderResumeHTML(resume *types.ResumeDocument, layout types.LayoutOptions) (string, error) {
	data := resumeTemplateData{
		Resume:      resume,
		ContactLine: contactLine(resume),
		Layout:      toLayoutCSS(layout),
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, data); err != nil {
		return "", &TemplateError{Message: "failed to render resume HTML", Cause: err}
	}
	return buf.String(), nil
}

// RenderCoverLetterHTML produces the print-ready HTML for a cover letter
func RenderCoverLetterHTML(letter *types.CoverLetterDocument, layout types.LayoutOptions) (string, error) {
	data := coverLetterTemplateData{
		Letter: letter,
		Layout: toLayoutCSS(layout),
	}

	var buf bytes.Buffer
	if err := coverLetterTemplate.Execute(&buf, data); err != nil {
		return "", &TemplateError{Message: "failed to render cover letter HTML", Cause: err}
	}
	return buf.String(), nil
}

// contactLine joins the supplied contact fields into one centered line
func contactLine(resume *types.ResumeDocument) string {
	fields := []string{resume.Email, resume.Phone, resume.Location, resume.LinkedIn, resume.GitHub}
	present := make([]string, 0, len(fields))
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			present = append(present, f)
		}
	}
	return strings.Join(present, " | ")
}
