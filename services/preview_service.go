package services

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"journal-craft/models"
)

// previewTemplate is parsed at init time to fail fast on template errors.
var previewTemplate *template.Template

func init() {
	previewTemplate = template.Must(template.New("preview").Parse(previewPage))
}

// PreviewService renders an article into an HTML approximation of the
// typeset layout: same ordering, numbering and language-conditional
// abstract placement as the LaTeX serializer, but through a screen markup
// engine, so typographic fidelity is best-effort only.
type PreviewService interface {
	RenderHTML(article *models.Article) (string, error)
}

type previewService struct {
	latex LatexService
}

func NewPreviewService(latex LatexService) PreviewService {
	return &previewService{latex: latex}
}

type previewData struct {
	Title     string
	AltTitle  string
	Journal   string
	IssueLine string
	Authors   template.HTML
	Abstracts template.HTML
	Body      template.HTML
}

func (s *previewService) RenderHTML(article *models.Article) (string, error) {
	doc := s.latex.BuildDocument(article)

	title, altTitle := doc.Front.TitleTurkish, doc.Front.TitleEnglish
	if doc.Language == models.LanguageEN {
		title, altTitle = altTitle, title
	}

	data := previewData{
		Title:     title,
		AltTitle:  altTitle,
		Journal:   doc.Journal.Name,
		IssueLine: fmt.Sprintf("Cilt %s, Sayı %s — %s", doc.Journal.Volume, doc.Journal.Issue, doc.Journal.MonthYearTR),
		Authors:   template.HTML(authorListHTML(doc.Front.Authors)),
		Abstracts: template.HTML(abstractsHTML(doc)),
		Body:      template.HTML(bodyHTML(doc.Body)),
	}

	var buf bytes.Buffer
	if err := previewTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func authorListHTML(authors []models.Author) string {
	var b strings.Builder
	for i, author := range authors {
		fmt.Fprintf(&b, `<span class="author">%s<sup>%d</sup></span>`, html.EscapeString(author.Name), i+1)
		if i < len(authors)-1 {
			b.WriteString(", ")
		}
	}
	b.WriteString(`<div class="affiliations">`)
	for i, author := range authors {
		affil := author.Affiliation
		if affil == "" {
			affil = "Kurum belirtilmemiş"
		}
		fmt.Fprintf(&b, `<div><sup>%d</sup> %s</div>`, i+1, html.EscapeString(affil))
	}
	b.WriteString(`</div>`)
	return b.String()
}

// abstractsHTML emits both abstracts with the article language's abstract
// first, mirroring the typeset front matter ordering.
func abstractsHTML(doc *models.Document) string {
	tr := abstractHTML("Öz", doc.Front.AbstractTR, doc.Front.KeywordsTR, "Anahtar Kelimeler")
	en := abstractHTML("Abstract", doc.Front.AbstractEN, doc.Front.KeywordsEN, "Keywords")
	if doc.Language == models.LanguageEN {
		return en + tr
	}
	return tr + en
}

func abstractHTML(label, text string, keywords []string, keywordLabel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="abstract"><h3>%s</h3><p>%s</p>`, label, html.EscapeString(text))
	if len(keywords) > 0 {
		fmt.Fprintf(&b, `<p class="keywords"><strong>%s:</strong> %s</p>`,
			keywordLabel, html.EscapeString(strings.Join(keywords, ", ")))
	}
	b.WriteString(`</div>`)
	return b.String()
}

func bodyHTML(blocks []models.Block) string {
	var b strings.Builder
	for _, block := range blocks {
		switch blk := block.(type) {
		case models.Heading:
			if blk.Level == 1 {
				fmt.Fprintf(&b, "<h2>%s</h2>\n", html.EscapeString(strings.ToUpper(blk.Title)))
			} else {
				fmt.Fprintf(&b, "<h3>%s</h3>\n", html.EscapeString(blk.Title))
			}
		case models.Paragraph:
			if blk.Text != "" {
				fmt.Fprintf(&b, "<p>%s</p>\n", html.EscapeString(blk.Text))
			}
		case models.Table:
			b.WriteString(tableHTML(blk.Data))
		case models.References:
			fmt.Fprintf(&b, `<div class="references"><h2>KAYNAKÇA</h2><pre>%s</pre></div>`+"\n",
				html.EscapeString(blk.Text))
		}
	}
	return b.String()
}

func tableHTML(table models.TableData) string {
	if len(table.Columns) == 0 {
		return ""
	}

	class := "table-two-column"
	if table.Layout == models.LayoutFullWidth {
		class = "table-full-width"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<figure class="%s"><figcaption>%s</figcaption><table><thead><tr>`, class, html.EscapeString(table.Caption))
	for _, col := range table.Columns {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(col))
	}
	b.WriteString("</tr></thead><tbody>")
	for _, row := range normalizeRows(len(table.Columns), table.Rows) {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	if table.Notes != "" {
		fmt.Fprintf(&b, `<p class="table-note">%s</p>`, html.EscapeString(table.Notes))
	}
	b.WriteString("</figure>\n")
	return b.String()
}

const previewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 52rem; margin: 2rem auto; line-height: 1.5; }
header { border-bottom: 2px solid #333; margin-bottom: 1.5rem; padding-bottom: 1rem; }
.journal { font-variant: small-caps; color: #555; }
h1 { font-size: 1.4rem; margin: .5rem 0 .2rem; }
.alt-title { font-style: italic; color: #444; }
.affiliations { font-size: .85rem; color: #555; margin-top: .4rem; }
.abstract { background: #f6f6f6; padding: .8rem 1rem; margin: .8rem 0; font-size: .92rem; }
.abstract h3 { margin: 0 0 .4rem; }
table { border-collapse: collapse; width: 100%; margin: .4rem 0; }
th, td { border-top: 1px solid #999; padding: .25rem .5rem; text-align: left; }
thead tr { border-bottom: 1px solid #333; }
figcaption { font-weight: bold; font-size: .9rem; }
.table-note, .keywords { font-size: .85rem; }
.references pre { white-space: pre-wrap; font-family: inherit; font-size: .9rem; }
</style>
</head>
<body>
<header>
<div class="journal">{{.Journal}} · {{.IssueLine}}</div>
<h1>{{.Title}}</h1>
<div class="alt-title">{{.AltTitle}}</div>
<div class="authors">{{.Authors}}</div>
</header>
{{.Abstracts}}
<main>
{{.Body}}
</main>
</body>
</html>
`
