package services

import (
	"fmt"
	"strings"
	"time"

	"journal-craft/config"
	"journal-craft/models"
)

// LatexService turns an article record into LaTeX markup for the scd.cls
// document class. BuildDocument decides what content exists and in which
// order; Serialize decides how it is escaped and laid out.
type LatexService interface {
	BuildDocument(article *models.Article) *models.Document
	Serialize(doc *models.Document) string
	RenderDocument(article *models.Article) string
}

type latexService struct {
	now func() time.Time
}

func NewLatexService() LatexService {
	return &latexService{now: time.Now}
}

var turkishMonths = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

func (s *latexService) RenderDocument(article *models.Article) string {
	return s.Serialize(s.BuildDocument(article))
}

// BuildDocument assembles the intermediate document model. Deterministic for
// a given article except for the "generated on" month/year stamp, which is
// a production timestamp rather than a content field.
func (s *latexService) BuildDocument(article *models.Article) *models.Document {
	m := article.Metadata
	lang := article.Language
	if lang == "" {
		lang = models.LanguageTR
	}

	now := s.now()

	journalName := m.JournalName
	if journalName == "" {
		journalName = config.JournalName
	}
	volume := m.Volume
	if volume == "" {
		volume = "1"
	}
	issue := m.Issue
	if issue == "" {
		issue = "1"
	}

	ethicsText := ""
	if article.Ethics.HasEthicsApproval && article.Ethics.EthicsText != "" {
		ethicsText = article.Ethics.EthicsText
	}

	doc := &models.Document{
		Language: lang,
		Journal: models.JournalMeta{
			Name:        journalName,
			URL:         config.JournalURL,
			ArticleType: config.JournalArticleType,
			EISSN:       config.JournalEISSN,
			MonthYearTR: fmt.Sprintf("%s %d", turkishMonths[now.Month()-1], now.Year()),
			MonthYearEN: now.Format("January 2006"),
			Volume:      volume,
			Issue:       issue,
		},
		Front: models.FrontMatter{
			TitleTurkish: m.TitleTurkish,
			TitleEnglish: m.TitleEnglish,
			Authors:      m.Authors,
			Received:     formatDisplayDate(article.History.ReceivedDate),
			Accepted:     formatDisplayDate(article.History.AcceptedDate),
			Published:    formatDisplayDate(article.History.PublishedDate),
			KeywordsTR:   article.Abstract.KeywordsTurkish,
			KeywordsEN:   article.Abstract.KeywordsEnglish,
			DOI:          m.DOI,
			EthicsText:   ethicsText,
			AbstractTR:   article.Abstract.AbstractTurkish,
			AbstractEN:   article.Abstract.AbstractEnglish,
			Citation:     m.Citation,
			StartPage:    config.JournalStartPage,
		},
	}

	for _, section := range article.Sections {
		doc.Body = append(doc.Body, models.Heading{Level: 1, Title: section.Title})
		doc.Body = append(doc.Body, models.Paragraph{Text: section.Content})
		for _, table := range section.Tables {
			doc.Body = append(doc.Body, models.Table{Data: table})
		}
		for _, sub := range section.Subsections {
			doc.Body = append(doc.Body, models.Heading{Level: 2, Title: sub.Title})
			doc.Body = append(doc.Body, models.Paragraph{Text: sub.Content})
		}
	}

	if article.References != "" {
		doc.Body = append(doc.Body, models.References{Text: article.References})
	}

	return doc
}

// Serialize emits the complete LaTeX source for a document. Optional fields
// serialize to empty strings so the output stays syntactically well-formed
// no matter which fields are populated.
func (s *latexService) Serialize(doc *models.Document) string {
	var b strings.Builder

	corrLine := ""
	if corr := models.CorrespondingAuthor(doc.Front.Authors); corr != nil {
		corrLine = fmt.Sprintf(`\correspondingauthor{%s}{%s}`, EscapeLatex(corr.Name), corr.Email)
	}
	doiLine := ""
	if doc.Front.DOI != "" {
		doiLine = fmt.Sprintf(`\doi{%s}`, EscapeLatex(doc.Front.DOI))
	}
	ethicsLine := ""
	if doc.Front.EthicsText != "" {
		ethicsLine = fmt.Sprintf(`\ethicsTR{%s}`, EscapeLatex(doc.Front.EthicsText))
	}
	citationLine := ""
	if doc.Front.Citation != "" {
		citationLine = fmt.Sprintf(`\citationtext{%s}`, EscapeLatex(doc.Front.Citation))
	}

	fmt.Fprintf(&b, `\documentclass{scd}
\setlang{%s}

%% --- Journal-level metadata ---
\journalname{%s}
\journalurl{%s}
\articletype{%s}
\eissn{%s}
\monthyearTR{%s}
\monthyearEN{%s}
\volume{%s}
\issue{%s}

%% --- Article-level metadata ---
\titleTR{%s}
\titleEN{%s}

\authorname{%s}
\initialsauthors{%s}

\authoraffiliation{%%
  %s
}

%s

\submittedTR{%s}
\acceptedTR{%s}
\publishedTR{%s}

\keywordsTR{%s}
\keywordsEN{%s}

%s
%s

\abstractTR{%s}
\abstractEN{%s}

%s

\startpage{%d}

\begin{document}

\maketitle

\begin{scdbody}

`,
		doc.Language,
		EscapeLatex(doc.Journal.Name),
		doc.Journal.URL,
		doc.Journal.ArticleType,
		doc.Journal.EISSN,
		doc.Journal.MonthYearTR,
		doc.Journal.MonthYearEN,
		EscapeLatex(doc.Journal.Volume),
		EscapeLatex(doc.Journal.Issue),
		EscapeLatex(doc.Front.TitleTurkish),
		EscapeLatex(doc.Front.TitleEnglish),
		authorLine(doc.Front.Authors, doc.Language),
		headerInitials(doc.Front.Authors, doc.Language),
		affiliationBlock(doc.Front.Authors, doc.Language),
		corrLine,
		doc.Front.Received,
		doc.Front.Accepted,
		doc.Front.Published,
		strings.Join(doc.Front.KeywordsTR, ", "),
		strings.Join(doc.Front.KeywordsEN, ", "),
		doiLine,
		ethicsLine,
		EscapeLatex(doc.Front.AbstractTR),
		EscapeLatex(doc.Front.AbstractEN),
		citationLine,
		doc.Front.StartPage,
	)

	for _, block := range doc.Body {
		switch blk := block.(type) {
		case models.Heading:
			if blk.Level == 1 {
				fmt.Fprintf(&b, "\\section{%s}\n", EscapeLatex(strings.ToUpper(blk.Title)))
			} else {
				fmt.Fprintf(&b, "\\subsection{%s}\n", EscapeLatex(blk.Title))
			}
		case models.Paragraph:
			b.WriteString(EscapeLatex(blk.Text))
			b.WriteString("\n\n")
		case models.Table:
			b.WriteString(serializeTable(blk.Data))
		case models.References:
			fmt.Fprintf(&b, "\\begin{scdreferences}\n%s\n\\end{scdreferences}\n\n", EscapeReferences(blk.Text))
		}
	}

	b.WriteString("\\end{scdbody}\n\n\\end{document}\n")

	return b.String()
}

// authorLine joins the authors with affiliation superscripts and ORCID
// links, using the language's conjunction before the last author.
func authorLine(authors []models.Author, lang models.Language) string {
	var b strings.Builder
	for i, author := range authors {
		b.WriteString(EscapeLatex(author.Name))
		fmt.Fprintf(&b, `\authorsup{%d}`, i+1)
		if author.ORCID != "" {
			fmt.Fprintf(&b, ` \href{https://orcid.org/%s}{\SCDORCIDIcon}`, author.ORCID)
		}
		switch {
		case i == len(authors)-1:
		case i == len(authors)-2:
			b.WriteString(conjunction(lang))
		default:
			b.WriteString(" ")
		}
	}
	return b.String()
}

func conjunction(lang models.Language) string {
	if lang == models.LanguageEN {
		return " and "
	}
	return " ve "
}

// affiliationBlock emits one numbered line per author, matching the author
// line's superscript indices.
func affiliationBlock(authors []models.Author, lang models.Language) string {
	lines := make([]string, 0, len(authors))
	for i, author := range authors {
		affil := author.Affiliation
		if affil == "" {
			if lang == models.LanguageEN {
				affil = "Affiliation not stated"
			} else {
				affil = "Kurum belirtilmemiş"
			}
		}
		lines = append(lines, fmt.Sprintf(`\noindent\makebox[0pt][r]{\authorsup{%d}} %s`, i+1, EscapeLatex(affil)))
	}
	return strings.Join(lines, "\\par\\vspace{1pt}\n  ")
}

// headerInitials builds the running-header author text: the first author's
// surname uppercased, with the "and others" suffix when the article has
// more than one author.
func headerInitials(authors []models.Author, lang models.Language) string {
	if len(authors) == 0 {
		return ""
	}
	parts := strings.Fields(authors[0].Name)
	if len(parts) == 0 {
		return ""
	}
	surname := strings.ToUpper(parts[len(parts)-1])
	if len(authors) > 1 {
		if lang == models.LanguageEN {
			return surname + " et al."
		}
		return surname + " ve ark."
	}
	return surname
}

// serializeTable emits one scdtable environment: a left-aligned column spec
// per column, bold escaped header, booktabs rules, escaped data rows joined
// with the column separator, and an optional note.
func serializeTable(table models.TableData) string {
	if len(table.Columns) == 0 {
		return ""
	}

	colSpec := strings.TrimSuffix(strings.Repeat("l ", len(table.Columns)), " ")
	env := "scdtable"
	if table.Layout == models.LayoutFullWidth {
		env = "scdtable*"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n\\begin{%s}{%s}{%s}\n", env, colSpec, EscapeLatex(table.Caption))
	b.WriteString("\\toprule\n")

	header := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = fmt.Sprintf(`\textbf{%s}`, EscapeLatex(col))
	}
	b.WriteString(strings.Join(header, " & "))
	b.WriteString(" \\\\\n\\midrule\n")

	for _, row := range normalizeRows(len(table.Columns), table.Rows) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = EscapeLatex(cell)
		}
		b.WriteString(strings.Join(cells, " & "))
		b.WriteString(" \\\\\n")
	}

	b.WriteString("\\bottomrule\n")
	if table.Notes != "" {
		fmt.Fprintf(&b, "\\tablenote{%s}\n", EscapeLatex(table.Notes))
	}
	fmt.Fprintf(&b, "\\end{%s}\n\n", env)

	return b.String()
}

// normalizeRows forces every row to the column count: short rows are padded
// with empty cells, long rows truncated. Keeps the emitted table aligned
// even when the editor let a row drift out of sync with the columns.
func normalizeRows(columns int, rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == columns {
			out[i] = row
			continue
		}
		fixed := make([]string, columns)
		copy(fixed, row)
		out[i] = fixed
	}
	return out
}

// formatDisplayDate converts an ISO YYYY-MM-DD date into the DD.MM.YYYY
// display form. Empty or unparsable input yields an empty string.
func formatDisplayDate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	if idx := strings.IndexByte(dateStr, 'T'); idx >= 0 {
		dateStr = dateStr[:idx]
	}
	parts := strings.Split(dateStr, "-")
	if len(parts) != 3 {
		return ""
	}
	return fmt.Sprintf("%s.%s.%s", parts[2], parts[1], parts[0])
}
