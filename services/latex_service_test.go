package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journal-craft/models"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
}

func testLatexService() *latexService {
	return &latexService{now: fixedClock}
}

func minimalArticle() *models.Article {
	return &models.Article{
		ID: "test-article",
		Metadata: models.ArticleMetadata{
			TitleTurkish: "Türkçe Başlık",
			TitleEnglish: "English Title",
			Authors:      []models.Author{{Name: "Ayşe Yılmaz"}},
		},
		Abstract: models.AbstractSection{
			AbstractTurkish: "Özet metni",
			AbstractEnglish: "Abstract text",
			KeywordsTurkish: []string{"sosyal", "çalışma"},
			KeywordsEnglish: []string{"social", "work"},
		},
		Sections: []models.ArticleSection{
			{Title: "Giriş", Content: "Giriş metni"},
			{Title: "Yöntem", Content: "Yöntem metni"},
		},
	}
}

func TestRenderDocumentStructuralCompleteness(t *testing.T) {
	svc := testLatexService()
	out := svc.RenderDocument(minimalArticle())

	require.NotEmpty(t, out)

	// Exactly one heading per section, uppercased, in input order.
	assert.Equal(t, 2, strings.Count(out, `\section{`))
	first := strings.Index(out, `\section{GIRIŞ}`)
	second := strings.Index(out, `\section{YÖNTEM}`)
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)

	// No ethics markup without approval, no references without a block.
	assert.NotContains(t, out, `\ethicsTR`)
	assert.NotContains(t, out, `\begin{scdreferences}`)

	// Document structure is complete.
	assert.Contains(t, out, `\documentclass{scd}`)
	assert.Contains(t, out, `\begin{document}`)
	assert.Contains(t, out, `\begin{scdbody}`)
	assert.Contains(t, out, `\end{scdbody}`)
	assert.Contains(t, out, `\end{document}`)
}

func TestRenderDocumentGeneratedStamp(t *testing.T) {
	svc := testLatexService()
	out := svc.RenderDocument(minimalArticle())

	assert.Contains(t, out, `\monthyearTR{Mart 2025}`)
	assert.Contains(t, out, `\monthyearEN{March 2025}`)
}

func TestRenderDocumentOptionalFieldsEmptyButWellFormed(t *testing.T) {
	svc := testLatexService()
	article := minimalArticle()
	article.History = models.ArticleHistory{}
	out := svc.RenderDocument(article)

	// Absent dates render as empty arguments, not dropped commands.
	assert.Contains(t, out, `\submittedTR{}`)
	assert.Contains(t, out, `\acceptedTR{}`)
	assert.Contains(t, out, `\publishedTR{}`)
}

func TestRenderDocumentDates(t *testing.T) {
	svc := testLatexService()
	article := minimalArticle()
	article.History = models.ArticleHistory{
		ReceivedDate: "2024-11-03",
		AcceptedDate: "2025-01-20",
	}
	out := svc.RenderDocument(article)

	assert.Contains(t, out, `\submittedTR{03.11.2024}`)
	assert.Contains(t, out, `\acceptedTR{20.01.2025}`)
	assert.Contains(t, out, `\publishedTR{}`)
}

func TestFormatDisplayDate(t *testing.T) {
	assert.Equal(t, "05.03.2024", formatDisplayDate("2024-03-05"))
	assert.Equal(t, "05.03.2024", formatDisplayDate("2024-03-05T12:30:00Z"))
	assert.Equal(t, "", formatDisplayDate(""))
	assert.Equal(t, "", formatDisplayDate("not-a-date"))
}

func TestAuthorLineConjunctionAndOrcid(t *testing.T) {
	authors := []models.Author{
		{Name: "Ali Kaya", ORCID: "0000-0001-2345-6789"},
		{Name: "Ayşe Yılmaz"},
		{Name: "Mehmet Demir"},
	}

	line := authorLine(authors, models.LanguageTR)
	assert.Contains(t, line, `Ali Kaya\authorsup{1}`)
	assert.Contains(t, line, `\href{https://orcid.org/0000-0001-2345-6789}{\SCDORCIDIcon}`)
	assert.Contains(t, line, `Ayşe Yılmaz\authorsup{2} ve Mehmet Demir\authorsup{3}`)

	// Single author: no separators at all.
	single := authorLine(authors[:1], models.LanguageTR)
	assert.NotContains(t, single, " ve ")

	// English conjunction.
	en := authorLine(authors, models.LanguageEN)
	assert.Contains(t, en, " and Mehmet Demir")
}

func TestAffiliationBlockFallback(t *testing.T) {
	authors := []models.Author{
		{Name: "Ali Kaya", Affiliation: "Ankara Üniversitesi"},
		{Name: "Ayşe Yılmaz"},
	}

	block := affiliationBlock(authors, models.LanguageTR)
	assert.Contains(t, block, `\authorsup{1}} Ankara Üniversitesi`)
	assert.Contains(t, block, `\authorsup{2}} Kurum belirtilmemiş`)
}

func TestHeaderInitials(t *testing.T) {
	one := []models.Author{{Name: "Ayşe Yılmaz"}}
	many := append(one, models.Author{Name: "Ali Kaya"})

	assert.Equal(t, "YILMAZ", headerInitials(one, models.LanguageTR))
	assert.Equal(t, "YILMAZ ve ark.", headerInitials(many, models.LanguageTR))
	assert.Equal(t, "YILMAZ et al.", headerInitials(many, models.LanguageEN))
	assert.Equal(t, "", headerInitials(nil, models.LanguageTR))
}

func TestCorrespondingAuthorSelection(t *testing.T) {
	svc := testLatexService()

	// No flag: first author is chosen.
	article := minimalArticle()
	article.Metadata.Authors = []models.Author{
		{Name: "Birinci Yazar", Email: "first@example.org"},
		{Name: "İkinci Yazar", Email: "second@example.org"},
		{Name: "Üçüncü Yazar", Email: "third@example.org"},
	}
	out := svc.RenderDocument(article)
	assert.Contains(t, out, `\correspondingauthor{Birinci Yazar}{first@example.org}`)

	// Flag on a non-first author wins.
	article.Metadata.Authors[1].IsCorresponding = true
	out = svc.RenderDocument(article)
	assert.Contains(t, out, `\correspondingauthor{İkinci Yazar}{second@example.org}`)

	// Empty author list: no corresponding-author line.
	article.Metadata.Authors = nil
	out = svc.RenderDocument(article)
	assert.NotContains(t, out, `\correspondingauthor`)
}

func TestSerializeTableCells(t *testing.T) {
	table := models.TableData{
		Caption: "Katılımcı özellikleri",
		Layout:  models.LayoutTwoColumn,
		Columns: []string{"Değişken", "N", "%"},
		Rows: [][]string{
			{"Kadın", "42", "%60"},
			{"Erkek", "28", "%40"},
		},
	}

	out := serializeTable(table)

	assert.Contains(t, out, `\begin{scdtable}{l l l}{Katılımcı özellikleri}`)
	assert.Equal(t, 3, strings.Count(out, `\textbf{`))
	assert.Contains(t, out, `Kadın & 42 & \%60 \\`)
	assert.Contains(t, out, `Erkek & 28 & \%40 \\`)
	assert.Contains(t, out, `\toprule`)
	assert.Contains(t, out, `\midrule`)
	assert.Contains(t, out, `\bottomrule`)
	assert.NotContains(t, out, `\tablenote`)

	// Exactly two data rows of three cells each.
	assert.Equal(t, 3, strings.Count(out, ` \\`)) // header + 2 rows

	// Full-width layout switches environment.
	table.Layout = models.LayoutFullWidth
	table.Notes = "p < .05"
	out = serializeTable(table)
	assert.Contains(t, out, `\begin{scdtable*}`)
	assert.Contains(t, out, `\end{scdtable*}`)
	assert.Contains(t, out, `\tablenote{p < .05}`)
}

func TestSerializeTableRowNormalization(t *testing.T) {
	table := models.TableData{
		Caption: "Uyumsuz satırlar",
		Layout:  models.LayoutTwoColumn,
		Columns: []string{"A", "B", "C"},
		Rows: [][]string{
			{"kısa"},
			{"bir", "iki", "üç", "dört"},
		},
	}

	out := serializeTable(table)
	assert.Contains(t, out, `kısa &  &  \\`)
	assert.Contains(t, out, `bir & iki & üç \\`)
	assert.NotContains(t, out, "dört")
}

func TestSerializeTableNoColumns(t *testing.T) {
	assert.Equal(t, "", serializeTable(models.TableData{Caption: "Boş"}))
}

func TestRenderDocumentEthicsRequiresFlagAndText(t *testing.T) {
	svc := testLatexService()

	article := minimalArticle()
	article.Ethics = models.EthicsStatement{HasEthicsApproval: true}
	assert.NotContains(t, svc.RenderDocument(article), `\ethicsTR`)

	article.Ethics = models.EthicsStatement{EthicsText: "Onay yok"}
	assert.NotContains(t, svc.RenderDocument(article), `\ethicsTR`)

	article.Ethics = models.EthicsStatement{HasEthicsApproval: true, EthicsText: "Etik kurul onayı alınmıştır."}
	assert.Contains(t, svc.RenderDocument(article), `\ethicsTR{Etik kurul onayı alınmıştır.}`)
}

func TestRenderDocumentReferencesBlock(t *testing.T) {
	svc := testLatexService()

	article := minimalArticle()
	article.References = `Yılmaz, A. & Kaya, B. (2020). \textit{Sosyal Çalışma}.`
	out := svc.RenderDocument(article)

	assert.Contains(t, out, "\\begin{scdreferences}\nYılmaz, A. \\& Kaya, B. (2020). \\textit{Sosyal Çalışma}.\n\\end{scdreferences}")
}

func TestRenderDocumentSubsectionsAndTablesOrdering(t *testing.T) {
	svc := testLatexService()
	article := minimalArticle()
	article.Sections = []models.ArticleSection{{
		Title:   "Bulgular",
		Content: "Bulgular metni",
		Tables: []models.TableData{{
			Caption: "Tablo 1",
			Layout:  models.LayoutTwoColumn,
			Columns: []string{"X"},
			Rows:    [][]string{{"1"}},
		}},
		Subsections: []models.ArticleSubsection{
			{Title: "Alt Bölüm", Content: "Alt bölüm metni"},
		},
	}}

	out := svc.RenderDocument(article)

	sectionIdx := strings.Index(out, `\section{BULGULAR}`)
	tableIdx := strings.Index(out, `\begin{scdtable}`)
	subIdx := strings.Index(out, `\subsection{Alt Bölüm}`)
	require.True(t, sectionIdx >= 0 && tableIdx >= 0 && subIdx >= 0)

	// Tables come before subsections, both after the section heading.
	assert.Less(t, sectionIdx, tableIdx)
	assert.Less(t, tableIdx, subIdx)

	// Subsection titles are not uppercased.
	assert.NotContains(t, out, `\subsection{ALT BÖLÜM}`)
}

func TestBuildDocumentDefaults(t *testing.T) {
	svc := testLatexService()
	article := minimalArticle()
	doc := svc.BuildDocument(article)

	assert.Equal(t, models.LanguageTR, doc.Language)
	assert.Equal(t, "Sosyal Çalışma Dergisi", doc.Journal.Name)
	assert.Equal(t, "1", doc.Journal.Volume)
	assert.Equal(t, "1", doc.Journal.Issue)
	assert.Equal(t, 1, doc.Front.StartPage)
}

func TestRenderDocumentEscapesUserText(t *testing.T) {
	svc := testLatexService()
	article := minimalArticle()
	article.Metadata.TitleTurkish = "Oran %50 & üzeri"
	article.Sections[0].Content = "Deney_1 sonucu #3"

	out := svc.RenderDocument(article)
	assert.Contains(t, out, `\titleTR{Oran \%50 \& üzeri}`)
	assert.Contains(t, out, `Deney\_1 sonucu \#3`)
}
