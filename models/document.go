package models

// Document is the intermediate layout-free representation the renderer
// produces from an Article. It separates what content exists from how a
// target format escapes and lays it out: the LaTeX serializer and the HTML
// preview both walk the same Document.
type Document struct {
	Language Language
	Journal  JournalMeta
	Front    FrontMatter
	Body     []Block
}

// JournalMeta carries journal-level constants plus the per-issue fields
// taken from the article metadata.
type JournalMeta struct {
	Name        string
	URL         string
	ArticleType string
	EISSN       string
	MonthYearTR string
	MonthYearEN string
	Volume      string
	Issue       string
}

// FrontMatter is everything rendered before the article body. Dates are
// already in DD.MM.YYYY display form (empty when absent); all text fields
// are raw user text, escaped by the serializers.
type FrontMatter struct {
	TitleTurkish string
	TitleEnglish string
	Authors      []Author
	Received     string
	Accepted     string
	Published    string
	KeywordsTR   []string
	KeywordsEN   []string
	DOI          string
	EthicsText   string
	AbstractTR   string
	AbstractEN   string
	Citation     string
	StartPage    int
}

// Block is one typed element of the document body, emitted in order.
type Block interface {
	block()
}

// Heading is a section (level 1) or subsection (level 2) title. Level 1
// headings are uppercased at serialization time.
type Heading struct {
	Level int
	Title string
}

// Paragraph is a run of free-form body text.
type Paragraph struct {
	Text string
}

// Table wraps the table data of one embedded table. Rows are normalized to
// the column count before serialization.
type Table struct {
	Data TableData
}

// References is the pre-formatted reference block; its text passes through
// with minimal escaping so embedded formatting commands survive.
type References struct {
	Text string
}

func (Heading) block()    {}
func (Paragraph) block()  {}
func (Table) block()      {}
func (References) block() {}
