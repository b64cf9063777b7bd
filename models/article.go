package models

// Article is the full manuscript record submitted for compilation. The JSON
// shape matches what the editor frontend produces and what draft
// import/export files contain.
type Article struct {
	ID         string           `json:"id" validate:"required"`
	Status     ArticleStatus    `json:"status" validate:"omitempty,oneof=draft review approved published"`
	Language   Language         `json:"language" validate:"omitempty,oneof=TR EN"`
	Metadata   ArticleMetadata  `json:"metadata" validate:"required"`
	Abstract   AbstractSection  `json:"abstract" validate:"required"`
	History    ArticleHistory   `json:"history"`
	Ethics     EthicsStatement  `json:"ethics"`
	Sections   []ArticleSection `json:"sections" validate:"max=30,dive"`
	References string           `json:"references" validate:"max=400000"`
	CreatedAt  string           `json:"createdAt"`
	UpdatedAt  string           `json:"updatedAt"`
}

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusReview    ArticleStatus = "review"
	StatusApproved  ArticleStatus = "approved"
	StatusPublished ArticleStatus = "published"
)

// Language selects which language's title and abstract lead the layout and
// which locale generated date strings use.
type Language string

const (
	LanguageTR Language = "TR"
	LanguageEN Language = "EN"
)

type ArticleMetadata struct {
	TitleTurkish string   `json:"titleTurkish" validate:"required,max=500"`
	TitleEnglish string   `json:"titleEnglish" validate:"required,max=500"`
	Authors      []Author `json:"authors" validate:"required,min=1,max=20,dive"`
	DOI          string   `json:"doi" validate:"max=100"`
	JournalName  string   `json:"journalName" validate:"max=200"`
	Volume       string   `json:"volume" validate:"max=20"`
	Issue        string   `json:"issue" validate:"max=20"`
	Year         string   `json:"year" validate:"max=10"`
	Pages        string   `json:"pages" validate:"max=20"`
	Citation     string   `json:"citation" validate:"max=1000"`
	ContactText  string   `json:"contactText" validate:"max=500"`
}

type Author struct {
	ID              string `json:"id"`
	Name            string `json:"name" validate:"required,max=200"`
	Affiliation     string `json:"affiliation" validate:"max=500"`
	ORCID           string `json:"orcid" validate:"max=50"`
	Email           string `json:"email" validate:"omitempty,email"`
	IsCorresponding bool   `json:"isCorresponding"`
}

type AbstractSection struct {
	AbstractEnglish string   `json:"abstractEnglish" validate:"max=5000"`
	KeywordsEnglish []string `json:"keywordsEnglish" validate:"max=10,dive,max=100"`
	AbstractTurkish string   `json:"abstractTurkish" validate:"max=5000"`
	KeywordsTurkish []string `json:"keywordsTurkish" validate:"max=10,dive,max=100"`
}

// ArticleHistory holds ISO-8601 (YYYY-MM-DD) dates; they are reformatted to
// DD.MM.YYYY when rendered.
type ArticleHistory struct {
	ReceivedDate  string `json:"receivedDate"`
	AcceptedDate  string `json:"acceptedDate"`
	PublishedDate string `json:"publishedDate"`
}

type EthicsStatement struct {
	HasEthicsApproval bool   `json:"hasEthicsApproval"`
	EthicsText        string `json:"ethicsText" validate:"max=2000"`
	ApprovalDate      string `json:"approvalDate"`
	DecisionNumber    string `json:"decisionNumber" validate:"max=100"`
	CommitteeName     string `json:"committeeName" validate:"max=200"`
}

type ArticleSection struct {
	ID          string              `json:"id"`
	Title       string              `json:"title" validate:"required,max=200"`
	Content     string              `json:"content" validate:"max=100000"`
	Subsections []ArticleSubsection `json:"subsections" validate:"max=20,dive"`
	Tables      []TableData         `json:"tables" validate:"max=20,dive"`
	Order       int                 `json:"order"`
}

type ArticleSubsection struct {
	ID      string `json:"id"`
	Title   string `json:"title" validate:"max=200"`
	Content string `json:"content" validate:"max=50000"`
	Order   int    `json:"order"`
}

type TableLayout string

const (
	LayoutTwoColumn TableLayout = "two-column"
	LayoutFullWidth TableLayout = "full-width"
)

type TableData struct {
	ID      string      `json:"id"`
	Caption string      `json:"caption" validate:"max=500"`
	Layout  TableLayout `json:"layout" validate:"required,oneof=two-column full-width"`
	Columns []string    `json:"columns" validate:"max=20,dive,max=200"`
	Rows    [][]string  `json:"rows" validate:"max=100,dive,dive,max=1000"`
	Notes   string      `json:"notes" validate:"max=1000"`
}

// CorrespondingAuthor returns the author designated as primary contact: the
// first one flagged isCorresponding, falling back to the first author when
// none is flagged. Returns nil for an empty list.
func CorrespondingAuthor(authors []Author) *Author {
	for i := range authors {
		if authors[i].IsCorresponding {
			return &authors[i]
		}
	}
	if len(authors) > 0 {
		return &authors[0]
	}
	return nil
}
