package config

// Journal-level constants for the house style. These end up in the document
// preamble and in the default article produced for new drafts.
const (
	JournalName        = "Sosyal Çalışma Dergisi"
	JournalNameEnglish = "Turkish Journal of Social Work"
	JournalEISSN       = "2587-1412"
	JournalURL         = "https://dergipark.org.tr/tr/pub/scd"
	JournalPublisher   = "Journal Craft"
	JournalArticleType = "Araştırma"
	JournalStartPage   = 1
)

// DefaultSections is the starter section skeleton for a new draft.
var DefaultSections = []string{"Giriş", "Yöntem", "Bulgular", "Tartışma", "Sonuç"}
