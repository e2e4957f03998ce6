package showreel

// Layout classifies the structure of a catalog page.
type Layout string

// Known page layouts, from most to least specific.
const (
	LayoutProjectWithCredits Layout = "project_with_credits"
	LayoutBasicGallery       Layout = "basic_gallery"
	LayoutDirectory          Layout = "directory_style"
	LayoutUnknown            Layout = "unknown"
)

// StructureSignature holds derived facts about one page's link and keyword
// composition plus the resulting layout classification. Signatures are
// created fresh per page and never persisted beyond one attempt's ledger
// entry.
type StructureSignature struct {
	ProjectLinks  int
	CompanyLinks  int
	PersonLinks   int
	HasPagination bool
	MaxPage       int
	HasRoleInfo   bool
	RolesDetected []string
	HasSections   bool

	Label      Layout
	Confidence float64
}

// Classifier infers a page's structure signature from raw markup. It never
// fails: malformed or empty markup classifies as LayoutUnknown with the
// lowest confidence band.
type Classifier interface {
	Classify(markup, url string) *StructureSignature
}

// RoleVocabulary is the fixed set of role keywords used for role-info
// detection and for gating generic "Role: Person" extraction.
var RoleVocabulary = []string{
	"director",
	"producer",
	"editor",
	"dop",
	"client",
	"agency",
	"production company",
	"creative director",
	"cinematographer",
	"art director",
	"copywriter",
	"sound designer",
	"colorist",
}

// SectionVocabulary marks grouping sections (topics, collections, awards)
// whose presence hints at a curated catalog page.
var SectionVocabulary = []string{"collections", "topics", "awards", "campaigns"}

// Link path keywords used to bucket hyperlinks by kind.
var (
	ProjectLinkKeywords = []string{"/work/", "/project", "/case", "/entry"}
	CompanyLinkKeywords = []string{"/company", "/studio", "/vendor"}
	PersonLinkKeywords  = []string{"/profile", "director", "editor", "dop"}
)
