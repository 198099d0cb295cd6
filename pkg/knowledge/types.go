// Package knowledge provides an in-memory, read-only index over the company
// knowledge base: app catalog, service offerings, blog index, and company
// profile. The index is built once at startup and searched per request.
package knowledge

// Category filters a search to one section of the knowledge base.
type Category string

const (
	// CategoryAll searches every section.
	CategoryAll Category = ""
	// CategoryApps searches the app catalog.
	CategoryApps Category = "apps"
	// CategoryServices searches service offerings.
	CategoryServices Category = "services"
	// CategoryBlog searches the blog index.
	CategoryBlog Category = "blog"
	// CategoryCompany searches company information.
	CategoryCompany Category = "company"
)

// Valid reports whether the category is a known filter value.
func (c Category) Valid() bool {
	switch c {
	case CategoryAll, CategoryApps, CategoryServices, CategoryBlog, CategoryCompany:
		return true
	default:
		return false
	}
}

// Format selects how much detail result content carries.
type Format string

const (
	// FormatConcise returns brief snippets.
	FormatConcise Format = "concise"
	// FormatDetailed returns full entries.
	FormatDetailed Format = "detailed"
)

// ResultItem is a single search hit.
type ResultItem struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	Relevance string  `json:"relevance"`
	Source    string  `json:"source"`
	Score     float64 `json:"score"`
}

// Result is the outcome of a knowledge base search.
type Result struct {
	Query      string       `json:"query"`
	Category   string       `json:"category"`
	Suggestion string       `json:"suggestion,omitempty"`
	Results    []ResultItem `json:"results"`
	Found      bool         `json:"found"`
}

// App is one entry in the app catalog.
type App struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	WhyBuilt    string   `json:"why_built"`
	Features    []string `json:"features"`
	TechStack   []string `json:"tech_stack"`
}

// Service is one consulting or development offering.
type Service struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Approach     string   `json:"approach"`
	Deliverables []string `json:"deliverables"`
	IdealFor     []string `json:"ideal_for"`
}

// BlogPost is one entry in the blog index.
type BlogPost struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Excerpt     string   `json:"excerpt"`
	Category    string   `json:"category"`
	Author      string   `json:"author"`
	PublishedAt string   `json:"published_at"`
	Topics      []string `json:"topics"`
}

// CompanyProfile holds facts about the company itself.
type CompanyProfile struct {
	Name       string `json:"name"`
	Tagline    string `json:"tagline"`
	Mission    string `json:"mission"`
	Philosophy string `json:"philosophy"`
	Founded    string `json:"founded"`
	Location   string `json:"location"`
	TeamSize   string `json:"team_size"`
}

// Technology describes the company's tech stack.
type Technology struct {
	Approach       string   `json:"approach"`
	Frontend       []string `json:"frontend"`
	Backend        []string `json:"backend"`
	AI             []string `json:"ai"`
	Infrastructure []string `json:"infrastructure"`
}

// appsFile mirrors data/apps.json.
type appsFile struct {
	Apps []App `json:"apps"`
}

// servicesFile mirrors data/services.json.
type servicesFile struct {
	Services        []Service `json:"services"`
	PricingApproach string    `json:"pricing_approach"`
}

// blogFile mirrors data/blog_index.json.
type blogFile struct {
	Posts []BlogPost `json:"posts"`
}

// companyFile mirrors data/company.json.
type companyFile struct {
	Company    CompanyProfile `json:"company"`
	Technology Technology     `json:"technology"`
	Values     []string       `json:"values"`
}
