package knowledge

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxResults = 5

// Search runs a query against the index, optionally filtered to one category.
func (idx *Index) Search(query string, category Category, format Format) Result {
	if format != FormatDetailed {
		format = FormatConcise
	}

	var all []ResultItem
	if category == CategoryAll || category == CategoryApps {
		all = append(all, idx.searchApps(query, format)...)
	}
	if category == CategoryAll || category == CategoryServices {
		all = append(all, idx.searchServices(query, format)...)
	}
	if category == CategoryAll || category == CategoryBlog {
		all = append(all, idx.searchBlog(query, format)...)
	}
	if category == CategoryAll || category == CategoryCompany {
		all = append(all, idx.searchCompany(query, format)...)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	if len(all) > maxResults {
		all = all[:maxResults]
	}

	categoryName := string(category)
	if category == CategoryAll {
		categoryName = "all"
	}

	result := Result{
		Query:    query,
		Category: categoryName,
		Results:  all,
		Found:    len(all) > 0,
	}
	if !result.Found {
		result.Suggestion = suggestion(category)
	}

	idx.logger.Debug("search %q category=%s found=%d", query, categoryName, len(all))
	return result
}

func (idx *Index) searchApps(query string, format Format) []ResultItem {
	var results []ResultItem
	for i := range idx.apps.Apps {
		app := &idx.apps.Apps[i]
		searchable := fmt.Sprintf("%s %s %s %s", app.Name, app.Tagline, app.Description, strings.Join(app.Features, " "))
		s := score(query, searchable)
		if s < matchThreshold {
			continue
		}

		var content string
		if format == FormatConcise {
			content = fmt.Sprintf("%s. %s", app.Tagline, truncate(app.Description, 150))
		} else {
			content = fmt.Sprintf("**%s**: %s\n\n%s\n\n**Tech Stack**: %s\n\n**Why Built**: %s",
				app.Name, app.Tagline, app.Description, strings.Join(app.TechStack, ", "), app.WhyBuilt)
		}

		results = append(results, ResultItem{
			Title:     app.Name,
			Content:   content,
			Relevance: fmt.Sprintf("Matched on app name/description (score: %.0f)", s),
			Source:    "apps/" + app.Slug,
			Score:     s,
		})
	}
	return results
}

func (idx *Index) searchServices(query string, format Format) []ResultItem {
	var results []ResultItem
	for i := range idx.services.Services {
		svc := &idx.services.Services[i]
		searchable := fmt.Sprintf("%s %s %s", svc.Name, svc.Description, strings.Join(svc.IdealFor, " "))
		s := score(query, searchable)
		if s < matchThreshold {
			continue
		}

		var content string
		if format == FormatConcise {
			content = truncate(svc.Description, 200)
		} else {
			content = fmt.Sprintf("**%s**\n\n%s\n\n**Deliverables**: %s\n\n**Ideal For**: %s\n\n**Approach**: %s",
				svc.Name, svc.Description, strings.Join(svc.Deliverables, ", "),
				strings.Join(svc.IdealFor, ", "), svc.Approach)
		}

		results = append(results, ResultItem{
			Title:     svc.Name,
			Content:   content,
			Relevance: fmt.Sprintf("Matched on service offering (score: %.0f)", s),
			Source:    "services/" + strings.ReplaceAll(strings.ToLower(svc.Name), " ", "-"),
			Score:     s,
		})
	}

	if pricing := idx.services.PricingApproach; pricing != "" {
		if score(query, "pricing cost price "+pricing) >= matchThreshold {
			results = append(results, ResultItem{
				Title:     "Pricing Approach",
				Content:   pricing,
				Relevance: "Matched on pricing query",
				Source:    "services/pricing",
				Score:     85.0,
			})
		}
	}

	return results
}

func (idx *Index) searchBlog(query string, format Format) []ResultItem {
	var results []ResultItem
	for i := range idx.blog.Posts {
		post := &idx.blog.Posts[i]
		searchable := fmt.Sprintf("%s %s %s %s", post.Title, post.Excerpt, post.Category, strings.Join(post.Topics, " "))
		s := score(query, searchable)
		if s < matchThreshold {
			continue
		}

		var content string
		if format == FormatConcise {
			content = truncate(post.Excerpt, 200)
		} else {
			content = fmt.Sprintf("**%s**\n\n%s\n\n**Category**: %s\n**Published**: %s\n**Author**: %s",
				post.Title, post.Excerpt, post.Category, post.PublishedAt, post.Author)
		}

		results = append(results, ResultItem{
			Title:     post.Title,
			Content:   content,
			Relevance: fmt.Sprintf("Matched on blog content (score: %.0f)", s),
			Source:    "blog/" + post.Slug,
			Score:     s,
		})
	}
	return results
}

func (idx *Index) searchCompany(query string, format Format) []ResultItem {
	var results []ResultItem
	company := &idx.company.Company
	tech := &idx.company.Technology

	companyText := fmt.Sprintf("about siphio mission %s %s %s", company.Name, company.Mission, company.Philosophy)
	if score(query, companyText) >= matchThreshold {
		var content string
		if format == FormatConcise {
			content = company.Mission
		} else {
			content = fmt.Sprintf("**%s**: %s\n\n**Mission**: %s\n\n**Philosophy**: %s\n\n**Founded**: %s | **Location**: %s | **Team**: %s",
				company.Name, company.Tagline, company.Mission, company.Philosophy,
				company.Founded, company.Location, company.TeamSize)
		}
		results = append(results, ResultItem{
			Title:     "About Siphio AI",
			Content:   content,
			Relevance: "Matched on company information",
			Source:    "company/about",
			Score:     90.0,
		})
	}

	techText := fmt.Sprintf("technology tech stack %s %s %s",
		strings.Join(tech.Frontend, " "), strings.Join(tech.Backend, " "), strings.Join(tech.AI, " "))
	if score(query, techText) >= matchThreshold {
		var content string
		if format == FormatConcise {
			all := append(append(append([]string{}, tech.Frontend...), tech.Backend...), tech.AI...)
			content = "Tech stack: " + strings.Join(all, ", ")
		} else {
			content = fmt.Sprintf("**Frontend**: %s\n**Backend**: %s\n**AI**: %s\n**Infrastructure**: %s\n\n**Approach**: %s",
				strings.Join(tech.Frontend, ", "), strings.Join(tech.Backend, ", "),
				strings.Join(tech.AI, ", "), strings.Join(tech.Infrastructure, ", "), tech.Approach)
		}
		results = append(results, ResultItem{
			Title:     "Technology Stack",
			Content:   content,
			Relevance: "Matched on technology query",
			Source:    "company/technology",
			Score:     88.0,
		})
	}

	if len(idx.company.Values) > 0 {
		valuesText := "values principles culture " + strings.Join(idx.company.Values, " ")
		if score(query, valuesText) >= matchThreshold {
			var b strings.Builder
			for _, v := range idx.company.Values {
				fmt.Fprintf(&b, "• %s\n", v)
			}
			results = append(results, ResultItem{
				Title:     "Our Values",
				Content:   strings.TrimRight(b.String(), "\n"),
				Relevance: "Matched on company values",
				Source:    "company/values",
				Score:     85.0,
			})
		}
	}

	return results
}

// suggestion proposes a next question when a search comes back empty.
func suggestion(category Category) string {
	switch category {
	case CategoryApps:
		return "Try asking about Spending Insights, Checklist Manager, or AI Agents specifically."
	case CategoryServices:
		return "Try asking about AI agent development, consulting, or pricing."
	case CategoryBlog:
		return "Try asking about specific topics like AI-native apps, hiring, or our roadmap."
	case CategoryCompany:
		return "Try asking about our mission, team, values, or technology stack."
	default:
		return "I couldn't find specific information about that. Try asking about our apps: Spending Insights, Checklist Manager, or AI Agents"
	}
}

// truncate cuts s at limit runes, appending an ellipsis when cut.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}
