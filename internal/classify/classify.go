package classify

import (
	"regexp"
	"strings"
)

type Result struct {
	Category     string `json:"category"`
	CategoryName string `json:"categoryName"`
	SubCategory  string `json:"subCategory"`
}

const (
	defaultSubCategory = "General"
	uncategorizedName  = "Uncategorized"
)

// Classify assigns a category and subcategory from free product text.
//
// The rule table is scanned in declaration order and the first category with
// any keyword contained in the lowercased name+description wins; no scoring
// across categories. Within the winner the first matching subcategory wins,
// falling back to "General". Text with no keyword hit at all lands in
// "Uncategorized". Always returns a result; never errors.
func Classify(name, description string) Result {
	text := strings.ToLower(name + " " + description)
	for _, rule := range Rules() {
		if !containsAny(text, rule.Keywords) {
			continue
		}
		sub := defaultSubCategory
		for _, sc := range rule.Subcategories {
			if containsAny(text, sc.Keywords) {
				sub = sc.Name
				break
			}
		}
		return Result{Category: Slug(rule.Name), CategoryName: rule.Name, SubCategory: sub}
	}
	return Result{
		Category:     Slug(uncategorizedName),
		CategoryName: uncategorizedName,
		SubCategory:  defaultSubCategory,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Slug derives the stored category id from a display name. The substitution
// order matters: lowercase, then whitespace runs to hyphens, then "&" to
// "and", so "Power & Hand Tools" becomes "power-and-hand-tools".
func Slug(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	return strings.ReplaceAll(s, "&", "and")
}
