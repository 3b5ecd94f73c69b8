// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose merges per-source results into one Markdown answer.
// Subsection order is fixed per intent and independent of which source
// finished first; a source that produced nothing still gets its own
// subsection with a no-results line, so the reader can always tell which
// sources were consulted.
package compose

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mashutosh934755/bennett-ashu-ai/pkg/types"
)

// Source names one consulted provider: the key into the fan-out result map,
// the subsection heading, and the literal line shown when it returns nothing.
type Source struct {
	Key   string
	Label string
	Empty string
}

// BookSources is the fixed subsection order for book-search answers.
var BookSources = []Source{
	{Key: "catalog", Label: "🏛️ Library Catalog (OPAC)", Empty: "No matching records found in the library catalog."},
	{Key: "google_books", Label: "📚 Books from Google Books", Empty: "No relevant books found from Google Books."},
}

// ArticleSources is the fixed subsection order for article-search answers:
// book metadata first, then the open-access index, preprints, journals, and
// the DOI registry.
var ArticleSources = []Source{
	{Key: "google_books", Label: "📚 Books from Google Books", Empty: "No relevant books found from Google Books."},
	{Key: "core", Label: "🌐 Open Access (CORE)", Empty: "No recent articles found on this topic from CORE."},
	{Key: "arxiv", Label: "📄 Preprints (arXiv)", Empty: "No recent preprints found on this topic from arXiv."},
	{Key: "doaj", Label: "📚 Open Access Journals (DOAJ)", Empty: "No open access journal articles found on this topic from DOAJ."},
	{Key: "datacite", Label: "🏷️ Research Data/Articles (DataCite)", Empty: "No research datasets/articles found on this topic from DataCite."},
}

// Composer renders answers. URLs are injected so nothing here reads ambient
// configuration.
type Composer struct {
	// EResourcesURL is the university's e-resources portal, linked at the
	// top of article answers.
	EResourcesURL string

	// OPACURL is the public catalog UI, linked in book-answer footers.
	OPACURL string
}

// New returns a Composer with the Bennett University defaults.
func New() *Composer {
	return &Composer{
		EResourcesURL: "https://bennett.refread.com/#/home",
		OPACURL:       "https://libraryopac.bennett.edu.in/",
	}
}

// Books renders the book-search answer: a topic header, one subsection per
// book source in BookSources order, and the OPAC/Refread footer.
// catalogSearchURL, when non-empty, is appended to the catalog subsection so
// an empty REST search still leads the reader somewhere useful.
func (c *Composer) Books(topic string, results map[string][]types.ResultItem, catalogSearchURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### 📚 Books on **%s**\n", titleCase(topic))

	for _, src := range BookSources {
		writeSection(&b, src, results[src.Key])
		if src.Key == "catalog" && len(results[src.Key]) == 0 && catalogSearchURL != "" {
			fmt.Fprintf(&b, "Search the catalog directly: [OPAC web search](%s)\n", catalogSearchURL)
		}
	}

	fmt.Fprintf(&b, "\n**For more, search [BU OPAC](%s) or [Refread](%s).**", c.OPACURL, c.EResourcesURL)
	return b.String()
}

// Articles renders the article-search answer: the e-resources pointer, then
// one subsection per source in ArticleSources order.
func (c *Composer) Articles(topic string, results map[string][]types.ResultItem) string {
	var b strings.Builder
	b.WriteString("### 🟦 Bennett University e-Resources (Refread)\n")
	fmt.Fprintf(&b, "Find e-books and journal articles on **'%s'** 24/7 here: [Refread](%s)\n\n",
		titleCase(topic), c.EResourcesURL)

	for _, src := range ArticleSources {
		writeSection(&b, src, results[src.Key])
	}
	return b.String()
}

// writeSection emits one labeled subsection: either the formatted items or
// exactly the source's no-results line. Subsections are never omitted.
func writeSection(b *strings.Builder, src Source, items []types.ResultItem) {
	fmt.Fprintf(b, "### %s\n", src.Label)
	if len(items) == 0 {
		b.WriteString(src.Empty + "\n")
		return
	}
	for _, item := range items {
		b.WriteString(FormatItem(item) + "\n")
	}
}

// FormatItem renders one result as a Markdown bullet. Each suffix fragment
// is omitted entirely when its field is empty — an item without a year must
// never render "()".
func FormatItem(item types.ResultItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- [%s](%s)", item.Title, item.URL)
	if item.Authors != "" {
		fmt.Fprintf(&b, " by %s", item.Authors)
	}
	if item.Publisher != "" {
		fmt.Fprintf(&b, ", %s", item.Publisher)
	}
	if item.Year != "" {
		fmt.Fprintf(&b, " (%s)", item.Year)
	}
	if item.Journal != "" {
		fmt.Fprintf(&b, " - %s", item.Journal)
	}
	return b.String()
}

// LoginPrompt is shown for account intents when no patron identity was
// supplied with the query.
const LoginPrompt = "Please log in with your library card number to see your account details."

// TopicPrompt is shown when an article query carries no usable topic.
const TopicPrompt = "Please specify a topic for article search. उदाहरण: 'articles on AI' या 'हिंदी साहित्य पर articles'।"

// AccountUnavailable is shown when the patron is identified but the
// integrated library system could not be reached.
const AccountUnavailable = "Your library account is unavailable right now. Please try again later or check OPAC."

// Fines renders the patron's fine summary.
func Fines(acct types.AccountSummary) string {
	if acct.OutstandingDebits <= 0 && acct.Balance <= 0 {
		return "🎉 You have no outstanding fines."
	}
	owed := acct.OutstandingDebits
	if owed <= 0 {
		owed = acct.Balance
	}
	return fmt.Sprintf("💳 Your current outstanding fine is **₹%.2f**. "+
		"Pay via the BU Payment Portal and update library staff.", owed)
}

// Checkouts renders the patron's current loans.
func Checkouts(items []types.Checkout) string {
	if len(items) == 0 {
		return "You have no books checked out right now."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "### 📖 Your current checkouts (%d)\n", len(items))
	for _, co := range items {
		due := co.DueDate
		if len(due) > 10 {
			due = due[:10]
		}
		fmt.Fprintf(&b, "- Item %d, due %s\n", co.ItemID, due)
	}
	b.WriteString("\nReturn books via the 24/7 Drop Box outside the library.")
	return b.String()
}

// titleCase upper-cases the first letter of each word, as the widget has
// always displayed topics in headers.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
