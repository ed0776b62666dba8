package templates

import (
	"strings"

	"github.com/decorimic/admin/internal/services/admin/routepath"
)

// NavItem is one sidebar link.
type NavItem struct {
	Label  string
	URL    string
	Active bool
}

type navEntry struct {
	key string
	url string
}

// navEntries lists sidebar links in display order. The dashboard and
// contact-info screens are not served.
var navEntries = []navEntry{
	{key: "services", url: routepath.Admin},
	{key: "aboutUs", url: routepath.AboutUs},
	{key: "whyChooseUs", url: routepath.Resource(routepath.SlugWhyUs)},
	{key: "ourClients", url: routepath.Resource(routepath.SlugClients)},
	{key: "categories", url: routepath.Resource(routepath.SlugCategories)},
	{key: "ourProjects", url: routepath.Resource(routepath.SlugProjects)},
	{key: "news", url: routepath.Resource(routepath.SlugNews)},
	{key: "testimonials", url: routepath.Resource(routepath.SlugTestimonials)},
	{key: "contactMessages", url: routepath.Resource(routepath.SlugMessages)},
}

// Nav returns the sidebar with the entry for the current path marked.
func (p PageContext) Nav() []NavItem {
	out := make([]NavItem, 0, len(navEntries))
	for _, entry := range navEntries {
		out = append(out, NavItem{
			Label:  p.T(entry.key),
			URL:    entry.url,
			Active: navActive(entry.url, p.CurrentPath),
		})
	}
	return out
}

func navActive(entryURL, current string) bool {
	if entryURL == routepath.Admin {
		return current == routepath.Admin || current == routepath.Resource(routepath.SlugServices) ||
			strings.HasPrefix(current, routepath.Resource(routepath.SlugServices)+"/")
	}
	return current == entryURL || strings.HasPrefix(current, entryURL+"/")
}
