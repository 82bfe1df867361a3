// File: models/footer.go
package models

// FooterColumn is one sitemap column. Links without an Href render as plain text.
type FooterColumn struct {
	Title string
	Links []Link
}

// Footer is static; it has no inputs.
type Footer struct {
	Tagline   string
	Social    []Link
	Columns   []FooterColumn
	Copyright string
	Brand     Link
}

func placeholders(labels ...string) []Link {
	out := make([]Link, 0, len(labels))
	for _, l := range labels {
		out = append(out, Link{Label: l, Href: "#!"})
	}
	return out
}

// DefaultFooter returns the site footer.
func DefaultFooter() Footer {
	return Footer{
		Tagline: "Get connected with us on social networks :",
		Social:  placeholders("Facebook", "X", "Instagram", "LinkedIn"),
		Columns: []FooterColumn{
			{Title: "Categories", Links: placeholders(
				"Electrician", "Plumber", "Carpenter", "Painter", "Mechanic",
				"Landscaper", "Handyman", "Cleaner", "Technician", "Mover",
			)},
			{Title: "About", Links: placeholders("Sitemap", "About Us", "Contact", "Privacy Policy", "Terms of Service")},
			{Title: "Support", Links: placeholders("Help Center", "FAQ", "Report a Problem", "Community Guidelines")},
			{Title: "More From LMO9EF 3.0", Links: []Link{
				{Label: "Blog"}, {Label: "News"}, {Label: "Events"}, {Label: "Careers"},
			}},
		},
		Copyright: "© 2024 Copyright :",
		Brand:     Link{Label: "LMO9EF 3.0", Href: "/"},
	}
}
