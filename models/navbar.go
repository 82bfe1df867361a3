// File: models/navbar.go
package models

// ----------------------- navigation model -----------------------

// Link is a single anchor in the navbar or footer.
type Link struct {
	Label   string
	Href    string
	Primary bool // rendered as a button
}

// Navbar is everything the navbar template needs for one render.
type Navbar struct {
	Home    Link
	About   Link
	Main    []Link
	Profile []Link // dropdown entries, Logout is rendered after them

	ShowProfile bool
	MenuOpen    bool
}

var (
	homeLink  = Link{Label: "Home", Href: "/"}
	aboutLink = Link{Label: "About Us", Href: "/aboutus"}

	anonymousLinks = []Link{
		{Label: "Login", Href: "/login"},
		{Label: "Register", Href: "/register", Primary: true},
	}

	userLinks = []Link{
		{Label: "Discover Gigs", Href: "/discover-gigs"},
		{Label: "Find a Worker", Href: "/rapid-intervention"},
	}
	userProfileLinks = []Link{
		{Label: "Messages", Href: "/messages"},
		{Label: "My Orders", Href: "/my-orders"},
		{Label: "Profile", Href: "/profile"},
		{Label: "Become a Service Provider", Href: "/become-seller"},
	}

	adminLinks = []Link{
		{Label: "Dashboard", Href: "/dashboard"},
		{Label: "My Gigs", Href: "/my-gigs"},
		{Label: "Add Gig", Href: "/add"},
	}
	adminProfileLinks = []Link{
		{Label: "Messages", Href: "/messages"},
		{Label: "Orders", Href: "/orders"},
		{Label: "Profile", Href: "/profile"},
	}
)

// BuildNavbar picks the link set for the session. A signed-in user with an
// unrecognised role gets the profile menu with only Logout.
func BuildNavbar(s Session) Navbar {
	nav := Navbar{Home: homeLink, About: aboutLink}
	if !s.LoggedIn {
		nav.Main = cloneLinks(anonymousLinks)
		return nav
	}

	nav.ShowProfile = true
	nav.MenuOpen = s.MenuOpen
	switch s.Role {
	case RoleUser:
		nav.Main = cloneLinks(userLinks)
		nav.Profile = cloneLinks(userProfileLinks)
	case RoleAdmin:
		nav.Main = cloneLinks(adminLinks)
		nav.Profile = cloneLinks(adminProfileLinks)
	}
	return nav
}

// Toggle flips the profile dropdown.
func (n Navbar) Toggle() Navbar {
	n.MenuOpen = !n.MenuOpen
	return n
}

func cloneLinks(links []Link) []Link {
	return append([]Link(nil), links...)
}
