package catalog

// PlaceholderImage is shown when neither a category nor any of its services has an image.
const PlaceholderImage = "/images/placeholder.svg"

// DefaultCategory is a seed row of the service category list.
type DefaultCategory struct {
	Letter      string `json:"letter"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DefaultCategories is the A–M category list the business launched with.
var DefaultCategories = []DefaultCategory{
	{"A", "Large Format Printing", "Banners, backdrops, posters and wall graphics printed at any size."},
	{"B", "Signage & Neon & LED Signs", "Shop signs, light boxes, neon and LED lettering for indoor and outdoor use."},
	{"C", "Vehicle Branding", "Full and partial wraps, decals and fleet graphics."},
	{"D", "Promotional Items", "Branded pens, mugs, bags, umbrellas and giveaways."},
	{"E", "Branded Apparel", "T-shirts, polos, caps and uniforms with print or embroidery."},
	{"F", "Stickers & Labels", "Die-cut stickers, product labels and window vinyl."},
	{"G", "Business Stationery", "Business cards, letterheads, envelopes and notebooks."},
	{"H", "Exhibition & Event Displays", "Roll-up banners, pop-up stands, tents and booth graphics."},
	{"I", "Flags & Banners", "Teardrop flags, feather flags, bunting and pole banners."},
	{"J", "Corporate Gifts", "Executive gift sets, plaques and awards."},
	{"K", "Offset & Digital Printing", "Brochures, flyers, catalogues and magazines."},
	{"L", "Packaging", "Custom boxes, paper bags and branded packaging."},
	{"M", "Design Services", "Logo design, brand identity and print-ready artwork."},
}

// DefaultCategoryImages maps a category letter to its stock image.
var DefaultCategoryImages = map[string]string{
	"A": "/images/categories/large-format.jpg",
	"B": "/images/categories/signage.jpg",
	"C": "/images/categories/vehicle-branding.jpg",
	"D": "/images/categories/promotional.jpg",
	"E": "/images/categories/apparel.jpg",
	"F": "/images/categories/stickers.jpg",
	"G": "/images/categories/stationery.jpg",
	"H": "/images/categories/exhibition.jpg",
	"I": "/images/categories/flags.jpg",
	"J": "/images/categories/gifts.jpg",
	"K": "/images/categories/printing.jpg",
	"L": "/images/categories/packaging.jpg",
	"M": "/images/categories/design.jpg",
}

// PortfolioCategories is the fixed vocabulary used as tags[0] of portfolio items.
var PortfolioCategories = []string{"Banners", "Signage", "Promotional", "Branding", "Events"}

// QuoteServiceOptions is the enumerated list a quote request selects from.
var QuoteServiceOptions = []string{
	"Banners",
	"Signage",
	"Neon & LED Signs",
	"Vehicle Branding",
	"Stickers",
	"Promotional Items",
	"Branded Apparel",
	"Business Stationery",
	"Exhibition Displays",
	"Flags",
	"Corporate Gifts",
	"Printing",
	"Packaging",
	"Design",
	"Other",
}

// IsQuoteServiceOption reports whether name is one of QuoteServiceOptions.
func IsQuoteServiceOption(name string) bool {
	for _, opt := range QuoteServiceOptions {
		if opt == name {
			return true
		}
	}
	return false
}

// Link is a labelled site link.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// FooterLinks groups the footer navigation by column heading.
var FooterLinks = map[string][]Link{
	"company": {
		{Label: "About Us", Href: "/about"},
		{Label: "Portfolio", Href: "/portfolio"},
		{Label: "FAQ", Href: "/faq"},
		{Label: "Contact", Href: "/contact"},
	},
	"services": {
		{Label: "All Services", Href: "/services"},
		{Label: "Request a Quote", Href: "/request-quote"},
	},
	"legal": {
		{Label: "Terms of Service", Href: "/terms"},
		{Label: "Privacy Policy", Href: "/privacy"},
	},
}

// Testimonial is a customer quote shown on the home page.
type Testimonial struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Quote   string `json:"quote"`
	Rating  int    `json:"rating"`
}

// Testimonials is the hardcoded testimonial carousel content.
var Testimonials = []Testimonial{
	{Name: "Selam T.", Company: "Lebu Mall", Quote: "Our new LED signage was installed on schedule and looks great day and night.", Rating: 5},
	{Name: "Dawit K.", Company: "Habesha Coffee", Quote: "They branded our whole delivery fleet in a week. Excellent finish.", Rating: 5},
	{Name: "Hanna M.", Company: "Addis Events", Quote: "Roll-ups, backdrops and flags all arrived on time for our expo.", Rating: 4},
}

// Content is the static site content served to the front end.
type Content struct {
	Categories          []DefaultCategory `json:"categories"`
	CategoryImages      map[string]string `json:"category_images"`
	PortfolioCategories []string          `json:"portfolio_categories"`
	QuoteServiceOptions []string          `json:"quote_service_options"`
	FooterLinks         map[string][]Link `json:"footer_links"`
	Testimonials        []Testimonial     `json:"testimonials"`
	PlaceholderImage    string            `json:"placeholder_image"`
}

// StaticContent bundles all hardcoded site data.
func StaticContent() Content {
	return Content{
		Categories:          DefaultCategories,
		CategoryImages:      DefaultCategoryImages,
		PortfolioCategories: PortfolioCategories,
		QuoteServiceOptions: QuoteServiceOptions,
		FooterLinks:         FooterLinks,
		Testimonials:        Testimonials,
		PlaceholderImage:    PlaceholderImage,
	}
}
