package catalog

// Content is a piece of managed storefront marketing material: a rotating
// home-page banner, a promotional poster, or a limited-time offer card.
type Content struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Link     string `json:"link,omitempty"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

const (
	KindBanner = "banner"
	KindPoster = "poster"
	KindOffer  = "offer"
)

func ValidContentKind(kind string) bool {
	switch kind {
	case KindBanner, KindPoster, KindOffer:
		return true
	}
	return false
}
