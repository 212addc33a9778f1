package model

// =====================================================
// NEWS
// =====================================================

type NewsPost struct {
	Meta
	Title       string   `json:"title"`
	Slug        Slug     `json:"slug"`
	PublishedAt string   `json:"publishedAt,omitempty"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Body        string   `json:"body,omitempty"`
	BodyHTML    string   `json:"bodyHtml,omitempty"`
	MainImage   *Image   `json:"mainImage,omitempty"`
	Categories  []string `json:"categories,omitempty"`
}

// =====================================================
// EVENTS
// =====================================================

type Event struct {
	Meta
	Title           string `json:"title"`
	Slug            Slug   `json:"slug"`
	StartDate       string `json:"startDate,omitempty"`
	EndDate         string `json:"endDate,omitempty"`
	Location        string `json:"location,omitempty"`
	Description     string `json:"description,omitempty"`
	Body            string `json:"body,omitempty"`
	BodyHTML        string `json:"bodyHtml,omitempty"`
	Image           *Image `json:"image,omitempty"`
	RegistrationURL string `json:"registrationUrl,omitempty"`
}

// =====================================================
// TIMELINE
// =====================================================

type TimelineCategory string

const (
	TimelineDiscovery   TimelineCategory = "discovery"
	TimelineFieldWork   TimelineCategory = "field-work"
	TimelinePublication TimelineCategory = "publication"
	TimelineExhibition  TimelineCategory = "exhibition"
	TimelineAward       TimelineCategory = "award"
)

// IsValid reports whether c is one of the known categories
func (c TimelineCategory) IsValid() bool {
	switch c {
	case TimelineDiscovery, TimelineFieldWork, TimelinePublication, TimelineExhibition, TimelineAward:
		return true
	}
	return false
}

// TimelineEntry with IsMajor set is rendered with emphasis
type TimelineEntry struct {
	Meta
	Title       string           `json:"title"`
	Slug        Slug             `json:"slug"`
	Date        string           `json:"date,omitempty"`
	Description string           `json:"description,omitempty"`
	Body        string           `json:"body,omitempty"`
	BodyHTML    string           `json:"bodyHtml,omitempty"`
	Category    TimelineCategory `json:"category,omitempty"`
	IsMajor     bool             `json:"isMajor"`
	Image       *Image           `json:"image,omitempty"`
}

// =====================================================
// RESEARCH
// =====================================================

type ResearchPublication struct {
	Meta
	Title        string   `json:"title"`
	Slug         Slug     `json:"slug"`
	PublishedAt  string   `json:"publishedAt,omitempty"`
	Authors      []string `json:"authors,omitempty"`
	Journal      string   `json:"journal,omitempty"`
	DOI          string   `json:"doi,omitempty"`
	Abstract     string   `json:"abstract,omitempty"`
	AbstractHTML string   `json:"abstractHtml,omitempty"`
	FileURL      string   `json:"fileUrl,omitempty"`
	CoverImage   *Image   `json:"coverImage,omitempty"`
}
