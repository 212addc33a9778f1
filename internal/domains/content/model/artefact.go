package model

// Artefact is one object of the digital museum.
// Slug is unique within the artefact collection.
type Artefact struct {
	Meta
	Title       string   `json:"title"`
	Slug        Slug     `json:"slug"`
	Description string   `json:"description,omitempty"`
	Images      []Image  `json:"images,omitempty"`
	ModelURL    string   `json:"model3dUrl,omitempty"`
	Period      string   `json:"period,omitempty"`
	Date        string   `json:"date,omitempty"`
	Material    string   `json:"material,omitempty"`
	Dimensions  string   `json:"dimensions,omitempty"`
	Location    string   `json:"location,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Featured    bool     `json:"featured"`
	Categories  []string `json:"categories,omitempty"`

	RelatedArtefacts []ArtefactSummary `json:"relatedArtefacts,omitempty"`
}

// ArtefactSummary is the projection used for related-artefact links
type ArtefactSummary struct {
	ID     string  `json:"_id"`
	Title  string  `json:"title"`
	Slug   Slug    `json:"slug"`
	Images []Image `json:"images,omitempty"`
}

// MainImage returns the image flagged as main, or the first one
func (a *Artefact) MainImage() *Image {
	for i := range a.Images {
		if a.Images[i].IsMainImage {
			return &a.Images[i]
		}
	}
	if len(a.Images) > 0 {
		return &a.Images[0]
	}
	return nil
}

// Displayable reports whether the artefact carries the minimum needed to render
func (a *Artefact) Displayable() bool {
	return a.Title != ""
}

// ArtefactFilter selects which artefact list to fetch
type ArtefactFilter struct {
	Category string
	Featured bool
}
