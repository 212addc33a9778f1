package model

import "time"

// Document types stored in the content store
const (
	TypeArtefact            = "artefact"
	TypePost                = "post"
	TypeEvent               = "event"
	TypeTimelineEntry       = "timelineEntry"
	TypeTeamMember          = "teamMember"
	TypePartner             = "partner"
	TypeResearchPublication = "researchPublication"
	TypeSiteSettings        = "siteSettings"
	TypePage                = "page"
)

// SiteSettingsID is the fixed id of the singleton settings document
const SiteSettingsID = "siteSettings"

// =====================================================
// SHARED FIELD TYPES
// =====================================================

type Slug struct {
	Current string `json:"current"`
}

// Reference is a weak pointer to another document or asset
type Reference struct {
	Ref  string `json:"_ref"`
	Type string `json:"_type,omitempty"`
}

type Image struct {
	Asset       *Reference `json:"asset,omitempty"`
	Alt         string     `json:"alt,omitempty"`
	Caption     string     `json:"caption,omitempty"`
	IsMainImage bool       `json:"isMainImage,omitempty"`

	// URL is resolved by the service layer, never stored
	URL string `json:"url,omitempty"`
}

// AssetRef returns the asset reference or "" when the image has none
func (i *Image) AssetRef() string {
	if i == nil || i.Asset == nil {
		return ""
	}
	return i.Asset.Ref
}

// Meta holds the system fields present on every document
type Meta struct {
	ID        string    `json:"_id"`
	Type      string    `json:"_type,omitempty"`
	CreatedAt time.Time `json:"_createdAt"`
	UpdatedAt time.Time `json:"_updatedAt"`
}
