package model

// Partnership types used to group partners on the about page
const (
	PartnershipAcademic      = "academic"
	PartnershipInstitution   = "institution"
	PartnershipGovernment    = "government"
	PartnershipSponsor       = "sponsor"
	PartnershipCommunity     = "community"
	PartnershipInternational = "international"
)

// Partner is ordered by Order, then Name
type Partner struct {
	Meta
	Name            string `json:"name"`
	PartnershipType string `json:"partnershipType,omitempty"`
	Logo            *Image `json:"logo,omitempty"`
	Website         string `json:"website,omitempty"`
	Description     string `json:"description,omitempty"`
	Order           int    `json:"order"`
}

// TeamMember is ordered by Order, then Name
type TeamMember struct {
	Meta
	Name      string `json:"name"`
	Position  string `json:"position,omitempty"`
	Specialty string `json:"specialty,omitempty"`
	Image     *Image `json:"image,omitempty"`
	Order     int    `json:"order"`
}
