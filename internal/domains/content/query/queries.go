// Package query holds the GROQ read queries for every content type.
//
// Parameters are always passed as $params, never interpolated.
package query

// =====================================================
// PROJECTIONS
// =====================================================

const (
	imageProjection = `{asset, alt, caption, isMainImage}`

	artefactProjection = `{
  _id, _type, _createdAt, _updatedAt,
  title, slug, description,
  "images": images[]` + imageProjection + `,
  model3dUrl, period, date, material, dimensions, location,
  keywords, featured, categories,
  "relatedArtefacts": relatedArtefacts[]->{_id, title, slug, "images": images[0...1]` + imageProjection + `}
}`

	partnerProjection = `{
  _id, _type, _createdAt, _updatedAt,
  name, partnershipType, "logo": logo` + imageProjection + `, website, description, order
}`

	teamMemberProjection = `{
  _id, _type, _createdAt, _updatedAt,
  name, position, specialty, "image": image` + imageProjection + `, order
}`

	newsPostProjection = `{
  _id, _type, _createdAt, _updatedAt,
  title, slug, publishedAt, excerpt, body,
  "mainImage": mainImage` + imageProjection + `, categories
}`

	newsPostListProjection = `{
  _id, _type, _createdAt, _updatedAt,
  title, slug, publishedAt, excerpt,
  "mainImage": mainImage` + imageProjection + `, categories
}`

	eventProjection = `{
  _id, _type, _createdAt, _updatedAt,
  title, slug, startDate, endDate, location, description, body,
  "image": image` + imageProjection + `, registrationUrl
}`

	timelineProjection = `{
  _id, _type, _createdAt, _updatedAt,
  title, slug, date, description, body, category, isMajor,
  "image": image` + imageProjection + `
}`

	researchProjection = `{
  _id, _type, _createdAt, _updatedAt,
  title, slug, publishedAt, authors, journal, doi, abstract,
  "fileUrl": file.asset->url,
  "coverImage": coverImage` + imageProjection + `
}`
)

// =====================================================
// SITE SETTINGS
// =====================================================

const SiteSettings = `*[_type == "siteSettings" && _id == $id][0]{
  _id, _type, _createdAt, _updatedAt,
  title, description,
  "logo": logo` + imageProjection + `,
  "logoDark": logoDark` + imageProjection + `,
  contact, socialLinks
}`

// =====================================================
// PARTNERS & TEAM
// =====================================================

const (
	AllPartners = `*[_type == "partner"] | order(order asc, name asc)` + partnerProjection

	PartnersByType = `*[_type == "partner" && partnershipType == $type] | order(order asc, name asc)` + partnerProjection

	AllTeamMembers = `*[_type == "teamMember"] | order(order asc, name asc)` + teamMemberProjection
)

// =====================================================
// ARTEFACTS
// =====================================================

const (
	AllArtefacts = `*[_type == "artefact" && defined(slug.current)] | order(_createdAt desc)` + artefactProjection

	FeaturedArtefacts = `*[_type == "artefact" && defined(slug.current) && featured == true] | order(_createdAt desc)` + artefactProjection

	ArtefactsByCategory = `*[_type == "artefact" && defined(slug.current) && $category in categories] | order(_createdAt desc)` + artefactProjection

	ArtefactBySlug = `*[_type == "artefact" && slug.current == $slug][0]` + artefactProjection
)

// =====================================================
// NEWS
// =====================================================

const (
	AllNewsPosts = `*[_type == "post" && defined(slug.current)] | order(_createdAt desc)` + newsPostListProjection

	LatestNewsPosts = `*[_type == "post" && defined(slug.current)] | order(_createdAt desc) [0...$limit]` + newsPostListProjection

	NewsPostBySlug = `*[_type == "post" && slug.current == $slug][0]` + newsPostProjection
)

// =====================================================
// EVENTS
// =====================================================

const (
	AllEvents = `*[_type == "event" && defined(slug.current)] | order(startDate asc)` + eventProjection

	UpcomingEvents = `*[_type == "event" && defined(slug.current) && startDate >= $now] | order(startDate asc)` + eventProjection

	EventBySlug = `*[_type == "event" && slug.current == $slug][0]` + eventProjection
)

// =====================================================
// TIMELINE
// =====================================================

const (
	AllTimelineEntries = `*[_type == "timelineEntry"] | order(date asc)` + timelineProjection

	TimelineEntriesByCategory = `*[_type == "timelineEntry" && category == $category] | order(date asc)` + timelineProjection
)

// =====================================================
// RESEARCH
// =====================================================

const (
	AllResearchPublications = `*[_type == "researchPublication" && defined(slug.current)] | order(_createdAt desc)` + researchProjection

	ResearchPublicationBySlug = `*[_type == "researchPublication" && slug.current == $slug][0]` + researchProjection
)

// =====================================================
// SEARCH & SITEMAP
// =====================================================

// SearchTypes are the document types covered by Search
var SearchTypes = []string{"artefact", "post", "event", "researchPublication", "timelineEntry"}

// Search matches $q (a "<term>*" prefix pattern) against title,
// description and body, newest first.
const Search = `*[_type in $types && (title match $q || description match $q || body match $q)] | order(_createdAt desc){
  _id, _type, title, "slug": slug.current, _createdAt
}`

// SitemapEntries lists slug and last-modified time for one type
const SitemapEntries = `*[_type == $type && defined(slug.current) && !(_id in path("drafts.**"))] | order(_updatedAt desc){
  "slug": slug.current, _updatedAt
}`
