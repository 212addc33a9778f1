package seo

import "net/url"

// Analytics is the tag configuration handed to the rendering layer
type Analytics struct {
	MeasurementID string `json:"measurementId,omitempty"`
	TagManagerID  string `json:"tagManagerId,omitempty"`
	GtagScriptURL string `json:"gtagScriptUrl,omitempty"`
	GTMScriptURL  string `json:"gtmScriptUrl,omitempty"`
	Enabled       bool   `json:"enabled"`
}

// TagManager derives script URLs from the configured ids. Tags are disabled
// in preview so editors do not pollute analytics.
func TagManager(measurementID, tagManagerID string, preview bool) Analytics {
	a := Analytics{
		MeasurementID: measurementID,
		TagManagerID:  tagManagerID,
	}
	if measurementID != "" {
		a.GtagScriptURL = "https://www.googletagmanager.com/gtag/js?id=" + url.QueryEscape(measurementID)
	}
	if tagManagerID != "" {
		a.GTMScriptURL = "https://www.googletagmanager.com/gtm.js?id=" + url.QueryEscape(tagManagerID)
	}
	a.Enabled = !preview && (measurementID != "" || tagManagerID != "")
	return a
}
