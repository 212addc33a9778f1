package shared

// PreviewCookieName is the cookie marking a browser as being in preview mode
const PreviewCookieName = "__next_preview_data"

// Task types processed by the worker
const (
	TypeRelayFormSubmission = "relay:form_submission"

	QueueRelay = "relay"
)

// FormKind names which relay a submission goes to
type FormKind string

const (
	FormContact    FormKind = "contact"
	FormNewsletter FormKind = "newsletter"
)

// RelayPayload is the queued form submission
type RelayPayload struct {
	ID     string            `json:"id"`
	Kind   FormKind          `json:"kind"`
	Fields map[string]string `json:"fields"`
}
