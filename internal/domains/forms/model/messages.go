package model

// Messages returned to the browser
const (
	MsgContactReceived   = "Thank you for your message. We'll get back to you soon!"
	MsgSubscribed        = "Thank you for subscribing to our newsletter!"
	MsgUnsubscribed      = "You have been unsubscribed from our newsletter."
	MsgMissingFields     = "Missing required fields"
	MsgInvalidEmail      = "Please provide a valid email address"
	MsgInternalError     = "An unexpected error occurred. Please try again later."
	MsgMissingUnsubParam = "Missing email or token"
)
