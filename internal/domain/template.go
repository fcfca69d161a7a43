package domain

// EmailTemplate is a stored collection template. Content carries the HTML
// body when the template has one, otherwise the plain-text body.
type EmailTemplate struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	Content string `json:"content"`
}
