package email

// EmailRequest is one outgoing message.
type EmailRequest struct {
	To      []string // Recipients
	Subject string
	Body    string // Plain text or HTML, see IsHTML
	IsHTML  bool
}
