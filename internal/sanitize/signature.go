package sanitize

// Signature holds the fields of the mandatory closing block. The block is
// appended to every draft regardless of what the model produced, so the
// applicant's contact details are always present and always correct.
type Signature struct {
	Availability string // availability statement, first line of the block
	Name         string
	Email        string
	Phone        string
	LinkedIn     string
	GitHub       string
}

// Render produces the closing block text: the availability line, a sign-off
// with the applicant's name, then the contact lines.
func (s Signature) Render() string {
	return s.Availability + "\n\n" +
		"Best regards,\n" +
		s.Name + "\n" +
		"Email: " + s.Email + "\n" +
		"Phone: " + s.Phone + "\n" +
		"LinkedIn: " + s.LinkedIn + "\n" +
		"GitHub: " + s.GitHub
}
