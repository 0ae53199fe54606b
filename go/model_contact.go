package cafeserver

type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
}

type ContactSubmission struct {
	SubmissionId int64  `json:"submissionId"`
	SubmittedAt  string `json:"submittedAt"`
}

// ContactMessage is a stored submission as staff see it.
type ContactMessage struct {
	SubmissionId int64  `json:"submissionId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Subject      string `json:"subject"`
	Message      string `json:"message"`
	SubmittedAt  string `json:"submittedAt"`
}
