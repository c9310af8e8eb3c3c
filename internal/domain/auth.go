package domain

type Provider string

const (
	ProviderGoogle     Provider = "google"
	ProviderAccessCode Provider = "access_code"
)

const (
	PermissionExecute = "assessment.execute"
	PermissionSubmit  = "assessment.submit"
	PermissionReview  = "submission.review"
)

const (
	SubjectCandidate = "candidate"
)

type AuthPayload struct {
	Subject    string   `json:"sub"`
	Permission []string `json:"permission"`
	AccessCode string   `json:"access_code,omitempty"`
	Email      string   `json:"email,omitempty"`
}

// HasPermission reports whether the payload grants p
func (a AuthPayload) HasPermission(p string) bool {
	for _, granted := range a.Permission {
		if granted == p {
			return true
		}
	}
	return false
}

// Reviewer is a recruiter identified by an external provider
type Reviewer struct {
	GoogleID      string
	Email         string
	EmailVerified bool
	Name          string
}

type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// Credentials is what a caller presents to an auth provider
type Credentials struct {
	Provider   Provider
	AccessCode string
	Reviewer   *Reviewer
}
