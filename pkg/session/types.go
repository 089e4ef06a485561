package session

// Profile is the raw user profile from the identity provider
type Profile struct {
	SubjectID   string `json:"subjectId"`
	DisplayName string `json:"displayName,omitempty"`
	Email       string `json:"email,omitempty"`
	PictureURL  string `json:"pictureUrl,omitempty"`
}

// Session is the authentication outcome exposed to the rest of the
// client. It is a value: readers get a snapshot, never shared mutable
// state.
type Session struct {
	Authenticated bool
	Profile       *Profile
}
