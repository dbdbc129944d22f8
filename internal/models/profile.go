package models

// ChildProfile describes the single child this installation serves. The app
// is single-user: one child, one parent, no accounts.
type ChildProfile struct {
	Name      string   `json:"child_name"`
	Age       int      `json:"child_age"`
	Pronouns  string   `json:"child_pronouns"`
	Interests []string `json:"interests"`
}

// DefaultProfile is used until a parent personalizes the profile.
func DefaultProfile() ChildProfile {
	return ChildProfile{
		Name:      "Little Star",
		Age:       7,
		Pronouns:  "she/her",
		Interests: []string{"space", "animals", "stars"},
	}
}
