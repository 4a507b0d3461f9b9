package models

// Category is a topic a director can pick during onboarding.
type Category struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Emoji *string `json:"emoji,omitempty"`
}

// CategorySaveResult reports how many of the submitted ids were new
// associations and how many already existed.
type CategorySaveResult struct {
	SavedCount    int `json:"saved_count"`
	ExistingCount int `json:"existing_count"`
}
