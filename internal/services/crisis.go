package services

// CrisisResource is one entry of the fixed hotline/text-line information
// surfaced whenever a submission is blocked for urgent risk, and by the
// companion when a chat message signals the same.
type CrisisResource struct {
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Description string `json:"description"`
}

// CrisisResources returns the fixed crisis support list. The data is
// deliberately hardcoded: it must be available even when the database and
// every external service are down.
func CrisisResources() []CrisisResource {
	return []CrisisResource{
		{
			Name:        "988 Suicide & Crisis Lifeline",
			Contact:     "Call or text 988",
			Description: "Free, confidential support 24/7 for people in distress.",
		},
		{
			Name:        "Crisis Text Line",
			Contact:     "Text HOME to 741741",
			Description: "Text with a trained crisis counselor, any time.",
		},
		{
			Name:        "The Trevor Project",
			Contact:     "Call 1-866-488-7386",
			Description: "Crisis support for LGBTQ+ young people, 24/7.",
		},
	}
}
