package types

// GenerateResumeInput is the request handed to the generator collaborator
type GenerateResumeInput struct {
	Corpus SourceCorpus
	Terms  []string
	// ForceOnePage instructs the model to aggressively condense the result
	ForceOnePage bool
	// Hint carries renderer feedback, e.g. "rendered PDF is 2 pages"
	Hint string
}

// GenerateCoverLetterInput is the cover-letter request handed to the generator
type GenerateCoverLetterInput struct {
	Corpus       SourceCorpus
	Terms        []string
	ForceOnePage bool
	Hint         string
}
