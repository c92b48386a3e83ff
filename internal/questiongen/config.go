package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators run in order on every draft after the option rules have
	// been checked. The first failure rejects the whole batch.
	Validators []Validator

	// MaxTokens is the token budget for one LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// BatchSize caps how many questions are requested per LLM call.
	BatchSize int

	// MaxExclude is the maximum number of existing questions listed in
	// the prompt as "do not repeat".
	MaxExclude int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DistinctOptionsValidator{},
			&NoRepeatValidator{},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
		BatchSize:   10,
		MaxExclude:  20,
	}
}
