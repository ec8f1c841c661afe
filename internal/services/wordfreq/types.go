package wordfreq

// RebuildInput contains parameters for a cache rebuild
type RebuildInput struct {
	ChannelID string

	// ExcludedSpeaker is left out of the counts entirely (optional)
	ExcludedSpeaker string
}

// RebuildOutput summarizes a rebuild
type RebuildOutput struct {
	Messages int
	Words    int
}

// EnsureFreshInput contains parameters for EnsureFresh
type EnsureFreshInput struct {
	ChannelID string
}

// EnsureFreshOutput reports whether a rebuild happened
type EnsureFreshOutput struct {
	Rebuilt bool
}

// SelectTopicInput contains the selection constraints
type SelectTopicInput struct {
	// Exclude holds words already used this session
	Exclude map[string]struct{}

	// ExcludeSpeaker ignores this speaker's counts (mercy mode)
	ExcludeSpeaker string

	// Relax allows a second pass without the lexicon check and with a
	// shorter minimum length when the first pass finds nothing
	Relax bool
}

// Topic is a chosen word and the speaker who said it most
type Topic struct {
	Word        string
	Speaker     string
	SpeakerName string
	Count       int
	Relaxed     bool
}
