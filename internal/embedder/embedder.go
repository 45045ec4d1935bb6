package embedder

// Embedder converts texts into vector representations. Implementations own
// their network retry/timeout policy; the core imposes none.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(texts []string) ([][]float32, error)
	// EmbedSingle embeds a single text.
	EmbedSingle(text string) ([]float32, error)
}
