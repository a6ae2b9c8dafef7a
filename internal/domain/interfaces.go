package domain

// Chunker flattens a profile into retrievable chunks.
type Chunker interface {
	Chunk(profile *Profile) ([]Chunk, error)
}
