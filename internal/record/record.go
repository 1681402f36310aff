// Package record defines the canonical shapes of ingested legal documents:
// statutes/norms with their articles, and court sentences. These replace the
// loosely keyed payload maps the loaders used to pass around.
package record

// Embedding type tags. Short embeddings come from chunked text, long
// embeddings cover the full document.
const (
	EmbeddingTypeShort = "short"
	EmbeddingTypeLong  = "long"
)

// EmbeddingAttribute is the transmitted unit combining one chunk of text,
// its vector and the embedding-type tag.
type EmbeddingAttribute struct {
	Chunk         string    `json:"chunk"`
	Vector        []float32 `json:"vector"`
	EmbeddingType string    `json:"embedding_type"`
}

type Norm struct {
	NormID            int    `json:"norm_id"`
	NormType          string `json:"norm_type"`
	Number            int    `json:"number"`
	Year              int    `json:"year"`
	Title             string `json:"title"`
	Hearings          string `json:"hearings"`
	References        string `json:"references"`
	Signers           string `json:"signers"`
	ReferencesURL     string `json:"references_url"`
	ImpoURL           string `json:"impo_url"`
	NewspaperImageURL string `json:"newspaper_image_url"`
	PromulgatedAt     string `json:"promulgated_at"`
	PublishedAt       string `json:"published_at"`

	Articles []Article `json:"articles_attributes"`
}

type Article struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	Notes         string `json:"notes"`
	References    string `json:"references"`
	Signers       string `json:"signers"`
	Text          string `json:"text"`
	ReferencesURL string `json:"references_url"`
	ImpoURL       string `json:"impo_url"`

	LongEmbeddings []EmbeddingAttribute `json:"long_embeddings_attributes"`
}

type Sentence struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	Court        string `json:"court"`
	Importance   string `json:"importance"`
	SentenceType string `json:"sentence_type"`
	Date         string `json:"date"`
	FileNumber   string `json:"file_number"`
	Procedure    string `json:"procedure"`
	Text         string `json:"text"`

	ShortEmbeddings []EmbeddingAttribute `json:"short_embeddings_attributes"`
	LongEmbeddings  []EmbeddingAttribute `json:"long_embeddings_attributes"`
}
