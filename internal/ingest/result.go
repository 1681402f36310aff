package ingest

// Result is the tagged outcome of one ingestion call. A successful result
// carries the documents list aligned one-to-one with the embeddings list.
// A failed result carries error messages only: Documents and Embeddings
// stay nil and must not be consumed.
type Result struct {
	RecordID   string
	RecordType string

	Documents  []string
	Embeddings [][]float32

	errs []string
}

func (r *Result) Success() bool {
	return len(r.errs) == 0
}

func (r *Result) Failed() bool {
	return !r.Success()
}

func (r *Result) Errors() []string {
	return r.errs
}

func (r *Result) fail(err error) {
	r.Documents = nil
	r.Embeddings = nil
	r.errs = append(r.errs, err.Error())
}
