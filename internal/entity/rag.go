package entity

// RAGQueryRequest is the body of POST /query
type RAGQueryRequest struct {
	Prompt string `json:"prompt"`
}

// RAGQueryResponse is the body returned by POST /query.
// Answer is markdown.
type RAGQueryResponse struct {
	Answer string `json:"answer"`
}

// FileData is a file selected for indexing
type FileData struct {
	Filename string
	Content  []byte
}

// Size returns the content length in bytes
func (f *FileData) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Content))
}
