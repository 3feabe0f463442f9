package domain

// UploadResult is returned by POST /v1/uploads after a file is stored.
type UploadResult struct {
	Filename    string `json:"filename"`
	URL         string `json:"url"`
	SizeBytes   int64  `json:"sizeBytes"`
	ContentType string `json:"contentType"`
	UploadedAt  string `json:"uploadedAt"`
}
