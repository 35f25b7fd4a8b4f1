package models

// Result is the matcher service's answer to a process request.
type Result struct {
	Found       bool   `json:"found" yaml:"found"`
	TotalRows   int    `json:"total_rows" yaml:"total_rows"`
	DownloadURL string `json:"download_url,omitempty" yaml:"download_url,omitempty"`
	FileName    string `json:"file_name,omitempty" yaml:"file_name,omitempty"`
}

// Upload is a workbook stored on the service for later processing.
type Upload struct {
	ID       string `json:"upload_id" yaml:"upload_id"`
	FileName string `json:"file_name" yaml:"file_name"`
}

// Submission is the set of form fields sent with a process request.
type Submission struct {
	FilePath    string   `json:"file,omitempty" yaml:"file,omitempty"`
	UploadID    string   `json:"upload_id,omitempty" yaml:"upload_id,omitempty"`
	Targets     []string `json:"targets" yaml:"targets"`
	Tolerance   int      `json:"tolerance" yaml:"tolerance"`
	MaxInvoices int      `json:"max_invoices" yaml:"max_invoices"`
}
