package domain

// PDFEngine names the available text extraction backends
const (
	PDFEngineFitz       = "fitz"
	PDFEngineLedongthuc = "ledongthuc"
)

// PDFValidation modes
const (
	PDFValidationRelaxed = "relaxed"
	PDFValidationStrict  = "strict"
	PDFValidationOff     = "off"
)

// PDFDocument represents one uploaded PDF being processed
type PDFDocument struct {
	Filename string
	Data     []byte
}

// Size returns the document size in bytes
func (d *PDFDocument) Size() int64 {
	return int64(len(d.Data))
}

// FileStats describes how much text one uploaded file contributed
type FileStats struct {
	Filename  string `json:"filename"`
	PageCount int    `json:"page_count"`
	Chars     int    `json:"chars"`
}

// ExtractedCorpus is the concatenated page text of all uploads of one run
type ExtractedCorpus struct {
	Text  string      `json:"-"`
	Files []FileStats `json:"files"`
}

// PageCount returns the total number of pages across all files
func (c *ExtractedCorpus) PageCount() int {
	total := 0
	for _, f := range c.Files {
		total += f.PageCount
	}
	return total
}
