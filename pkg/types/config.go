package types

// RenderBackend identifies the page-rasterization capability.
// Per prd001-rendering R5.1.
type RenderBackend string

const (
	RenderFitz     RenderBackend = "fitz"
	RenderPdftoppm RenderBackend = "pdftoppm"
)

// ExtractBackend identifies the embedded-image extraction tool.
// Per prd002-batch-extraction R5.1.
type ExtractBackend string

const (
	ExtractPdfimages ExtractBackend = "pdfimages"
	ExtractPdfcpu    ExtractBackend = "pdfcpu"
)

// RenderConfig holds settings for the single-figure render stage.
// Per prd001-rendering R5.1-R5.3.
type RenderConfig struct {
	// Backend selects the rasterizer: fitz or pdftoppm.
	Backend RenderBackend `json:"backend" yaml:"backend"`

	// DPI is the rasterization resolution (default 200).
	DPI float64 `json:"dpi" yaml:"dpi"`

	// OutputDir is the directory figures are written to (default "image").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxWidth caps the pixel width of saved figures; 0 keeps the rendered size.
	MaxWidth int `json:"max_width" yaml:"max_width"`
}

// ExtractionConfig holds settings for the batch-extraction stage.
// Per prd002-batch-extraction R5.1-R5.2.
type ExtractionConfig struct {
	// Backend selects the extraction tool: pdfimages or pdfcpu.
	Backend ExtractBackend `json:"backend" yaml:"backend"`

	// OutputDir is the directory renamed figures are written to (default "image").
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxWidth caps the pixel width of renamed figures; 0 keeps the extracted size.
	MaxWidth int `json:"max_width" yaml:"max_width"`
}

// CatalogConfig holds settings for the figure catalog.
// Per prd004-catalog R1.1, R2.3.
type CatalogConfig struct {
	// CatalogDir is the directory holding figures.db and exports.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// ImageDir is the directory scanned for figure manifests.
	ImageDir string `json:"image_dir" yaml:"image_dir"`

	// MaxResults is the default maximum number of list results (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
