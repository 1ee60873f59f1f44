package doctree

// Artifact file names, relative to the output directory.
const (
	MarkerJSONFile = "marker.json"
	ChunksJSONFile = "chunks.json"
	MarkdownFile   = "marker.md"
	HTMLFile       = "marker.html"
	ImagesDir      = "images"
	ImageFile      = "img-0001.bin"
)

// RequiredFiles are the text artifacts every run must leave non-empty.
var RequiredFiles = []string{MarkerJSONFile, MarkdownFile, ChunksJSONFile, HTMLFile}
