package pipeline

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dgallion1/markerstub/internal/chunker"
	"github.com/dgallion1/markerstub/internal/config"
	"github.com/dgallion1/markerstub/internal/doctree"
	"github.com/dgallion1/markerstub/internal/parser"
	"github.com/dgallion1/markerstub/internal/render"
)

// DiagnosticLine is written to stderr after every successful run.
const DiagnosticLine = "marker_stub: deterministic mode"

// Runner turns one input file into the marker artifact set.
type Runner struct {
	cfg    config.Config
	parser parser.Parser
	log    *zap.Logger
}

func New(cfg config.Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		parser: &parser.TextParser{},
		log:    log,
	}
}

// artifact is one rendered output file waiting to be written.
type artifact struct {
	name string
	data []byte
}

// Run reads the input, writes every artifact under the output directory and reports the
// summary line on stdout and the diagnostic line on stderr. The input is read before anything
// is created, so a bad input path leaves the filesystem untouched. Write failures are not
// rolled back.
func (r *Runner) Run(stdout, stderr io.Writer) (doctree.Summary, error) {
	if err := r.cfg.Validate(); err != nil {
		return doctree.Summary{}, err
	}
	log := r.log.With(zap.String("input", r.cfg.InputPath), zap.String("out", r.cfg.OutputDir))

	// Phase 1: Read
	src, err := os.ReadFile(r.cfg.InputPath)
	if err != nil {
		return doctree.Summary{}, fmt.Errorf("read input: %w", err)
	}
	log.Debug("read input", zap.Int("bytes", len(src)))

	// Phase 2: Parse and classify
	blocks, err := r.parser.Parse(bytes.NewReader(src))
	if err != nil {
		return doctree.Summary{}, fmt.Errorf("parse input: %w", err)
	}
	chunks := chunker.FromBlocks(blocks)
	doc := doctree.NewDocument(blocks, r.cfg.UseLLMFlag())
	log.Debug("classified lines", zap.Int("blocks", len(doc.Blocks)), zap.String("mode", r.cfg.Mode()))

	// Phase 3: Render
	artifacts, err := renderArtifacts(doc, chunks)
	if err != nil {
		return doctree.Summary{}, err
	}

	// Phase 4: Write
	if err := os.MkdirAll(r.cfg.OutputDir, 0o755); err != nil {
		return doctree.Summary{}, fmt.Errorf("create output dir: %w", err)
	}
	for _, a := range artifacts {
		if err := os.WriteFile(filepath.Join(r.cfg.OutputDir, a.name), a.data, 0o644); err != nil {
			return doctree.Summary{}, fmt.Errorf("write %s: %w", a.name, err)
		}
		log.Debug("wrote artifact", zap.String("file", a.name), zap.Int("bytes", len(a.data)))
	}

	imagesDir := filepath.Join(r.cfg.OutputDir, doctree.ImagesDir)
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return doctree.Summary{}, fmt.Errorf("create images dir: %w", err)
	}
	payload := ImagePayload(src)
	if err := os.WriteFile(filepath.Join(imagesDir, doctree.ImageFile), payload, 0o644); err != nil {
		return doctree.Summary{}, fmt.Errorf("write %s: %w", doctree.ImageFile, err)
	}

	// Phase 5: Report
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return doctree.Summary{}, fmt.Errorf("list images: %w", err)
	}
	summary := doctree.Summary{
		Blocks:  len(doc.Blocks),
		Engine:  doctree.Engine,
		Images:  len(entries),
		UseLLM:  doc.Meta.UseLLM,
		Version: doctree.Version,
	}
	line, err := render.SummaryLine(summary)
	if err != nil {
		return summary, fmt.Errorf("encode summary: %w", err)
	}
	if _, err := stdout.Write(line); err != nil {
		return summary, fmt.Errorf("write summary: %w", err)
	}
	if _, err := fmt.Fprintln(stderr, DiagnosticLine); err != nil {
		return summary, fmt.Errorf("write diagnostic: %w", err)
	}
	return summary, nil
}

func renderArtifacts(doc *doctree.Document, chunks []doctree.Chunk) ([]artifact, error) {
	markerJSON, err := render.JSON(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", doctree.MarkerJSONFile, err)
	}
	chunksJSON, err := render.JSON(chunks)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", doctree.ChunksJSONFile, err)
	}
	return []artifact{
		{name: doctree.MarkerJSONFile, data: markerJSON},
		{name: doctree.ChunksJSONFile, data: chunksJSON},
		{name: doctree.MarkdownFile, data: []byte(render.Markdown(doc.Blocks))},
		{name: doctree.HTMLFile, data: []byte(render.HTML(doc.Blocks))},
	}, nil
}

// ImagePayload is the placeholder image content: the SHA-256 digest of the whole source.
func ImagePayload(src []byte) []byte {
	sum := sha256.Sum256(src)
	return sum[:32]
}
