package verify

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"

	"github.com/dgallion1/markerstub/internal/doctree"
)

// Report collects every contract violation found in an output directory.
type Report struct {
	Dir        string
	Blocks     int
	ImageFiles []string
	Problems   []string
}

func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

func (r *Report) addf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Dir checks the artifacts under dir. A missing or empty required artifact is returned as an
// error because nothing else can be checked; content mismatches are collected in the report.
func Dir(dir string) (*Report, error) {
	files := make(map[string][]byte, len(doctree.RequiredFiles))
	for _, name := range doctree.RequiredFiles {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("marker output missing %s: %w", name, err)
		}
		if len(data) == 0 {
			return nil, fmt.Errorf("marker output missing %s: empty file", name)
		}
		files[name] = data
	}

	images, err := listImages(filepath.Join(dir, doctree.ImagesDir))
	if err != nil {
		return nil, err
	}

	r := &Report{Dir: dir, ImageFiles: images}
	blockIDs := r.checkMarkerJSON(files[doctree.MarkerJSONFile])
	r.checkChunks(files[doctree.ChunksJSONFile], files[doctree.MarkerJSONFile])
	r.checkMarkdown(files[doctree.MarkdownFile])
	r.checkHTML(files[doctree.HTMLFile], blockIDs)
	if len(images) == 0 {
		r.addf("images: no image files")
	}
	return r, nil
}

func listImages(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("marker output missing %s: %w", doctree.ImagesDir, err)
	}
	if !info.IsDir() {
		return nil, errors.New("marker output missing images: not a directory")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// checkMarkerJSON validates the envelope and every block, returning the block ids in order.
func (r *Report) checkMarkerJSON(data []byte) []string {
	if !gjson.ValidBytes(data) {
		r.addf("%s: invalid json", doctree.MarkerJSONFile)
		return nil
	}
	doc := gjson.ParseBytes(data)
	if v := doc.Get("version").String(); v != doctree.Version {
		r.addf("%s: version %q, want %q", doctree.MarkerJSONFile, v, doctree.Version)
	}
	if e := doc.Get("meta.engine").String(); e != doctree.Engine {
		r.addf("%s: engine %q, want %q", doctree.MarkerJSONFile, e, doctree.Engine)
	}
	if u := doc.Get("meta.use_llm").Int(); u != 0 && u != 1 {
		r.addf("%s: use_llm %d is not 0 or 1", doctree.MarkerJSONFile, u)
	}

	blocks := doc.Get("blocks")
	if !blocks.IsArray() {
		r.addf("%s: blocks is not an array", doctree.MarkerJSONFile)
		return nil
	}
	items := blocks.Array()
	r.Blocks = len(items)
	if n := doc.Get("meta.line_count").Int(); n != int64(len(items)) {
		r.addf("%s: line_count %d but %d blocks", doctree.MarkerJSONFile, n, len(items))
	}

	ids := make([]string, 0, len(items))
	for i, b := range items {
		id := b.Get("id").String()
		ids = append(ids, id)
		if id != doctree.BlockID(i) {
			r.addf("block %d: id %q, want %q", i, id, doctree.BlockID(i))
		}
		if p := b.Get("page").Int(); p != int64(i+1) {
			r.addf("block %s: page %d, want %d", id, p, i+1)
		}
		if _, err := doctree.ParseBlockType(b.Get("type").String()); err != nil {
			r.addf("block %s: %v", id, err)
		}
		if bbox := b.Get("bbox").Array(); len(bbox) != 4 {
			r.addf("block %s: bbox has %d values, want 4", id, len(bbox))
		}
		txt := b.Get("text").String()
		if want := doctree.ContentHashHex([]byte(txt)); b.Get("content_sha256").String() != want {
			r.addf("block %s: content_sha256 does not match text", id)
		}
	}
	return ids
}

// checkChunks requires chunks.json to mirror marker.json block for block.
func (r *Report) checkChunks(data, markerJSON []byte) {
	if !gjson.ValidBytes(data) {
		r.addf("%s: invalid json", doctree.ChunksJSONFile)
		return
	}
	chunks := gjson.ParseBytes(data)
	if !chunks.IsArray() {
		r.addf("%s: not an array", doctree.ChunksJSONFile)
		return
	}
	items := chunks.Array()
	blocks := gjson.GetBytes(markerJSON, "blocks").Array()
	if len(items) != len(blocks) {
		r.addf("%s: %d chunks but %d blocks", doctree.ChunksJSONFile, len(items), len(blocks))
		return
	}
	for i, c := range items {
		b := blocks[i]
		if id := c.Get("chunk_id").String(); id != doctree.ChunkID(i) {
			r.addf("chunk %d: chunk_id %q, want %q", i, id, doctree.ChunkID(i))
		}
		for _, field := range []string{"page", "type", "text", "content_sha256"} {
			if c.Get(field).Raw != b.Get(field).Raw {
				r.addf("chunk %d: %s differs from block", i, field)
			}
		}
	}
}

func (r *Report) checkMarkdown(data []byte) {
	if !bytes.HasPrefix(data, []byte("# Marker Output")) {
		r.addf("%s: missing heading", doctree.MarkdownFile)
	}
	doc := goldmark.New().Parser().Parse(text.NewReader(data))
	items := 0
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && n.Kind() == ast.KindListItem {
			items++
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		r.addf("%s: %v", doctree.MarkdownFile, err)
		return
	}
	if items != r.Blocks {
		r.addf("%s: %d list items but %d blocks", doctree.MarkdownFile, items, r.Blocks)
	}
}

// checkHTML requires one <li> per block, carrying the block ids in order. Block text is not
// escaped by the renderer, so markup inside a block can legitimately trip this check.
func (r *Report) checkHTML(data []byte, blockIDs []string) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		r.addf("%s: parse html: %v", doctree.HTMLFile, err)
		return
	}
	var ids []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			ids = append(ids, attr(n, "data-id"))
			if _, err := doctree.ParseBlockType(attr(n, "data-type")); err != nil {
				r.addf("%s: li %q: %v", doctree.HTMLFile, attr(n, "data-id"), err)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(ids) != len(blockIDs) {
		r.addf("%s: %d list items but %d blocks", doctree.HTMLFile, len(ids), len(blockIDs))
		return
	}
	if strings.Join(ids, ",") != strings.Join(blockIDs, ",") {
		r.addf("%s: list item ids do not follow block order", doctree.HTMLFile)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
