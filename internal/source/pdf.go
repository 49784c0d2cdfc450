package source

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

// PDFSource treats every page of a PDF as one animation frame.
type PDFSource struct {
	doc  *fitz.Document
	path string
	dpi  int
}

func NewPDFSource(path string, dpi int) (*PDFSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	return &PDFSource{doc: doc, path: path, dpi: dpi}, nil
}

func (s *PDFSource) FrameCount() int {
	return s.doc.NumPage()
}

func (s *PDFSource) Frame(index int) (image.Image, error) {
	// Frames are rendered from worker goroutines; fitz documents are not
	// safe for concurrent use, so each render opens its own handle.
	doc, err := fitz.New(s.path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()
	return doc.ImageDPI(index, float64(s.dpi))
}

func (s *PDFSource) Close() error {
	return s.doc.Close()
}
