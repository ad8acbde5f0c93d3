package parse

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/willimj3/bella-document-review/internal/model"
)

// parseDOCX pulls raw text out of the word/document.xml part of the DOCX
// container. DOCX has no fixed page boundaries, so the text is split into
// pseudo-pages.
func parseDOCX(path string) (string, []model.Page, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", nil, eris.Wrapf(err, "parse: open docx %s", path)
	}
	defer r.Close()

	var docXML io.ReadCloser
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docXML, err = f.Open()
			if err != nil {
				return "", nil, eris.Wrapf(err, "parse: open document.xml in %s", path)
			}
			break
		}
	}
	if docXML == nil {
		return "", nil, eris.Errorf("parse: %s has no word/document.xml", path)
	}
	defer docXML.Close()

	content, err := extractDocxText(docXML)
	if err != nil {
		return "", nil, eris.Wrapf(err, "parse: read docx text %s", path)
	}

	return content, pseudoPages(content), nil
}

// extractDocxText streams the WordprocessingML, collecting text runs (w:t)
// and inserting newlines at paragraph ends (w:p).
func extractDocxText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var sb strings.Builder
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimSpace(sb.String()), nil
}
