package loader

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// DocxParser extracts body paragraph text from Office Open XML documents.
//
// Non-blank paragraphs are joined with single newlines, so a whole
// document segments as one blank-line-delimited block.
type DocxParser struct{}

// NewDocxParser creates a DOCX parser.
func NewDocxParser() *DocxParser {
	return &DocxParser{}
}

// Extensions returns the extensions handled by DocxParser.
func (p *DocxParser) Extensions() []string {
	return []string{".docx"}
}

// Parse extracts text from word/document.xml.
func (p *DocxParser) Parse(ctx context.Context, name string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open %s as zip: %w", name, err)
	}

	for _, file := range reader.File {
		if file.Name != "word/document.xml" {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open word/document.xml: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("read word/document.xml: %w", err)
		}

		return parseDocumentXML(data)
	}

	return "", fmt.Errorf("%s has no word/document.xml", name)
}

// documentXML represents the parts of word/document.xml we read.
type documentXML struct {
	Body struct {
		Paragraphs []docxParagraph `xml:"p"`
	} `xml:"body"`
}

// docxParagraph collects the visible text of one w:p element.
type docxParagraph struct {
	Text string
}

// UnmarshalXML walks the paragraph in document order. Only elements inside
// a run contribute, which keeps tab-stop definitions in w:pPr out.
func (p *docxParagraph) UnmarshalXML(d *xml.Decoder, _ xml.StartElement) error {
	var sb strings.Builder
	depth := 0
	runDepth := 0

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "t" && runDepth > 0 {
				var s string
				if err := d.DecodeElement(&s, &el); err != nil {
					return err
				}
				sb.WriteString(s)
				continue
			}
			depth++
			switch el.Name.Local {
			case "r":
				runDepth++
			case "tab":
				if runDepth > 0 {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if runDepth > 0 {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if depth == 0 {
				p.Text = sb.String()
				return nil
			}
			depth--
			if el.Name.Local == "r" {
				runDepth--
			}
		}
	}
}

func parseDocumentXML(data []byte) (string, error) {
	var doc documentXML
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("decode word/document.xml: %w", err)
	}

	lines := make([]string, 0, len(doc.Body.Paragraphs))
	for _, para := range doc.Body.Paragraphs {
		if strings.TrimSpace(para.Text) == "" {
			continue
		}
		lines = append(lines, para.Text)
	}
	return strings.Join(lines, "\n"), nil
}
