package loader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentXML_RunsTabsAndBreaks(t *testing.T) {
	xmlDoc := `<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr>
  <w:r><w:t xml:space="preserve">Hello </w:t></w:r><w:r><w:t>world</w:t><w:tab/><w:t>tabbed</w:t></w:r></w:p>
<w:p><w:r><w:t>   </w:t></w:r></w:p>
<w:p><w:hyperlink><w:r><w:t>linked</w:t></w:r></w:hyperlink><w:r><w:br/><w:t>after break</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>table cell</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
</w:body></w:document>`

	text, err := parseDocumentXML([]byte(xmlDoc))

	require.NoError(t, err)
	assert.Equal(t, "Hello world\ttabbed\nlinked\nafter break", text)
}

func TestParseDocumentXML_Malformed(t *testing.T) {
	_, err := parseDocumentXML([]byte("<w:document><w:body><w:p>"))
	assert.Error(t, err)
}

func TestDocxParser_MissingDocumentXML(t *testing.T) {
	_, err := NewDocxParser().Parse(context.Background(), "empty.docx", zipWith(t, "other.xml", "<x/>"))
	assert.ErrorContains(t, err, "no word/document.xml")
}

func TestDocxParser_Extensions(t *testing.T) {
	assert.Equal(t, []string{".docx"}, NewDocxParser().Extensions())
	assert.Equal(t, []string{".md", ".txt"}, NewTextParser().Extensions())
}
