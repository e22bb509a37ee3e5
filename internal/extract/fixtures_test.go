package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	f, err := os.Create(p)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for n, body := range entries {
		w, err := zw.Create(n)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return p
}

const docxXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:pPr><w:tabs><w:tab w:val="left" w:pos="720"/></w:tabs></w:pPr><w:r><w:t>Hello</w:t></w:r></w:p>
<w:p><w:r><w:t xml:space="preserve">The </w:t></w:r><w:r><w:t>Keyword</w:t><w:tab/><w:t>here</w:t></w:r></w:p>
<w:tbl><w:tr><w:tc><w:p><w:r><w:t>keyword in table</w:t></w:r></w:p></w:tc></w:tr></w:tbl>
<w:p/>
<w:p><w:r><w:t>another keyword</w:t></w:r></w:p>
</w:body></w:document>`

const (
	nsP = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	nsA = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
)

// slide2.xml 在 presentation.xml 中排在第一位。
func pptxEntries() map[string]string {
	return map[string]string{
		"ppt/presentation.xml": `<p:presentation ` + nsP + ` ` + nsR + `><p:sldIdLst>` +
			`<p:sldId id="256" r:id="rId3"/><p:sldId id="257" r:id="rId2"/></p:sldIdLst></p:presentation>`,
		"ppt/_rels/presentation.xml.rels": `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>` +
			`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide2.xml"/>` +
			`</Relationships>`,
		"ppt/slides/slide1.xml": `<p:sld ` + nsP + ` ` + nsA + `><p:cSld><p:spTree>` +
			`<p:sp><p:txBody><a:p><a:r><a:t>Title</a:t></a:r></a:p></p:txBody></p:sp>` +
			`<p:sp><p:txBody><a:p><a:r><a:t>first</a:t></a:r><a:br/><a:r><a:t>cat here</a:t></a:r></a:p>` +
			`<a:p><a:r><a:t>Cat again</a:t></a:r></a:p></p:txBody></p:sp>` +
			`<p:pic><p:nvPicPr><p:cNvPr id="4" name="cat.png"/></p:nvPicPr></p:pic>` +
			`</p:spTree></p:cSld></p:sld>`,
		"ppt/slides/slide2.xml": `<p:sld ` + nsP + ` ` + nsA + `><p:cSld><p:spTree>` +
			`<p:sp><p:txBody><a:p><a:r><a:t>intro cat</a:t></a:r></a:p></p:txBody></p:sp>` +
			`<p:grpSp><p:sp><p:txBody><a:p><a:r><a:t>grouped </a:t></a:r><a:fld id="1"><a:t>CAT</a:t></a:fld></a:p></p:txBody></p:sp></p:grpSp>` +
			`</p:spTree></p:cSld></p:sld>`,
	}
}

// buildPDF writes a minimal PDF with one Helvetica page per content stream.
// Offsets in the xref table are computed from the written bytes.
func buildPDF(pages ...string) []byte {
	var objs []string
	kids := make([]string, len(pages))
	// 1: catalog, 2: pages, 3: font, then page/content pairs.
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, content := range pages {
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content)+1, content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}
