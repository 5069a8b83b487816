package pdfstmt

import (
	"bytes"
	"errors"
	"io"
	"log"

	"github.com/dslipak/pdf"

	"github.com/subtrackr/subscan/extractor/common"
)

// LoadFragments reads a PDF and returns its positioned text runs in page
// order. Fragment order from the reader is already top-to-bottom,
// left-to-right within a row, which the reconstructor relies on.
func LoadFragments(reader io.Reader) ([]common.Fragment, error) {
	// Ensure we have an io.ReaderAt and know the size
	var rAt io.ReaderAt
	var size int64

	switch v := reader.(type) {
	case io.ReaderAt:
		rAt = v
		if seeker, ok := reader.(io.Seeker); ok {
			cur, _ := seeker.Seek(0, io.SeekCurrent)
			end, _ := seeker.Seek(0, io.SeekEnd)
			seeker.Seek(cur, io.SeekStart)
			size = end
		} else {
			return nil, errors.New("reader is io.ReaderAt but not io.Seeker, cannot determine size")
		}
	default:
		// Read all into memory
		buf := new(bytes.Buffer)
		if _, err := buf.ReadFrom(reader); err != nil {
			return nil, err
		}
		b := buf.Bytes()
		rAt = bytes.NewReader(b)
		size = int64(len(b))
	}

	r, err := pdf.NewReader(rAt, size)
	if err != nil {
		return nil, err
	}

	numPages := r.NumPage()
	fragments := make([]common.Fragment, 0, numPages*100)

	for no := 1; no <= numPages; no++ {
		page := r.Page(no)
		rows, err := page.GetTextByRow()
		if err != nil {
			log.Printf("Warning: error getting text from page %d: %v", no, err)
			continue
		}

		for _, row := range rows {
			for _, text := range row.Content {
				if text.S == "" {
					continue
				}
				fragments = append(fragments, common.Fragment{
					Text: text.S,
					Y:    float64(row.Position),
				})
			}
		}
	}

	return fragments, nil
}
