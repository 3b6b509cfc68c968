package boxes

import (
	"testing"

	"github.com/ttys001/MHC-ICC-Profile-Maker"
	"github.com/ttys001/MHC-ICC-Profile-Maker/pages"
)

func TestFrame(t *testing.T) {
	out, err := pdf.Create("test.pdf")
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		err = out.Close()
		if err != nil {
			t.Error(err)
		}
	}()

	pageTree := pages.NewPageTree(out, &pages.Attributes{
		Resources: pdf.Dict{},
		MediaBox:  pages.A4,
		Rotate:    0,
	})
	pages, err := pageTree.Flush()
	if err != nil {
		t.Fatal(err)
	}

	out.SetCatalog(pdf.Struct(&pdf.Catalog{
		Pages: pages,
	}))
}
