package fonttypes

import (
	"github.com/ttys001/MHC-ICC-Profile-Maker"
	"github.com/ttys001/MHC-ICC-Profile-Maker/font"
	"github.com/ttys001/MHC-ICC-Profile-Maker/font/standard"
)

// Standard is one of the 14 standard PDF fonts.
var Standard = standardEmbedder{}

type standardEmbedder struct{}

func (f standardEmbedder) Embed(w pdf.Putter) (font.Layouter, error) {
	F, err := standard.Helvetica.New(nil)
	if err != nil {
		return nil, err
	}
	return F.Embed(w)
}
