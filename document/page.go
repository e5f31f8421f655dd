package document

import "strings"

// PageSize is a paper format in points.
type PageSize struct {
	Name          string
	Width, Height float64
}

var (
	A3     = PageSize{Name: "A3", Width: 841.89, Height: 1190.55}
	A4     = PageSize{Name: "A4", Width: 595.28, Height: 841.89}
	A5     = PageSize{Name: "A5", Width: 419.53, Height: 595.28}
	Letter = PageSize{Name: "Letter", Width: 612, Height: 792}
	Legal  = PageSize{Name: "Legal", Width: 612, Height: 1008}
)

var pageSizes = []PageSize{A3, A4, A5, Letter, Legal}

// PageSizeByName looks a paper format up by name, ignoring case.
func PageSizeByName(name string) (PageSize, bool) {
	for _, ps := range pageSizes {
		if strings.EqualFold(ps.Name, name) {
			return ps, true
		}
	}
	return PageSize{}, false
}

// Margins defines page margins in points.
type Margins struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
	Left   float64 `yaml:"left"`
	Right  float64 `yaml:"right"`
}
