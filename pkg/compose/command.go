package compose

import (
	"fmt"
	"strings"
)

// Command returns a batch command line that reproduces the current
// composite non-interactively: same canvas size, columns, layout,
// border, committed crops, and input files. Only images whose crop
// differs from the default contribute a -k argument.
func (s *Session) Command() string {
	plan := s.Plan()

	var b strings.Builder
	fmt.Fprintf(&b, "imgrid -o %dx%d -c %d -f %s -l %d -b %s -z",
		plan.UsedWidth, plan.UsedHeight, s.cols, s.output, int(s.mode), s.border.Name)
	for i, im := range s.images {
		if im.Crop.IsFull() {
			continue
		}
		fmt.Fprintf(&b, " -k %d,%.6g,%.6g,%.6g,%.6g", i, im.Crop.X, im.Crop.Y, im.Crop.W, im.Crop.H)
	}
	for _, im := range s.images {
		fmt.Fprintf(&b, " %s", im.Path)
	}
	return b.String()
}
