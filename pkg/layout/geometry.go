package layout

import "math"

// Orientation of the page.
type Orientation string

const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// Geometry is the pixel size and orientation of a page.
type Geometry struct {
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Orientation Orientation `json:"orientation"`
}

// ComputeGeometry sizes a page for trackCount tracks spread over fragments
// rows. heightOrAspect >= 1 is an absolute height; below 1 it is the aspect
// ratio of one track and the height becomes
// ceil(width * aspect * trackCount * fragments). A fragment count below 1
// counts as 1. The page is portrait only when strictly taller than wide.
func ComputeGeometry(width, heightOrAspect float64, trackCount, fragments int) Geometry {
	height := heightOrAspect
	if heightOrAspect < 1 {
		fragments = max(fragments, 1)
		height = math.Ceil(width * heightOrAspect * float64(trackCount) * float64(fragments))
	}
	return Geometry{Width: width, Height: height, Orientation: orient(width, height)}
}

func orient(width, height float64) Orientation {
	if width < height {
		return Portrait
	}
	return Landscape
}

// Rank returns the stacking rank of the track at index among count tracks.
// Index 0 gets rank count (topmost); the last track gets rank 1.
func Rank(index, count int) int {
	return count - index
}
