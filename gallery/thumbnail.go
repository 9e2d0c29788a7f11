package gallery

import (
	"fmt"

	"github.com/disintegration/imaging"
)

// Thumbnail writes a width x height copy of the image at src to dst:
// scaled until it covers the box, then cropped around the center.
// The output format follows dst's extension; quality only matters for jpeg.
func Thumbnail(src, dst string, width, height, quality int) error {
	img, err := imaging.Open(src, imaging.AutoOrientation(true)) // phones store rotation in EXIF.
	if err != nil {
		return fmt.Errorf("open image %s: %w", src, err)
	}
	thumb := imaging.Fill(img, width, height, imaging.Center, imaging.Lanczos)
	if err := imaging.Save(thumb, dst, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("save thumbnail %s: %w", dst, err)
	}
	return nil
}
