package imaging

import "math"

// DragSelection tracks a rubber-band selection while the pointer is down.
// The moving corner is clamped to the container so the rectangle never
// leaves the displayed image.
type DragSelection struct {
	startX, startY float64
	area           CropArea
	active         bool
}

// Begin starts a gesture at (x, y). The selection has no area until the
// pointer moves.
func (d *DragSelection) Begin(x, y float64) {
	d.startX, d.startY = x, y
	d.area = CropArea{X: x, Y: y}
	d.active = true
}

// Move extends the selection towards (x, y) within a container of the
// given size. It is ignored when no gesture is active.
func (d *DragSelection) Move(x, y, containerW, containerH float64) {
	if !d.active {
		return
	}
	cx := math.Max(0, math.Min(x, containerW))
	cy := math.Max(0, math.Min(y, containerH))

	d.area = CropArea{
		X:      math.Min(d.startX, cx),
		Y:      math.Min(d.startY, cy),
		Width:  math.Abs(cx - d.startX),
		Height: math.Abs(cy - d.startY),
	}
}

// End finishes the gesture and keeps the last selection.
func (d *DragSelection) End() {
	d.active = false
}

func (d *DragSelection) Active() bool {
	return d.active
}

func (d *DragSelection) Area() CropArea {
	return d.area
}
