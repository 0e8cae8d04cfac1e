package costmap

import (
	"math"
	"sync"

	"github.com/pkg/errors"
)

// Cost values shared with the frontier search
const (
	FreeSpace                 uint8 = 0
	InscribedInflatedObstacle uint8 = 253
	LethalObstacle            uint8 = 254
	NoInformation             uint8 = 255
)

var (
	// ErrEmptyMap is returned when either map dimension is not positive
	ErrEmptyMap = errors.New("costmap: map must have at least one cell in each dimension")
	// ErrBadResolution is returned for non-positive resolution
	ErrBadResolution = errors.New("costmap: resolution must be positive")
	// ErrDataSize is returned when raw data does not match the map dimensions
	ErrDataSize = errors.New("costmap: data length does not match map size")
)

// Costmap is a 2-D grid of cost bytes anchored in the world frame.
// Cell (0, 0) is the lower-left cell; its lower-left corner sits at the origin.
// Readers that need a consistent view must hold Mutex() for the whole read.
type Costmap struct {
	mu         sync.Mutex
	sizeX      int
	sizeY      int
	resolution float64
	originX    float64
	originY    float64
	data       []uint8
}

// New creates costmap with every cell set to fill
func New(sizeX, sizeY int, resolution, originX, originY float64, fill uint8) (*Costmap, error) {
	if sizeX <= 0 || sizeY <= 0 {
		return nil, ErrEmptyMap
	}
	data := make([]uint8, sizeX*sizeY)
	if fill != 0 {
		for i := range data {
			data[i] = fill
		}
	}
	return NewFromData(sizeX, sizeY, resolution, originX, originY, data)
}

// NewFromData wraps raw row-major data. Data is not copied.
func NewFromData(sizeX, sizeY int, resolution, originX, originY float64, data []uint8) (*Costmap, error) {
	if sizeX <= 0 || sizeY <= 0 {
		return nil, ErrEmptyMap
	}
	if !(resolution > 0) {
		return nil, errors.Wrapf(ErrBadResolution, "got %v", resolution)
	}
	if len(data) != sizeX*sizeY {
		return nil, errors.Wrapf(ErrDataSize, "got %d cells, want %dx%d", len(data), sizeX, sizeY)
	}
	return &Costmap{
		sizeX:      sizeX,
		sizeY:      sizeY,
		resolution: resolution,
		originX:    originX,
		originY:    originY,
		data:       data,
	}, nil
}

// Mutex returns the lock guarding map consistency
func (cm *Costmap) Mutex() *sync.Mutex {
	return &cm.mu
}

// SizeInCellsX returns map width in cells
func (cm *Costmap) SizeInCellsX() int {
	return cm.sizeX
}

// SizeInCellsY returns map height in cells
func (cm *Costmap) SizeInCellsY() int {
	return cm.sizeY
}

// Resolution returns cell edge length in world units
func (cm *Costmap) Resolution() float64 {
	return cm.resolution
}

// Origin returns world coordinates of the lower-left map corner
func (cm *Costmap) Origin() (float64, float64) {
	return cm.originX, cm.originY
}

// Data returns underlying cost bytes. Be careful: this is not copy of data, but reference to it
func (cm *Costmap) Data() []uint8 {
	return cm.data
}

// Cost returns cost of the cell at flat index idx
func (cm *Costmap) Cost(idx int) uint8 {
	return cm.data[idx]
}

// CostAt returns cost of the cell (mx, my)
func (cm *Costmap) CostAt(mx, my int) uint8 {
	return cm.data[cm.Index(mx, my)]
}

// SetCost sets cost of the cell (mx, my)
func (cm *Costmap) SetCost(mx, my int, cost uint8) {
	cm.data[cm.Index(mx, my)] = cost
}

// Index maps (mx, my) to a row-major index
func (cm *Costmap) Index(mx, my int) int {
	return my*cm.sizeX + mx
}

// IndexToCells converts row-major index back to (mx, my)
func (cm *Costmap) IndexToCells(idx int) (int, int) {
	return idx % cm.sizeX, idx / cm.sizeX
}

// InBounds reports whether (mx, my) is a map cell
func (cm *Costmap) InBounds(mx, my int) bool {
	return mx >= 0 && mx < cm.sizeX && my >= 0 && my < cm.sizeY
}

// MapToWorld returns world coordinates of the centre of cell (mx, my)
func (cm *Costmap) MapToWorld(mx, my int) (float64, float64) {
	wx := cm.originX + (float64(mx)+0.5)*cm.resolution
	wy := cm.originY + (float64(my)+0.5)*cm.resolution
	return wx, wy
}

// WorldToMap returns the cell containing world point (wx, wy).
// ok is false when the point lies outside the map or is not a number.
func (cm *Costmap) WorldToMap(wx, wy float64) (mx int, my int, ok bool) {
	// written so that NaN fails every check
	if !(wx >= cm.originX) || !(wy >= cm.originY) {
		return 0, 0, false
	}
	fx := math.Floor((wx - cm.originX) / cm.resolution)
	fy := math.Floor((wy - cm.originY) / cm.resolution)
	if !(fx < float64(cm.sizeX)) || !(fy < float64(cm.sizeY)) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}
