package costmap

import (
	"bufio"
	"bytes"
	"image"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrBadImage is returned when the map image cannot be decoded
var ErrBadImage = errors.New("costmap: unsupported or corrupt map image")

// MaxImageCells bounds width*height of a graymap accepted by the loader
const MaxImageCells = 1 << 28

// MapMetadata mirrors the map_server YAML description of an occupancy image
type MapMetadata struct {
	Image          string    `yaml:"image"`
	Resolution     float64   `yaml:"resolution"`
	Origin         []float64 `yaml:"origin"`
	Negate         int       `yaml:"negate"`
	OccupiedThresh float64   `yaml:"occupied_thresh"`
	FreeThresh     float64   `yaml:"free_thresh"`
}

// LoadMapServer loads map described by map_server YAML file.
// The image path is resolved relative to the YAML file.
func LoadMapServer(yamlPath string) (*Costmap, error) {
	raw, err := os.ReadFile(filepath.Clean(yamlPath))
	if err != nil {
		return nil, errors.Wrap(err, "Can't read map description")
	}
	meta := MapMetadata{
		OccupiedThresh: 0.65,
		FreeThresh:     0.196,
	}
	if err := yaml.Unmarshal(raw, &meta); err != nil {
		return nil, errors.Wrapf(err, "Can't parse map description %s", yamlPath)
	}
	if meta.Image == "" {
		return nil, errors.Errorf("map description %s has no image", yamlPath)
	}
	imagePath := meta.Image
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(yamlPath), imagePath)
	}
	file, err := os.Open(imagePath)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open map image")
	}
	defer file.Close()
	return FromImage(file, meta)
}

// FromImage converts a grayscale occupancy image into costmap.
// Image row 0 is the top of the map, so rows are flipped.
func FromImage(r io.Reader, meta MapMetadata) (*Costmap, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil {
		return nil, errors.Wrap(ErrBadImage, err.Error())
	}
	var (
		width, height int
		gray          []uint8
	)
	if magic[0] == 'P' && (magic[1] == '5' || magic[1] == '2') {
		width, height, gray, err = decodePGM(br)
	} else {
		width, height, gray, err = decodeImage(br)
	}
	if err != nil {
		return nil, err
	}

	originX, originY := 0.0, 0.0
	if len(meta.Origin) >= 2 {
		originX, originY = meta.Origin[0], meta.Origin[1]
	}
	data := make([]uint8, width*height)
	for row := 0; row < height; row++ {
		my := height - row - 1
		for mx := 0; mx < width; mx++ {
			data[my*width+mx] = trinary(gray[row*width+mx], meta)
		}
	}
	return NewFromData(width, height, meta.Resolution, originX, originY, data)
}

// trinary maps a pixel to free, lethal or unknown using map_server thresholds
func trinary(pixel uint8, meta MapMetadata) uint8 {
	occ := float64(255-pixel) / 255.0
	if meta.Negate != 0 {
		occ = float64(pixel) / 255.0
	}
	switch {
	case occ > meta.OccupiedThresh:
		return LethalObstacle
	case occ < meta.FreeThresh:
		return FreeSpace
	default:
		return NoInformation
	}
}

func decodeImage(r io.Reader) (int, int, []uint8, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return 0, 0, nil, errors.Wrap(ErrBadImage, err.Error())
	}
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	gray := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cr, cg, cb, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray[y*width+x] = uint8(((cr + cg + cb) / 3) >> 8)
		}
	}
	return width, height, gray, nil
}

// decodePGM reads binary (P5) and plain (P2) portable graymaps
func decodePGM(br *bufio.Reader) (int, int, []uint8, error) {
	header := make([]int, 0, 3)
	magic := make([]byte, 2)
	if _, err := io.ReadFull(br, magic); err != nil {
		return 0, 0, nil, errors.Wrap(ErrBadImage, err.Error())
	}
	for len(header) < 3 {
		tok, err := pgmToken(br)
		if err != nil {
			return 0, 0, nil, err
		}
		v, err := strconv.Atoi(tok)
		if err != nil || v <= 0 {
			return 0, 0, nil, errors.Wrapf(ErrBadImage, "bad header field %q", tok)
		}
		header = append(header, v)
	}
	width, height, maxVal := header[0], header[1], header[2]
	if width > MaxImageCells/height {
		return 0, 0, nil, errors.Wrapf(ErrBadImage, "graymap %dx%d exceeds %d cells", width, height, MaxImageCells)
	}
	if maxVal > 255 {
		return 0, 0, nil, errors.Wrapf(ErrBadImage, "16-bit graymaps are not supported (maxval %d)", maxVal)
	}
	gray := make([]uint8, width*height)
	if magic[1] == '5' {
		if _, err := io.ReadFull(br, gray); err != nil {
			return 0, 0, nil, errors.Wrap(ErrBadImage, err.Error())
		}
	} else {
		for i := range gray {
			tok, err := pgmToken(br)
			if err != nil {
				return 0, 0, nil, err
			}
			v, err := strconv.Atoi(tok)
			if err != nil || v < 0 || v > maxVal {
				return 0, 0, nil, errors.Wrapf(ErrBadImage, "bad pixel %q", tok)
			}
			gray[i] = uint8(v)
		}
	}
	if maxVal != 255 {
		for i, v := range gray {
			gray[i] = uint8(int(v) * 255 / maxVal)
		}
	}
	return width, height, gray, nil
}

// pgmToken reads the next whitespace separated token, skipping comments.
// Exactly one whitespace byte after the token is consumed.
func pgmToken(br *bufio.Reader) (string, error) {
	var tok bytes.Buffer
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && tok.Len() > 0 {
				return tok.String(), nil
			}
			return "", errors.Wrap(ErrBadImage, "unexpected end of graymap")
		}
		switch {
		case c == '#' && tok.Len() == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", errors.Wrap(ErrBadImage, "unterminated comment")
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if tok.Len() > 0 {
				return tok.String(), nil
			}
		default:
			tok.WriteByte(c)
		}
	}
}
