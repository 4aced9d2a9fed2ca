package game

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrMissingBackImage the card back image could not be found in the card directory.
var ErrMissingBackImage = errors.New("card back image not found")

// CardImageExt is the file extension of card images (cards/<identifier>.png).
const CardImageExt = ".png"

// ResourceManager loads and caches card images and font faces.
//
// Card images are read from an fs.FS (os.DirFS for a directory on disk, or an
// embedded file system), decoded, and scaled to the configured card size once.
// Identifiers whose face image cannot be loaded are left out of Available();
// CardImage falls back to the back image for them.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the main
// goroutine before the game loop starts.
type ResourceManager struct {
	source     fs.FS
	cardWidth  int
	cardHeight int
	backName   string

	faces         map[string]*ebiten.Image // identifier -> scaled face
	back          *ebiten.Image
	backIcon      image.Image // decoded back image, usable before the game loop starts
	available     []string
	warnedMissing map[string]bool

	fontSource    *text.GoTextFaceSource
	fontFaceCache map[float64]*text.GoTextFace
}

// NewResourceManager creates a ResourceManager reading card images from source.
//
// Parameters:
//   - source: file system containing <identifier>.png files; may be nil when
//     only procedural cards are used.
//   - backName: identifier of the back image (usually "back").
//   - cardWidth, cardHeight: size every card image is scaled to.
func NewResourceManager(source fs.FS, backName string, cardWidth, cardHeight int) *ResourceManager {
	return &ResourceManager{
		source:        source,
		cardWidth:     cardWidth,
		cardHeight:    cardHeight,
		backName:      backName,
		faces:         make(map[string]*ebiten.Image),
		warnedMissing: make(map[string]bool),
		fontFaceCache: make(map[float64]*text.GoTextFace),
	}
}

// CardAssetReport is the result of scanning a card directory.
type CardAssetReport struct {
	Available []string // identifiers with a face image, in input order
	Missing   []string // identifiers without a face image
	HasBack   bool
}

// ScanCardAssets checks which identifiers have a face image in source.
// It only stats files and never decodes them, so it works without a window.
func ScanCardAssets(source fs.FS, backName string, identifiers []string) CardAssetReport {
	var report CardAssetReport
	if source == nil {
		report.Missing = append(report.Missing, identifiers...)
		return report
	}

	_, err := fs.Stat(source, cardImagePath(backName))
	report.HasBack = err == nil

	for _, id := range identifiers {
		if _, err := fs.Stat(source, cardImagePath(id)); err != nil {
			report.Missing = append(report.Missing, id)
			continue
		}
		report.Available = append(report.Available, id)
	}
	return report
}

// LoadCardImages loads the back image and every face image it can find.
//
// Missing or undecodable face images are logged as warnings and skipped.
// The back image is mandatory: without it ErrMissingBackImage is returned.
//
// Returns:
//   - The identifiers whose face image was loaded, in input order.
func (rm *ResourceManager) LoadCardImages(identifiers []string) ([]string, error) {
	if rm.source == nil {
		return nil, fmt.Errorf("%w: no card directory", ErrMissingBackImage)
	}

	backIcon, err := rm.decodeCardImage(rm.backName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingBackImage, err)
	}
	rm.backIcon = backIcon
	rm.back = ebiten.NewImageFromImage(backIcon)

	rm.available = rm.available[:0]
	for _, id := range identifiers {
		img, err := rm.loadCardImage(id)
		if err != nil {
			log.Printf("[ResourceManager] Warning: card %s unavailable: %v", id, err)
			continue
		}
		rm.faces[id] = img
		rm.available = append(rm.available, id)
	}

	log.Printf("[ResourceManager] Loaded %d/%d card faces", len(rm.available), len(identifiers))
	return rm.Available(), nil
}

// loadCardImage decodes <name>.png and uploads it as an ebiten.Image.
func (rm *ResourceManager) loadCardImage(name string) (*ebiten.Image, error) {
	img, err := rm.decodeCardImage(name)
	if err != nil {
		return nil, err
	}
	return ebiten.NewImageFromImage(img), nil
}

// decodeCardImage reads <name>.png from the source and scales it to the card size.
func (rm *ResourceManager) decodeCardImage(name string) (image.Image, error) {
	data, err := fs.ReadFile(rm.source, cardImagePath(name))
	if err != nil {
		return nil, err
	}
	img, err := DecodeCardImage(data, rm.cardWidth, rm.cardHeight)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return img, nil
}

// DecodeCardImage decodes an image and scales it to width x height.
// Images already at the target size are returned unscaled.
func DecodeCardImage(data []byte, width, height int) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if b := src.Bounds(); b.Dx() == width && b.Dy() == height {
		return src, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst, nil
}

func cardImagePath(name string) string {
	return path.Clean(name + CardImageExt)
}

// GenerateProceduralCards draws a face for every identifier and a patterned back.
// Used when no image assets are available.
func (rm *ResourceManager) GenerateProceduralCards(identifiers []string) []string {
	rm.back = rm.drawProceduralBack()

	rm.available = rm.available[:0]
	for _, id := range identifiers {
		rm.faces[id] = rm.drawProceduralFace(id)
		rm.available = append(rm.available, id)
	}
	log.Printf("[ResourceManager] Generated %d procedural card faces", len(identifiers))
	return rm.Available()
}

func (rm *ResourceManager) drawProceduralBack() *ebiten.Image {
	w, h := float32(rm.cardWidth), float32(rm.cardHeight)
	img := ebiten.NewImage(rm.cardWidth, rm.cardHeight)

	vector.DrawFilledRect(img, 0, 0, w, h, color.RGBA{R: 160, G: 30, B: 40, A: 255}, true)
	vector.StrokeRect(img, 4, 4, w-8, h-8, 2, color.White, true)
	for x := float32(8); x < w-8; x += 12 {
		vector.StrokeLine(img, x, 8, x+(h-16)/4, h-8, 1, color.RGBA{R: 220, G: 120, B: 120, A: 255}, true)
	}
	return img
}

func (rm *ResourceManager) drawProceduralFace(identifier string) *ebiten.Image {
	w, h := float32(rm.cardWidth), float32(rm.cardHeight)
	img := ebiten.NewImage(rm.cardWidth, rm.cardHeight)

	vector.DrawFilledRect(img, 0, 0, w, h, color.White, true)
	vector.StrokeRect(img, 1, 1, w-2, h-2, 2, color.Gray{Y: 80}, true)

	face := rm.Face(float64(rm.cardHeight) / 4)
	if face == nil {
		return img
	}

	label := ProceduralLabel(identifier)
	width, height := text.Measure(label, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(rm.cardWidth)-width)/2, (float64(rm.cardHeight)-height)/2)
	op.ColorScale.ScaleWithColor(SuitColor(identifier))
	text.Draw(img, label, face, op)
	return img
}

// ProceduralLabel is the text drawn on a generated face: rank plus suit symbol.
func ProceduralLabel(identifier string) string {
	if identifier == "" {
		return ""
	}
	rank, suit := identifier[:len(identifier)-1], identifier[len(identifier)-1:]
	symbols := map[string]string{"C": "♣", "D": "♦", "H": "♥", "S": "♠"}
	if s, ok := symbols[strings.ToUpper(suit)]; ok {
		return rank + s
	}
	return identifier
}

// SuitColor red for diamonds and hearts, black otherwise.
func SuitColor(identifier string) color.Color {
	if identifier == "" {
		return color.Black
	}
	switch strings.ToUpper(identifier[len(identifier)-1:]) {
	case "D", "H":
		return color.RGBA{R: 200, G: 0, B: 0, A: 255}
	default:
		return color.Black
	}
}

// CardImage returns the face image for identifier.
// Missing faces fall back to the back image (one warning per identifier).
func (rm *ResourceManager) CardImage(identifier string) *ebiten.Image {
	if img, ok := rm.faces[identifier]; ok {
		return img
	}
	if !rm.warnedMissing[identifier] {
		rm.warnedMissing[identifier] = true
		log.Printf("[ResourceManager] Warning: no face for %s, drawing back instead", identifier)
	}
	return rm.back
}

// BackImage returns the card back image (nil before loading).
func (rm *ResourceManager) BackImage() *ebiten.Image {
	return rm.back
}

// WindowIcon returns the decoded back image for ebiten.SetWindowIcon.
// It is nil for procedural cards.
func (rm *ResourceManager) WindowIcon() image.Image {
	return rm.backIcon
}

// Available returns the identifiers that have a face image (sorted copy).
func (rm *ResourceManager) Available() []string {
	out := append([]string(nil), rm.available...)
	sort.Strings(out)
	return out
}

// Face returns the built-in Go Regular font at the given size.
// The font source is parsed once and faces are cached per size.
func (rm *ResourceManager) Face(size float64) *text.GoTextFace {
	if face, ok := rm.fontFaceCache[size]; ok {
		return face
	}
	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("[ResourceManager] Failed to create font source: %v", err)
			return nil
		}
		rm.fontSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[size] = face
	return face
}
