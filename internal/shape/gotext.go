package shape

import (
	"bytes"
	"fmt"
	"sync"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/fontlaborg/typf/internal/fontsrc"
)

// GoTextShaper shapes text with go-text/typesetting's HarfBuzz port,
// giving ligatures, kerning, contextual alternates, and bidi-correct
// complex scripts that BuiltinShaper cannot produce. It is grounded on
// gogpu-gg's text.GoTextShaper: a font.Font cache keyed by font source
// (Font is read-only and concurrency-safe), a pooled HarfbuzzShaper per
// call (it is not), and a lightweight font.Face built fresh each Shape.
type GoTextShaper struct {
	shaperPool sync.Pool

	mu        sync.RWMutex
	fontCache map[*fontsrc.Source]*gotextfont.Font
}

// NewGoTextShaper returns a GoTextShaper ready for concurrent use.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
		fontCache: make(map[*fontsrc.Source]*gotextfont.Font),
	}
}

func (s *GoTextShaper) Name() string { return "go-text" }

// Shape implements Shaper.
func (s *GoTextShaper) Shape(text string, src *fontsrc.Source, p Params) (*Result, error) {
	if text == "" {
		return &Result{Direction: p.Direction}, nil
	}
	if src == nil {
		return nil, fmt.Errorf("shape: go-text: nil font source")
	}

	goFont, err := s.getOrCreateFont(src)
	if err != nil {
		return nil, fmt.Errorf("shape: go-text: parse font: %w", err)
	}
	face := gotextfont.NewFace(goFont)

	runes := []rune(text)
	dir := mapDirection(p.Direction)
	script := resolveScript(p.Script, runes)
	lang := resolveLanguage(p.Language)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: dir,
		Face:      face,
		Size:      floatToFixed(p.SizePixels),
		Script:    script,
		Language:  lang,
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.shaperPool.Put(hb)

	glyphs := convertGlyphs(output.Glyphs, dir)
	advanceW, advanceH := applyLetterSpacing(glyphs, p.LetterSpacing, dir.IsVertical())

	return &Result{
		Direction:     p.Direction,
		AdvanceWidth:  advanceW,
		AdvanceHeight: advanceH,
		Glyphs:        glyphs,
	}, nil
}

// getOrCreateFont returns the cached go-text Font for src, parsing and
// caching it on first use.
func (s *GoTextShaper) getOrCreateFont(src *fontsrc.Source) (*gotextfont.Font, error) {
	s.mu.RLock()
	if f, ok := s.fontCache[src]; ok {
		s.mu.RUnlock()
		return f, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fontCache[src]; ok {
		return f, nil
	}

	face, err := gotextfont.ParseTTF(bytes.NewReader(src.Data()))
	if err != nil {
		return nil, err
	}
	s.fontCache[src] = face.Font
	return face.Font, nil
}

// ClearCache drops every cached parsed font.
func (s *GoTextShaper) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fontCache = make(map[*fontsrc.Source]*gotextfont.Font)
}

func mapDirection(d Direction) di.Direction {
	switch d {
	case DirectionRTL:
		return di.DirectionRTL
	case DirectionTTB:
		return di.DirectionTTB
	case DirectionBTT:
		return di.DirectionBTT
	default:
		return di.DirectionLTR
	}
}

// resolveScript honors an explicit script tag if given, otherwise
// detects the script of the first non-space rune. Falls back to Latin
// for empty runs, matching the "default direction/script" contract.
func resolveScript(tag string, runes []rune) language.Script {
	if tag != "" {
		return language.Script(tag)
	}
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func resolveLanguage(tag string) language.Language {
	if tag == "" {
		tag = "en"
	}
	return language.NewLanguage(tag)
}

func floatToFixed(size float64) fixed.Int26_6 { return fixed.Int26_6(size * 64) }
func fixedToFloat(v fixed.Int26_6) float64    { return float64(v) / 64.0 }

func convertGlyphs(glyphs []shaping.Glyph, dir di.Direction) []PositionedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	out := make([]PositionedGlyph, len(glyphs))
	for i, g := range glyphs {
		out[i] = PositionedGlyph{
			GlyphID: uint32(g.GlyphID),
			Cluster: uint32(g.TextIndex()),
			X:       fixedToFloat(g.XOffset),
			Y:       fixedToFloat(g.YOffset),
		}
		if dir.IsVertical() {
			out[i].YAdvance = fixedToFloat(g.Advance)
		} else {
			out[i].XAdvance = fixedToFloat(g.Advance)
		}
	}
	return out
}

var _ Shaper = (*GoTextShaper)(nil)
