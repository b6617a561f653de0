package typf

import (
	"hash/fnv"
	"sort"
	"strconv"
)

// hashShapingParams folds the fields of a ShapingParams that affect
// shaping output into one FNV-1a hash for use as a cache key component.
// Equal field values must hash equally; field order is fixed so two
// ShapingParams with the same values always hash the same way.
func hashShapingParams(sp ShapingParams) uint64 {
	h := fnv.New64a()
	write := func(s string) { _, _ = h.Write([]byte(s)); _, _ = h.Write([]byte{0}) }
	write(strconv.FormatFloat(sp.SizePixels, 'f', -1, 64))
	write(strconv.Itoa(int(sp.Direction)))
	write(sp.Language)
	write(sp.Script)
	write(strconv.FormatFloat(sp.LetterSpacing, 'f', -1, 64))
	for _, f := range sp.Features {
		write(string(f.Tag[:]))
		write(strconv.FormatUint(uint64(f.Value), 10))
	}
	for _, v := range sp.Variations {
		write(string(v.Tag[:]))
		write(strconv.FormatFloat(v.Value, 'f', -1, 64))
	}
	return h.Sum64()
}

// hashShapingResult folds a ShapingResult's glyph stream into one hash,
// the "shaped-glyph-stream hash" component of a render cache key.
func hashShapingResult(r *ShapingResult) uint64 {
	h := fnv.New64a()
	write := func(s string) { _, _ = h.Write([]byte(s)); _, _ = h.Write([]byte{0}) }
	write(strconv.Itoa(int(r.Direction)))
	write(strconv.FormatFloat(r.AdvanceWidth, 'f', -1, 64))
	write(strconv.FormatFloat(r.AdvanceHeight, 'f', -1, 64))
	for _, g := range r.Glyphs {
		write(strconv.FormatUint(uint64(g.GlyphID), 10))
		write(strconv.FormatUint(uint64(g.Cluster), 10))
		write(strconv.FormatFloat(g.X, 'f', -1, 64))
		write(strconv.FormatFloat(g.Y, 'f', -1, 64))
		write(strconv.FormatFloat(g.XAdvance, 'f', -1, 64))
		write(strconv.FormatFloat(g.YAdvance, 'f', -1, 64))
	}
	return h.Sum64()
}

// hashRenderParams folds the fields of a RenderParams that affect
// render output into one hash.
func hashRenderParams(rp RenderParams) uint64 {
	h := fnv.New64a()
	write := func(s string) { _, _ = h.Write([]byte(s)); _, _ = h.Write([]byte{0}) }
	writeColor := func(c Color) {
		write(strconv.Itoa(int(c.R)) + "," + strconv.Itoa(int(c.G)) + "," + strconv.Itoa(int(c.B)) + "," + strconv.Itoa(int(c.A)))
	}
	writeColor(rp.Foreground)
	if rp.Background == nil {
		write("nil")
	} else {
		writeColor(*rp.Background)
	}
	write(strconv.Itoa(rp.Padding))
	write(strconv.FormatBool(rp.Antialias))
	write(strconv.Itoa(int(rp.Palette)))
	write(strconv.Itoa(int(rp.Mode)))
	for _, v := range rp.Variations {
		write(string(v.Tag[:]))
		write(strconv.FormatFloat(v.Value, 'f', -1, 64))
	}
	for _, gs := range rp.GlyphOrder {
		write(strconv.Itoa(int(gs)))
	}
	deny := make([]int, 0, len(rp.GlyphDeny))
	for gs := range rp.GlyphDeny {
		deny = append(deny, int(gs))
	}
	sort.Ints(deny)
	for _, gs := range deny {
		write("deny:" + strconv.Itoa(gs))
	}
	return h.Sum64()
}
