// Package fingerprint derives stable content addresses for diagram graphs.
package fingerprint

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/qsnap/internal/core/domain"
)

// Size is the length of a fingerprint in hex characters.
const Size = 16

// Separators keep adjacent fields from running into each other.
const (
	fieldSep   = 0x00
	recordSep  = 0x1e
	sectionSep = 0x1d
	absent     = 0x15
)

// Of returns the fixed-width hex digest of g's structural content.
// Structurally identical graphs always yield the same fingerprint.
func Of(g domain.DiagramGraph) string {
	d := xxhash.New()

	for _, n := range g.Nodes {
		writeInt(d, n.ID)
		writeFloat(d, n.X)
		writeFloat(d, n.Y)
		writeString(d, n.Label)
		_, _ = d.Write([]byte{recordSep})
	}
	_, _ = d.Write([]byte{sectionSep})

	for _, e := range g.Edges {
		writeInt(d, e.ID)
		writeInt(d, e.Source)
		writeInt(d, e.Target)
		writeString(d, e.Label)
		writeStyle(d, e.Style.Normalize())
		_, _ = d.Write([]byte{recordSep})
	}
	_, _ = d.Write([]byte{sectionSep})

	return fmt.Sprintf("%0*x", Size, d.Sum64())
}

func writeStyle(d *xxhash.Digest, s *domain.EdgeStyle) {
	if s == nil {
		_, _ = d.Write([]byte{absent, fieldSep})
		return
	}
	writeOptionalString(d, s.BodyName)
	writeOptionalString(d, s.HeadName)
	if s.Offset == nil {
		_, _ = d.Write([]byte{absent, fieldSep})
	} else {
		writeFloat(d, *s.Offset)
	}
}

func writeOptionalString(d *xxhash.Digest, s *string) {
	if s == nil {
		_, _ = d.Write([]byte{absent, fieldSep})
		return
	}
	writeString(d, *s)
}

func writeInt(d *xxhash.Digest, v int) {
	_, _ = d.WriteString(strconv.Itoa(v))
	_, _ = d.Write([]byte{fieldSep})
}

func writeFloat(d *xxhash.Digest, v float64) {
	_, _ = d.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	_, _ = d.Write([]byte{fieldSep})
}

// writeString length-prefixes s so labels containing separators stay unambiguous.
func writeString(d *xxhash.Digest, s string) {
	_, _ = d.WriteString(strconv.Itoa(len(s)))
	_, _ = d.Write([]byte{':'})
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{fieldSep})
}
