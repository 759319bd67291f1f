package structs

import (
	"strings"

	"github.com/go-playground/validator/v10"
	val "github.com/ncobase/qeonaru/validator"
)

// Alignment of a paragraph.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Segment is a run of text inside a paragraph.
type Segment struct {
	Text   string `bson:"text" json:"text"`
	IsBold bool   `bson:"isBold" json:"isBold"`
}

// Paragraph is one block of post content.
type Paragraph struct {
	Alignment Alignment `bson:"alignment" json:"alignment" validate:"omitempty,oneof=left center right"`
	Segments  []Segment `bson:"segments" json:"segments" validate:"required,min=1"`
	Spacing   *int      `bson:"spacing,omitempty" json:"spacing,omitempty" validate:"omitempty,gte=0"`
	Indent    *int      `bson:"indent,omitempty" json:"indent,omitempty" validate:"omitempty,gte=0"`
	Bullet    bool      `bson:"bullet,omitempty" json:"bullet,omitempty"`
}

// HasText reports whether any segment carries non-whitespace text.
func (p Paragraph) HasText() bool {
	for _, s := range p.Segments {
		if strings.TrimSpace(s.Text) != "" {
			return true
		}
	}
	return false
}

// Content is the ordered rich-text body of a post.
type Content []Paragraph

// Normalize defaults empty alignments to left.
func (c Content) Normalize() Content {
	for i := range c {
		if c[i].Alignment == "" {
			c[i].Alignment = AlignLeft
		}
	}
	return c
}

// Clone returns a deep copy of the content.
func (c Content) Clone() Content {
	if c == nil {
		return nil
	}
	out := make(Content, len(c))
	for i, p := range c {
		out[i] = p
		out[i].Segments = append([]Segment{}, p.Segments...)
		if p.Spacing != nil {
			s := *p.Spacing
			out[i].Spacing = &s
		}
		if p.Indent != nil {
			n := *p.Indent
			out[i].Indent = &n
		}
	}
	return out
}

func paragraphValidation(sl validator.StructLevel) {
	p := sl.Current().Interface().(Paragraph)
	if len(p.Segments) > 0 && !p.HasText() {
		sl.ReportError(p.Segments, "segments", "Segments", "hastext", "")
	}
}

func init() {
	val.RegisterStructValidation(paragraphValidation, Paragraph{})
}
