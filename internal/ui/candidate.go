package ui

import (
	"context"

	"go.uber.org/zap"

	"github.com/gravitrone/shearch/internal/buffer"
	"github.com/gravitrone/shearch/internal/catalog"
)

// paintedLine remembers the text last drawn for a candidate. It is the
// surface a buffer falls back to when an insert cannot be represented.
type paintedLine struct {
	text string
}

func (p *paintedLine) Text() string { return p.text }

// candidate is one matching record together with its editable buffer.
type candidate struct {
	record  catalog.Record
	buf     *buffer.Buffer
	surface *paintedLine
	// origin is the text before any edit.
	origin string
	// err is set when the template could not be expanded and the buffer holds
	// the record's plain text instead.
	err error
}

func (c *candidate) finish() *candidate {
	c.origin = c.buf.Text()
	c.paint()
	return c
}

func (c *candidate) paint() {
	c.surface.text = c.buf.Text()
}

// newCandidate builds the buffer for rec. Templates are expanded through
// resolver; a template that fails falls back to the plain command text.
func newCandidate(ctx context.Context, rec catalog.Record, resolver buffer.Resolver, logger *zap.Logger) *candidate {
	c := &candidate{record: rec, surface: &paintedLine{}}
	opts := []buffer.Option{buffer.WithSurface(c.surface), buffer.WithLogger(logger)}

	if rec.Template != nil {
		b, err := buffer.FromTemplate(ctx, rec.Template.Mask, rec.Template.Args, resolver, opts...)
		if err == nil {
			c.buf = b
			return c.finish()
		}
		c.err = err
		logger.Warn("template expansion failed, using plain text",
			zap.String("record", rec.ID().String()),
			zap.String("source", rec.Source),
			zap.Error(err),
		)
	}

	c.buf = buffer.New(rec.Text, nil, opts...)
	return c.finish()
}
