package format

import (
	"strings"

	"lumos/internal/classify"
	"lumos/internal/source"
)

type Options struct {
	IndentSize     int // 2 or 4
	SortAttributes bool
	AlignFields    bool
}

func (o Options) withDefaults() Options {
	if o.IndentSize != 2 && o.IndentSize != 4 {
		o.IndentSize = 4
	}
	return o
}

// Format rewrites the whole document: re-indentation, attribute sorting and
// struct field alignment, driven by per-line classification. It is total:
// any input produces output, and the result always fully replaces the
// document even when only one line changed.
func Format(text string, opts Options) string {
	opts = opts.withDefaults()
	p := printer{
		opt: opts,
		out: newWriter(),
	}
	for _, line := range source.NewDocument(text).Lines() {
		p.printLine(line)
	}
	p.finish()
	return p.out.String()
}

type printer struct {
	opt      Options
	out      *writer
	level    int
	inStruct bool
	attrs    []string // pending attribute lines, stored trimmed
	fields   []string // pending field lines, stored raw
}

func (p *printer) printLine(line string) {
	trimmed := strings.TrimSpace(line)
	kind := classify.Classify(line, classify.State{InStructBody: p.inStruct})

	switch kind {
	case classify.Blank:
		// Blanks pass through verbatim and interrupt any attribute run.
		p.flushAttrs()
		p.out.raw(line)

	case classify.Attribute:
		p.attrs = append(p.attrs, trimmed)

	case classify.StructOrEnumOpen:
		p.flushAttrs()
		p.out.line(p.level, p.opt.IndentSize, trimmed)
		if strings.HasSuffix(trimmed, "{") {
			p.level++
			if classify.IsStructDecl(trimmed) {
				p.inStruct = true
			}
		}

	case classify.BlockClose:
		p.closeBlock(trimmed)

	case classify.FieldLine:
		p.flushAttrs()
		p.fields = append(p.fields, line)

	default:
		p.flushAttrs()
		if trimmed == "{" {
			// A lone open brace sits at the pre-increment level and opens a
			// struct body when the previous emitted line declared a struct.
			prev := p.out.lastEmitted()
			p.out.line(p.level, p.opt.IndentSize, trimmed)
			p.level++
			if classify.IsStructDecl(prev) {
				p.inStruct = true
			}
			return
		}
		p.out.line(p.level, p.opt.IndentSize, trimmed)
	}
}

func (p *printer) closeBlock(trimmed string) {
	p.flushAttrs()
	newLevel := p.level - 1
	if newLevel < 0 {
		// Close without a matching open: recover at level 0.
		newLevel = 0
	}
	if p.inStruct && len(p.fields) > 0 {
		p.flushFields(newLevel + 1)
	}
	p.level = newLevel
	p.inStruct = false
	p.out.line(p.level, p.opt.IndentSize, trimmed)
}

func (p *printer) finish() {
	p.flushFields(p.level)
	p.flushAttrs()
}

func (p *printer) flushAttrs() {
	if len(p.attrs) == 0 {
		return
	}
	if p.opt.SortAttributes {
		sortStrings(p.attrs)
	}
	for _, attr := range p.attrs {
		p.out.line(p.level, p.opt.IndentSize, attr)
	}
	p.attrs = p.attrs[:0]
}

func (p *printer) flushFields(level int) {
	if len(p.fields) == 0 {
		return
	}
	indent := strings.Repeat(" ", level*p.opt.IndentSize)
	if p.opt.AlignFields {
		for _, line := range alignFields(p.fields, indent) {
			p.out.raw(line)
		}
	} else {
		for _, line := range p.fields {
			p.out.raw(indent + strings.TrimSpace(line))
		}
	}
	p.fields = p.fields[:0]
}
