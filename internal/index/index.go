// Package index maps tags to catalog records and answers conjunctive tag
// queries by intersecting posting lists.
package index

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/gravitrone/shearch/internal/catalog"
)

// ErrDuplicateRecord is matched by DuplicateLoadError.
var ErrDuplicateRecord = errors.New("duplicate record")

// DuplicateLoadError reports the same command text loaded from two sources
// when the index is built in strict mode.
type DuplicateLoadError struct {
	Text   string
	First  string
	Second string
}

func (e *DuplicateLoadError) Error() string {
	return fmt.Sprintf("duplicate record %q in %s (first seen in %s)", e.Text, e.Second, e.First)
}

func (e *DuplicateLoadError) Is(target error) bool {
	return target == ErrDuplicateRecord
}

// Index is read-only once built.
type Index struct {
	postings map[string][]catalog.ID
	all      map[catalog.ID]struct{}
	records  map[catalog.ID]catalog.Record
	tags     []string
}

// TagCount is a tag with the size of its posting list.
type TagCount struct {
	Tag   string
	Count int
}

type buildOptions struct {
	strict bool
}

// Option configures Build.
type Option func(*buildOptions)

// WithStrict makes Build fail when two different sources carry the same
// command text. Duplicates are coalesced otherwise.
func WithStrict() Option {
	return func(o *buildOptions) { o.strict = true }
}

// Build indexes records in load order. Duplicates take the union of all tags
// and keep the first non-empty description and the first template, so a later
// copy only fills what earlier copies left blank.
func Build(records []catalog.Record, opts ...Option) (*Index, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	ix := &Index{
		postings: make(map[string][]catalog.ID),
		all:      make(map[catalog.ID]struct{}, len(records)),
		records:  make(map[catalog.ID]catalog.Record, len(records)),
	}

	for _, rec := range records {
		id := rec.ID()
		if prev, ok := ix.records[id]; ok {
			if o.strict && prev.Source != rec.Source {
				return nil, &DuplicateLoadError{Text: rec.Text, First: prev.Source, Second: rec.Source}
			}
			ix.records[id] = coalesce(prev, rec)
		} else {
			rec.Tags = append([]string(nil), rec.Tags...)
			ix.records[id] = rec
			ix.all[id] = struct{}{}
		}
		for _, tag := range rec.Tags {
			ix.post(tag, id)
		}
	}

	ix.tags = make([]string, 0, len(ix.postings))
	for tag := range ix.postings {
		ix.tags = append(ix.tags, tag)
	}
	sort.Strings(ix.tags)
	return ix, nil
}

func (ix *Index) post(tag string, id catalog.ID) {
	for _, existing := range ix.postings[tag] {
		if existing == id {
			return
		}
	}
	ix.postings[tag] = append(ix.postings[tag], id)
}

func coalesce(first, dup catalog.Record) catalog.Record {
	for _, tag := range dup.Tags {
		if !first.HasTag(tag) {
			first.Tags = append(first.Tags, tag)
		}
	}
	if first.Template == nil && dup.Template != nil {
		first.Template = dup.Template
	}
	if first.Description == "" {
		first.Description = dup.Description
	}
	return first
}

// ParseQuery splits a search field into tags. Space and comma both separate.
func ParseQuery(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
}

// Query returns the records carrying every tag, ordered by ascending id.
// Empty tags are ignored and a query with no tags matches nothing.
func (ix *Index) Query(tags []string) []catalog.Record {
	wanted := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			wanted = append(wanted, t)
		}
	}
	if len(wanted) == 0 {
		return []catalog.Record{}
	}

	common := ix.all
	for _, tag := range wanted {
		posting, ok := ix.postings[tag]
		if !ok {
			return []catalog.Record{}
		}
		next := make(map[catalog.ID]struct{}, len(posting))
		for _, id := range posting {
			if _, ok := common[id]; ok {
				next[id] = struct{}{}
			}
		}
		common = next
		if len(common) == 0 {
			return []catalog.Record{}
		}
	}

	ids := make([]catalog.ID, 0, len(common))
	for id := range common {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]catalog.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, ix.copyOf(id))
	}
	return out
}

// Record looks up a record by id.
func (ix *Index) Record(id catalog.ID) (catalog.Record, bool) {
	if _, ok := ix.records[id]; !ok {
		return catalog.Record{}, false
	}
	return ix.copyOf(id), true
}

// copyOf returns a record whose tag slice the caller may modify.
func (ix *Index) copyOf(id catalog.ID) catalog.Record {
	rec := ix.records[id]
	rec.Tags = append([]string(nil), rec.Tags...)
	return rec
}

// Len returns the number of distinct records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Count returns how many records carry tag.
func (ix *Index) Count(tag string) int {
	return len(ix.postings[tag])
}

// Tags lists every tag with its posting size, sorted by tag.
func (ix *Index) Tags() []TagCount {
	out := make([]TagCount, 0, len(ix.tags))
	for _, tag := range ix.tags {
		out = append(out, TagCount{Tag: tag, Count: len(ix.postings[tag])})
	}
	return out
}

// Suggest returns up to limit known tags that fuzzy-match partial, best first.
func (ix *Index) Suggest(partial string, limit int) []string {
	partial = strings.TrimSpace(partial)
	if partial == "" || limit <= 0 {
		return nil
	}
	matches := fuzzy.Find(partial, ix.tags)
	out := make([]string, 0, limit)
	for _, m := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}
