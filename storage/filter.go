// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"strings"

	"github.com/poiesic/clipmind/core"
)

// Field names a chunk metadata field addressable by filters.
type Field string

const (
	// FieldTitle is the video title.
	FieldTitle Field = "title"
	// FieldSummary is the video summary.
	FieldSummary Field = "summary"
	// FieldKind is the chunk content-type tag.
	FieldKind Field = "kind"
	// FieldVideoID is the canonical video identifier.
	FieldVideoID Field = "videoId"
	// FieldSection is the chunk's section title.
	FieldSection Field = "section"
	// FieldUsername is the owner's username.
	FieldUsername Field = "username"
	// FieldTopics is the set of topic names.
	FieldTopics Field = "topics"
	// FieldKeywords is the keyword set.
	FieldKeywords Field = "keywords"
	// FieldKeyElements is the set of visual key elements across scenes.
	FieldKeyElements Field = "keyElements"
)

// Filter is a metadata filter expression: conjunctions and disjunctions over
// equality, set-membership and existence predicates.
type Filter interface {
	// Matches reports whether the metadata satisfies the filter.
	Matches(m *core.ChunkMetadata) bool
}

type andFilter struct{ children []Filter }

func (f *andFilter) Matches(m *core.ChunkMetadata) bool {
	for _, c := range f.children {
		if !c.Matches(m) {
			return false
		}
	}
	return true
}

type orFilter struct{ children []Filter }

func (f *orFilter) Matches(m *core.ChunkMetadata) bool {
	for _, c := range f.children {
		if c.Matches(m) {
			return true
		}
	}
	return false
}

type eqFilter struct {
	field Field
	value string
}

func (f *eqFilter) Matches(m *core.ChunkMetadata) bool {
	return scalarValue(m, f.field) == f.value
}

type inFilter struct {
	field  Field
	values []string
}

func (f *inFilter) Matches(m *core.ChunkMetadata) bool {
	if scalar, ok := tryScalarValue(m, f.field); ok {
		lowered := strings.ToLower(scalar)
		for _, v := range f.values {
			if lowered == strings.ToLower(v) {
				return true
			}
		}
		return false
	}

	members := make(map[string]bool)
	for _, member := range setValues(m, f.field) {
		members[strings.ToLower(member)] = true
	}
	for _, v := range f.values {
		if members[strings.ToLower(v)] {
			return true
		}
	}
	return false
}

type existsFilter struct{ field Field }

func (f *existsFilter) Matches(m *core.ChunkMetadata) bool {
	if scalar, ok := tryScalarValue(m, f.field); ok {
		return strings.TrimSpace(scalar) != ""
	}
	return len(setValues(m, f.field)) > 0
}

// And builds a conjunction. An empty And matches everything.
func And(filters ...Filter) Filter {
	return &andFilter{children: filters}
}

// Or builds a disjunction. An empty Or matches nothing.
func Or(filters ...Filter) Filter {
	return &orFilter{children: filters}
}

// Eq matches records whose scalar field equals value exactly.
func Eq(field Field, value string) Filter {
	return &eqFilter{field: field, value: value}
}

// In matches records where any of the values compares equal, case-insensitively.
// For set fields the comparison is set membership; for scalar fields it is
// equality against any value.
func In(field Field, values ...string) Filter {
	return &inFilter{field: field, values: values}
}

// Exists matches records whose field is non-empty.
func Exists(field Field) Filter {
	return &existsFilter{field: field}
}

func scalarValue(m *core.ChunkMetadata, field Field) string {
	v, _ := tryScalarValue(m, field)
	return v
}

func tryScalarValue(m *core.ChunkMetadata, field Field) (string, bool) {
	switch field {
	case FieldTitle:
		return m.Title, true
	case FieldSummary:
		return m.Summary, true
	case FieldKind:
		return string(m.Kind), true
	case FieldVideoID:
		return m.VideoID, true
	case FieldSection:
		return m.Section, true
	case FieldUsername:
		return m.Username, true
	default:
		return "", false
	}
}

func setValues(m *core.ChunkMetadata, field Field) []string {
	switch field {
	case FieldTopics:
		return m.TopicNames()
	case FieldKeywords:
		return m.Keywords
	case FieldKeyElements:
		return m.KeyElements()
	default:
		return nil
	}
}
