// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract walks a normalized DPE document tree and produces the flat
// types.Record consumed by presentation layers.
//
// Each section of the document is read independently. A missing section
// leaves its fields at the sentinels set by types.NewRecord; only a document
// that cannot be read at all produces a *ParseError, and then no record is
// returned.
package extract

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/dpe-reader/internal/grade"
	"github.com/pdiddy/dpe-reader/internal/xmltree"
	"github.com/pdiddy/dpe-reader/pkg/types"
)

// descriptionPath locates the free-text description of installations,
// generators and emitters.
const descriptionPath = "donnee_entree/description"

// ParseError reports a document that could not be turned into a record.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return "Erreur XML: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// sections run in order. The hot-water pass must precede the fiche pass,
// which must precede the construction period fallback.
var sections = []func(root *xmltree.Node, rec *types.Record){
	readAdministrative,
	readCharacteristics,
	readOutputs,
	readHeating,
	readHotWater,
	readPacks,
	readHeatLoss,
	applyFiche,
	fallbackPeriod,
	readInertia,
	readRenewables,
	readDebug,
}

// Parse decodes r and extracts its record. Any failure is a *ParseError.
func Parse(r io.Reader) (*types.Record, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return FromTree(root)
}

// FromTree extracts a record from an already decoded tree. A panic during the
// walk is reported as a *ParseError rather than a partial record.
func FromTree(root *xmltree.Node) (rec *types.Record, err error) {
	if root == nil {
		return nil, &ParseError{Err: xmltree.ErrNoRoot}
	}

	defer func() {
		if p := recover(); p != nil {
			rec = nil
			err = &ParseError{Err: fmt.Errorf("unexpected failure: %v", p)}
		}
	}()

	rec = types.NewRecord()
	for _, section := range sections {
		section(root, rec)
	}
	return rec, nil
}

// Summarize returns either the *types.Record for r or a types.Failure
// describing why it could not be built.
func Summarize(r io.Reader) any {
	rec, err := Parse(r)
	if err != nil {
		return types.Failure{Error: err.Error()}
	}
	return rec
}

// number converts source text to a float. Blank, malformed, NaN and infinite
// values read as 0. A decimal comma is accepted.
func number(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return 0
		}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// optionalNumber is nil when the node is absent and number(text) otherwise.
func optionalNumber(n *xmltree.Node) *float64 {
	if n == nil {
		return nil
	}
	v := number(n.Text())
	return &v
}

// cents converts decimal euros to whole cents. Amounts that do not fit in an
// int64 are malformed and read as 0, like NaN in number.
func cents(euros float64) int64 {
	c := math.Round(euros * 100)
	if !(c >= -(1<<63) && c < 1<<63) {
		return 0
	}
	return int64(c)
}

// reconcileGrade prefers the letter written in the document. When it is
// missing or not a valid letter, the grade is derived from value.
func reconcileGrade(letter string, value *float64, scale grade.Scale) *types.Grade {
	if g, ok := grade.Parse(letter); ok {
		return &g
	}
	if value != nil {
		g := scale.Classify(*value)
		return &g
	}
	return nil
}
