// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"github.com/pdiddy/dpe-reader/internal/xmltree"
	"github.com/pdiddy/dpe-reader/pkg/types"
)

// writePolicy controls whether a fiche rule may replace a field's value.
type writePolicy int

const (
	// always overwrites, so the last matching entry wins.
	always writePolicy = iota

	// whileDefault writes only while the field still reads
	// types.NotSpecified, so the first matching entry (or an earlier, more
	// specific source such as the hot-water installations) wins.
	whileDefault
)

// ficheRule assigns a fiche value to a record field when the entry's
// description contains one of patterns.
type ficheRule struct {
	patterns []string
	field    func(*types.Record) *string
	policy   writePolicy
}

// ficheRules are tried in order for every entry; the first rule that matches
// and may write consumes the entry.
var ficheRules = []ficheRule{
	{[]string{"Hauteur moyenne sous plafond"}, func(r *types.Record) *string { return &r.CeilingHeight }, always},
	{[]string{"Matériau mur"}, func(r *types.Record) *string { return &r.WallMaterial }, whileDefault},
	{[]string{"Isolation:"}, func(r *types.Record) *string { return &r.Insulation }, whileDefault},
	{[]string{"Type de pb"}, func(r *types.Record) *string { return &r.LowFloorType }, always},
	{[]string{"Type de ph"}, func(r *types.Record) *string { return &r.HighFloorType }, always},
	{[]string{"Type de vitrage"}, func(r *types.Record) *string { return &r.GlazingType }, whileDefault},
	{[]string{"Type ouverture"}, func(r *types.Record) *string { return &r.OpeningType }, whileDefault},
	{[]string{"Type production ECS", "Type installation ECS"}, func(r *types.Record) *string { return &r.HotWaterType }, whileDefault},
	{[]string{"Type de ventilation"}, func(r *types.Record) *string { return &r.VentilationType }, always},
	{[]string{"Type de distribution"}, func(r *types.Record) *string { return &r.HeatingDistribution }, always},
	{[]string{"Altitude"}, func(r *types.Record) *string { return &r.Altitude }, always},
	{[]string{"Zone climatique"}, func(r *types.Record) *string { return &r.ClimateZone }, always},
	{[]string{"Année de construction"}, func(r *types.Record) *string { return &r.ConstructionPeriod }, always},
}

// ficheEntry is one (description, valeur) pair of the technical fiche.
type ficheEntry struct {
	Description string `json:"description" yaml:"description"`
	Value       string `json:"valeur" yaml:"valeur"`
}

func (r ficheRule) matches(desc string) bool {
	for _, p := range r.patterns {
		if strings.Contains(desc, p) {
			return true
		}
	}
	return false
}

// apply writes e.Value through the first eligible rule and reports whether
// any rule took the entry.
func apply(rules []ficheRule, rec *types.Record, e ficheEntry) bool {
	for _, rule := range rules {
		if !rule.matches(e.Description) {
			continue
		}
		field := rule.field(rec)
		if rule.policy == whileDefault && *field != types.NotSpecified {
			continue
		}
		*field = e.Value
		return true
	}
	return false
}

// applyFiche runs every sous_fiche_technique through ficheRules. Entries
// without a value, or that no rule takes, are listed in the debug view.
func applyFiche(root *xmltree.Node, rec *types.Record) {
	entries := []ficheEntry{}
	ignored := []string{}

	for _, ft := range root.Find("fiche_technique_collection").FindAll("fiche_technique") {
		for _, sub := range ft.Find("sous_fiche_technique_collection").FindAll("sous_fiche_technique") {
			e := ficheEntry{
				Description: sub.TextAt("description"),
				Value:       sub.TextAt("valeur"),
			}
			entries = append(entries, e)
			if e.Value == "" || !apply(ficheRules, rec, e) {
				ignored = append(ignored, e.Description)
			}
		}
	}

	rec.Debug["fiche"] = entries
	rec.Debug["fiche_ignored"] = ignored
}
