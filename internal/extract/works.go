// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"github.com/pdiddy/dpe-reader/internal/grade"
	"github.com/pdiddy/dpe-reader/internal/xmltree"
	"github.com/pdiddy/dpe-reader/pkg/types"
)

// readPacks builds one RenovationPack per pack_travaux, numbered from 1 in
// document order. No packs means no priority works were identified.
func readPacks(root *xmltree.Node, rec *types.Record) {
	packs := root.Find("descriptif_travaux/pack_travaux_collection").FindAll("pack_travaux")
	for i, p := range packs {
		pack := types.RenovationPack{
			Number:         i + 1,
			CostMin:        cents(number(p.TextAt("cout_pack_travaux_min"))),
			CostMax:        cents(number(p.TextAt("cout_pack_travaux_max"))),
			EnergyAfter:    number(p.TextAt("conso_5_usages_apres_travaux")),
			EmissionsAfter: number(p.TextAt("emission_ges_5_usages_apres_travaux")),
			Works:          []types.WorkItem{},
		}
		pack.EnergyClassAfter = grade.Energy.Classify(pack.EnergyAfter)
		pack.ClimateClassAfter = grade.Climate.Classify(pack.EmissionsAfter)

		for _, w := range p.Find("travaux_collection").FindAll("travaux") {
			pack.Works = append(pack.Works, types.WorkItem{
				Title:  w.TextAt("description_travaux"),
				Detail: w.TextAt("performance_recommande"),
			})
		}
		rec.Packs = append(rec.Packs, pack)
	}
}

// lossSources lists the deperdition leaves summed into each category.
var lossSources = map[string][]string{
	types.LossWalls:          {"deperdition_mur"},
	types.LossRoof:           {"deperdition_plancher_haut"},
	types.LossLowFloor:       {"deperdition_plancher_bas"},
	types.LossOpenings:       {"deperdition_baie_vitree", "deperdition_porte"},
	types.LossThermalBridges: {"deperdition_pont_thermique"},
	types.LossAirRenewal:     {"deperdition_renouvellement_air"},
}

// readHeatLoss converts the deperdition figures into whole percentages. The
// breakdown stays empty when the section is missing or sums to zero.
func readHeatLoss(root *xmltree.Node, rec *types.Record) {
	dep := root.Find("logement/sortie/deperdition")
	if dep == nil {
		return
	}

	raw := make(map[string]float64, len(types.LossCategories))
	magnitudes := make([]float64, len(types.LossCategories))
	for i, category := range types.LossCategories {
		for _, leaf := range lossSources[category] {
			magnitudes[i] += number(dep.TextAt(leaf))
		}
		raw[category] = magnitudes[i]
	}
	rec.Debug["deperdition"] = raw

	shares, err := grade.Apportion(magnitudes)
	if err != nil {
		return
	}
	for i, category := range types.LossCategories {
		rec.HeatLoss[category] = shares[i]
	}
}
