// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strconv"
	"strings"

	"github.com/pdiddy/dpe-reader/internal/grade"
	"github.com/pdiddy/dpe-reader/internal/xmltree"
	"github.com/pdiddy/dpe-reader/pkg/types"
)

// validityYears is how long a DPE stays valid after it is issued.
const validityYears = 10

// periodLabels maps enum_periode_construction_id to its decade label.
var periodLabels = map[string]string{
	"1":  "Avant 1948",
	"2":  "1949-1974",
	"3":  "1975-1977",
	"4":  "1978-1982",
	"5":  "1983-1988",
	"6":  "1989-2000",
	"7":  "2001-2005",
	"8":  "2006-2012",
	"9":  "2013-2021",
	"10": "Après 2021",
}

// inertiaLabels maps enum_classe_inertie_id to its label.
var inertiaLabels = map[string]string{
	"1": "Très légère",
	"2": "Légère",
	"3": "Moyenne",
	"4": "Lourde",
}

func readAdministrative(root *xmltree.Node, rec *types.Record) {
	rec.DPEID = root.TextAt("numero_dpe")

	admin := root.Find("administratif")
	rec.Date = admin.TextAt("date_etablissement_dpe")
	rec.Address = admin.TextAt("geolocalisation/adresses/adresse_bien/label_brut")
	rec.ValidUntil = validUntil(rec.Date)
}

// validUntil adds validityYears to the year of date by rewriting the first
// occurrence of the year text. It does no calendar arithmetic: "2021-03-04"
// becomes "2031-03-04". A date whose first four characters are not a number
// yields types.Undetermined; an empty date stays empty.
func validUntil(date string) string {
	if date == "" {
		return ""
	}
	prefix := date
	if len(prefix) > 4 {
		prefix = prefix[:4]
	}
	year, err := strconv.Atoi(strings.TrimSpace(prefix))
	if err != nil {
		return types.Undetermined
	}
	return strings.Replace(date, strconv.Itoa(year), strconv.Itoa(year+validityYears), 1)
}

func readCharacteristics(root *xmltree.Node, rec *types.Record) {
	carac := root.Find("logement/caracteristique_generale")
	rec.Surface = optionalNumber(carac.Find("surface_habitable_logement"))
	rec.Levels = carac.TextAt("nombre_niveau_logement")
	rec.ConstructionYear = carac.TextAt("annee_construction")
	rec.ConstructionPeriod = rec.ConstructionYear

	meteo := root.Find("logement/meteo")
	rec.AltitudeID = meteo.TextAt("enum_classe_altitude_id")
	rec.ClimateZoneID = meteo.TextAt("enum_zone_climatique_id")
	if rec.AltitudeID != "" {
		rec.Altitude = rec.AltitudeID
	}
	if rec.ClimateZoneID != "" {
		rec.ClimateZone = rec.ClimateZoneID
	}
}

func readOutputs(root *xmltree.Node, rec *types.Record) {
	sortie := root.Find("logement/sortie")
	if sortie == nil {
		return
	}

	if ep := sortie.Find("ep_conso"); ep != nil {
		rec.EnergyUse = optionalNumber(ep.Find("ep_conso_5_usages_m2"))
		rec.EnergyClass = reconcileGrade(ep.TextAt("classe_bilan_dpe"), rec.EnergyUse, grade.Energy)
	}
	if ges := sortie.Find("emission_ges"); ges != nil {
		rec.Emissions = optionalNumber(ges.Find("emission_ges_5_usages_m2"))
		rec.ClimateClass = reconcileGrade(ges.TextAt("classe_emission_ges"), rec.Emissions, grade.Climate)
	}
}

// fallbackPeriod fills the construction period from its coded identifier
// when neither the year nor the fiche provided one.
func fallbackPeriod(root *xmltree.Node, rec *types.Record) {
	if rec.ConstructionPeriod != "" {
		return
	}
	id := root.TextAt("logement/caracteristique_generale/enum_periode_construction_id")
	if label, ok := periodLabels[id]; ok {
		rec.ConstructionPeriod = label
		return
	}
	rec.ConstructionPeriod = types.Unknown
}

func readInertia(root *xmltree.Node, rec *types.Record) {
	rec.InertiaID = root.TextAt("logement/enveloppe/inertie/enum_classe_inertie_id")
	if label, ok := inertiaLabels[rec.InertiaID]; ok {
		rec.Inertia = label
	}
}

// readRenewables reports renewable production when the section exists and
// is not marked xsi:nil="true".
func readRenewables(root *xmltree.Node, rec *types.Record) {
	enr := root.Find("logement/production_elec_enr")
	if enr == nil {
		return
	}
	isNil, _ := enr.Attr("nil")
	rec.HasRenewables = strings.TrimSpace(isNil) != "true"
}

func readDebug(root *xmltree.Node, rec *types.Record) {
	nodes := 0
	root.Walk(func(*xmltree.Node, int) { nodes++ })

	rec.Debug["root"] = root.Name
	rec.Debug["namespace"] = root.Space
	rec.Debug["nodes"] = nodes
}
