// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the data structures shared by the dpe-reader
// extractor and its presentation layers.
package types

// Grade is a DPE letter from A (best) to G (worst).
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeE Grade = "E"
	GradeF Grade = "F"
	GradeG Grade = "G"
)

// Grades lists every letter from best to worst.
var Grades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeE, GradeF, GradeG}

// Placeholder values for fields the source document does not provide.
// Consumers compare against these instead of checking for missing keys.
const (
	NotSpecified  = "Non précis"
	NotApplicable = "N/A"
	Unidentified  = "Non identifié"
	Unknown       = "Inconnue"
	Undetermined  = "Non déterminé"
)

// Heat-loss categories, in tie-break order for percentage rounding.
const (
	LossWalls          = "mur"
	LossRoof           = "toiture"
	LossLowFloor       = "plancher_bas"
	LossOpenings       = "baies"
	LossThermalBridges = "ponts_thermiques"
	LossAirRenewal     = "ventilation"
)

// LossCategories is the fixed key set of Record.HeatLoss.
var LossCategories = []string{
	LossWalls,
	LossRoof,
	LossLowFloor,
	LossOpenings,
	LossThermalBridges,
	LossAirRenewal,
}

// WorkItem is one recommended action inside a renovation pack.
type WorkItem struct {
	// Title names the works, e.g. "Isolation des murs par l'extérieur".
	Title string `json:"titre" yaml:"titre"`

	// Detail is the recommended performance text shown under the title.
	Detail string `json:"description" yaml:"description"`
}

// RenovationPack is a bundle of recommended works with the projected
// performance once they are done.
type RenovationPack struct {
	// Number is the display number, assigned 1, 2, ... in document order.
	// Numbering found in the source is ignored.
	Number int `json:"num" yaml:"num"`

	// CostMin and CostMax are in euro cents.
	CostMin int64 `json:"cout_min" yaml:"cout_min"`
	CostMax int64 `json:"cout_max" yaml:"cout_max"`

	// EnergyAfter is the projected primary energy use in kWh/m²/year.
	EnergyAfter float64 `json:"conso_apres" yaml:"conso_apres"`

	// EmissionsAfter is the projected emission in kg CO₂/m²/year.
	EmissionsAfter float64 `json:"ges_apres" yaml:"ges_apres"`

	EnergyClassAfter  Grade `json:"classe_energie_apres" yaml:"classe_energie_apres"`
	ClimateClassAfter Grade `json:"classe_climat_apres" yaml:"classe_climat_apres"`

	Works []WorkItem `json:"travaux" yaml:"travaux"`
}

// Record is the normalized summary of one DPE document. Every field is always
// present; absent source data leaves the sentinel set by NewRecord.
type Record struct {
	// Administrative identity.
	DPEID      string `json:"dpe_id" yaml:"dpe_id"`
	Date       string `json:"date" yaml:"date"`
	ValidUntil string `json:"date_fin_validite" yaml:"date_fin_validite"`
	Address    string `json:"adresse" yaml:"adresse"`

	// Dwelling characteristics.
	Surface          *float64 `json:"surface" yaml:"surface"`
	Levels           string   `json:"nombre_niveaux" yaml:"nombre_niveaux"`
	ConstructionYear string   `json:"annee_construction" yaml:"annee_construction"`
	AltitudeID       string   `json:"altitude_id" yaml:"altitude_id"`
	ClimateZoneID    string   `json:"zone_climatique_id" yaml:"zone_climatique_id"`

	// Headline metrics.
	EnergyUse    *float64 `json:"conso_kwh" yaml:"conso_kwh"`
	Emissions    *float64 `json:"conso_ges" yaml:"conso_ges"`
	EnergyClass  *Grade   `json:"classe_energie" yaml:"classe_energie"`
	ClimateClass *Grade   `json:"classe_climat" yaml:"classe_climat"`

	// Heating.
	HeatingGenerator string `json:"chauffage_generateur" yaml:"chauffage_generateur"`
	HeatingEmitter   string `json:"chauffage_emetteur" yaml:"chauffage_emetteur"`
	HeatingType      string `json:"chauffage_type" yaml:"chauffage_type"`

	Packs []RenovationPack `json:"packs_travaux" yaml:"packs_travaux"`

	// Technical details, mostly filled from the free-form fiche.
	ConstructionPeriod  string `json:"periode_construction" yaml:"periode_construction"`
	CeilingHeight       string `json:"hsp" yaml:"hsp"`
	WallMaterial        string `json:"mur_materiaux" yaml:"mur_materiaux"`
	Insulation          string `json:"isolation_type" yaml:"isolation_type"`
	LowFloorType        string `json:"plancher_bas_type" yaml:"plancher_bas_type"`
	HighFloorType       string `json:"plancher_haut_type" yaml:"plancher_haut_type"`
	GlazingType         string `json:"vitrage_type" yaml:"vitrage_type"`
	OpeningType         string `json:"baie_type" yaml:"baie_type"`
	HotWaterType        string `json:"ecs_type" yaml:"ecs_type"`
	VentilationType     string `json:"ventilation_type" yaml:"ventilation_type"`
	HeatingDistribution string `json:"chauffage_distribution" yaml:"chauffage_distribution"`
	ClimateZone         string `json:"zone_climatique" yaml:"zone_climatique"`
	Altitude            string `json:"altitude" yaml:"altitude"`

	// HeatLoss maps each of LossCategories to a whole percentage. It is empty
	// when the document has no usable heat-loss figures.
	HeatLoss map[string]int `json:"deperditions" yaml:"deperditions"`

	InertiaID string `json:"inertie_id" yaml:"inertie_id"`
	Inertia   string `json:"inertie" yaml:"inertie"`

	HasRenewables bool `json:"has_enr" yaml:"has_enr"`

	// Debug carries raw values for a verbatim debug view.
	Debug map[string]any `json:"debug_raw" yaml:"debug_raw"`
}

// NewRecord returns a record with every field at its sentinel.
func NewRecord() *Record {
	return &Record{
		HeatingGenerator:    NotApplicable,
		HeatingEmitter:      NotApplicable,
		HeatingType:         Unidentified,
		Packs:               []RenovationPack{},
		CeilingHeight:       NotSpecified,
		WallMaterial:        NotSpecified,
		Insulation:          NotSpecified,
		LowFloorType:        NotSpecified,
		HighFloorType:       NotSpecified,
		GlazingType:         NotSpecified,
		OpeningType:         NotSpecified,
		HotWaterType:        NotSpecified,
		VentilationType:     NotSpecified,
		HeatingDistribution: NotSpecified,
		ClimateZone:         Unknown,
		Altitude:            Unknown,
		HeatLoss:            map[string]int{},
		Inertia:             Unknown,
		Debug:               map[string]any{},
	}
}

// Failure is emitted in place of a Record when a document cannot be parsed.
// Consumers check for the error key before reading anything else.
type Failure struct {
	Error string `json:"error" yaml:"error"`
}
