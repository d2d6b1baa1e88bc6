package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/dpe-reader/pkg/types"
)

// recordWriter serializes parse outcomes in one output format.
type recordWriter interface {
	// Emit writes the outcome for source: a *types.Record or a types.Failure.
	Emit(source string, result any) error
	Close() error
}

func newWriter(w io.Writer, format types.OutputFormat) (recordWriter, error) {
	switch format {
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return &jsonWriter{enc: enc}, nil
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		return &yamlWriter{enc: enc}, nil
	case types.OutputText:
		return &textWriter{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q: use json, yaml, or text", format)
	}
}

// jsonWriter writes one indented JSON value per document.
type jsonWriter struct {
	enc *json.Encoder
}

func (j *jsonWriter) Emit(_ string, result any) error {
	return j.enc.Encode(result)
}

func (j *jsonWriter) Close() error { return nil }

// yamlWriter writes a YAML stream with one document per source.
type yamlWriter struct {
	enc *yaml.Encoder
}

func (y *yamlWriter) Emit(_ string, result any) error {
	return y.enc.Encode(result)
}

func (y *yamlWriter) Close() error { return y.enc.Close() }

// textWriter prints a human-readable summary per document.
type textWriter struct {
	w       io.Writer
	written int
}

func (t *textWriter) Close() error { return nil }

func (t *textWriter) Emit(source string, result any) error {
	var b strings.Builder
	if t.written > 0 {
		b.WriteString("\n")
	}
	t.written++

	fmt.Fprintf(&b, "== %s\n", source)
	switch r := result.(type) {
	case types.Failure:
		fmt.Fprintf(&b, "%s\n", r.Error)
	case *types.Record:
		writeRecordText(&b, r)
	default:
		return fmt.Errorf("unexpected result type %T", result)
	}

	_, err := io.WriteString(t.w, b.String())
	return err
}

func writeRecordText(b *strings.Builder, r *types.Record) {
	fmt.Fprintf(b, "DPE %s, établi le %s, valide jusqu'au %s\n", orDash(r.DPEID), orDash(r.Date), orDash(r.ValidUntil))
	fmt.Fprintf(b, "Adresse: %s\n", orDash(r.Address))
	fmt.Fprintf(b, "Surface: %s m²  Niveaux: %s  Période: %s\n", optional(r.Surface), orDash(r.Levels), r.ConstructionPeriod)
	fmt.Fprintf(b, "Énergie: %s kWh/m²/an  classe %s\n", optional(r.EnergyUse), gradeText(r.EnergyClass))
	fmt.Fprintf(b, "Climat: %s kg CO₂/m²/an  classe %s\n", optional(r.Emissions), gradeText(r.ClimateClass))
	fmt.Fprintf(b, "Chauffage: %s (émetteurs: %s)\n", r.HeatingGenerator, r.HeatingEmitter)
	fmt.Fprintf(b, "Eau chaude: %s\n", r.HotWaterType)
	fmt.Fprintf(b, "Ventilation: %s  Inertie: %s  Production ENR: %s\n", r.VentilationType, r.Inertia, yesNo(r.HasRenewables))

	if len(r.HeatLoss) > 0 {
		parts := make([]string, 0, len(types.LossCategories))
		for _, c := range types.LossCategories {
			parts = append(parts, fmt.Sprintf("%s %d%%", c, r.HeatLoss[c]))
		}
		fmt.Fprintf(b, "Déperditions: %s\n", strings.Join(parts, ", "))
	}

	if len(r.Packs) == 0 {
		b.WriteString("Travaux: aucun pack recommandé\n")
		return
	}
	b.WriteString("Travaux:\n")
	for _, p := range r.Packs {
		fmt.Fprintf(b, "  %d. %s à %s, après travaux %s / %s\n",
			p.Number, euros(p.CostMin), euros(p.CostMax), p.EnergyClassAfter, p.ClimateClassAfter)
		for _, w := range p.Works {
			if w.Detail == "" {
				fmt.Fprintf(b, "     - %s\n", w.Title)
				continue
			}
			fmt.Fprintf(b, "     - %s (%s)\n", w.Title, w.Detail)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func optional(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

func gradeText(g *types.Grade) string {
	if g == nil {
		return "-"
	}
	return string(*g)
}

func yesNo(b bool) string {
	if b {
		return "oui"
	}
	return "non"
}

// euros formats a cent amount as "12000,50 €".
func euros(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d,%02d €", sign, cents/100, cents%100)
}
