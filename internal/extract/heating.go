// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"sort"
	"strings"

	"github.com/pdiddy/dpe-reader/internal/xmltree"
	"github.com/pdiddy/dpe-reader/pkg/types"
)

// emitterMarker introduces the emitter list inside an installation's
// free-text description, e.g. "... Emetteur(s): radiateur bitube".
const emitterMarker = "Emetteur(s):"

// textSet collects distinct non-empty descriptions.
type textSet map[string]struct{}

// add records s and reports whether it was non-empty.
func (s textSet) add(text string) bool {
	if text == "" {
		return false
	}
	s[text] = struct{}{}
	return true
}

// join returns the descriptions sorted and joined with " + ", or empty when
// the set holds nothing.
func (s textSet) join(empty string) string {
	if len(s) == 0 {
		return empty
	}
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return strings.Join(out, " + ")
}

func readHeating(root *xmltree.Node, rec *types.Record) {
	generators := textSet{}
	emitters := textSet{}

	installs := root.Find("logement/installation_chauffage_collection").FindAll("installation_chauffage")
	for _, inst := range installs {
		for _, gen := range inst.Find("generateur_chauffage_collection").FindAll("generateur_chauffage") {
			generators.add(gen.TextAt(descriptionPath))
		}

		structured := false
		for _, em := range inst.Find("emetteur_chauffage_collection").FindAll("emetteur_chauffage") {
			if emitters.add(em.TextAt(descriptionPath)) {
				structured = true
			}
		}
		if !structured {
			emitters.add(emitterFromDescription(inst.TextAt(descriptionPath)))
		}
	}

	rec.HeatingGenerator = generators.join(types.NotApplicable)
	rec.HeatingEmitter = emitters.join(types.NotApplicable)
	if rec.HeatingGenerator != types.NotApplicable {
		rec.HeatingType = rec.HeatingGenerator
	}
}

// emitterFromDescription returns the text after the first emitter marker,
// stopping at a second marker if the description repeats it.
func emitterFromDescription(desc string) string {
	_, after, ok := strings.Cut(desc, emitterMarker)
	if !ok {
		return ""
	}
	after, _, _ = strings.Cut(after, emitterMarker)
	return strings.TrimSpace(after)
}

// readHotWater describes domestic hot water from its generators, falling
// back to each installation's own description when it lists none.
func readHotWater(root *xmltree.Node, rec *types.Record) {
	systems := textSet{}

	installs := root.Find("logement/installation_ecs_collection").FindAll("installation_ecs")
	for _, inst := range installs {
		found := false
		for _, gen := range inst.Find("generateur_ecs_collection").FindAll("generateur_ecs") {
			if systems.add(gen.TextAt(descriptionPath)) {
				found = true
			}
		}
		if !found {
			systems.add(inst.TextAt(descriptionPath))
		}
	}

	if len(systems) > 0 {
		rec.HotWaterType = systems.join(types.NotSpecified)
	}
}
