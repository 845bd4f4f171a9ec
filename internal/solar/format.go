package solar

import (
	"fmt"
	"strconv"
	"strings"

	"solarscope/internal/render"
)

// Canonical field order for celestial body records. Keys listed here keep
// this order in output; anything else the upstream adds rides along after,
// sorted.
var bodyFieldOrder = []string{
	"englishName",
	"bodyType",
	"isPlanet",
	"mass",
	"vol",
	"density",
	"gravity",
	"meanRadius",
	"semimajorAxis",
	"perihelion",
	"aphelion",
	"eccentricity",
	"sideralOrbit",
	"sideralRotation",
	"avgTemp",
	"moons",
	"aroundPlanet",
	"discoveredBy",
	"discoveryDate",
}

// bodyItem normalizes one upstream body record. The display name prefers
// englishName over the native name, matching how the upstream labels its
// records for an international audience.
func bodyItem(raw map[string]any) (render.Item, error) {
	rec := make(map[string]any, len(raw))
	for k, v := range raw {
		rec[k] = v
	}
	if en, ok := rec["englishName"].(string); ok && en != "" {
		rec["name"] = en
	}

	item, err := render.Normalize(rec, bodyFieldOrder)
	if err != nil {
		return render.Item{}, err
	}
	item.Attrs = decorateBodyAttrs(item.Attrs)
	return item, nil
}

// decorateBodyAttrs attaches markdown labels and formatted values to the
// known body fields and inserts the composite display-only lines (orbit
// range, moon summary, discovery). Unknown fields stay JSON-only.
func decorateBodyAttrs(attrs []render.Attr) []render.Attr {
	byKey := make(map[string]any, len(attrs))
	for _, a := range attrs {
		byKey[a.Key] = a.Value
	}

	out := make([]render.Attr, 0, len(attrs)+4)
	for _, a := range attrs {
		switch a.Key {
		case "bodyType":
			a = labelIf(a, "Type", str(a.Value))
		case "isPlanet":
			if b, ok := a.Value.(bool); ok {
				a.Label = "Is Planet"
				a.Text = "No"
				if b {
					a.Text = "Yes"
				}
			}
		case "mass":
			a = labelIf(a, "Mass", sciText(a.Value, "massValue", "massExponent", "kg"))
		case "vol":
			a = labelIf(a, "Volume", sciText(a.Value, "volValue", "volExponent", "km³"))
		case "density":
			a = labelIf(a, "Density", unitText(a.Value, "g/cm³"))
		case "gravity":
			a = labelIf(a, "Surface Gravity", unitText(a.Value, "m/s²"))
		case "meanRadius":
			a = labelIf(a, "Mean Radius", unitText(a.Value, "km"))
		case "semimajorAxis":
			a = labelIf(a, "Semi-major Axis", groupedText(a.Value, "km"))
		case "eccentricity":
			a = labelIf(a, "Eccentricity", numText(a.Value))
		case "sideralOrbit":
			a = labelIf(a, "Orbital Period", unitText(a.Value, "days"))
		case "sideralRotation":
			a = labelIf(a, "Rotation Period", unitText(a.Value, "hours"))
		case "avgTemp":
			a = labelIf(a, "Average Temperature", unitText(a.Value, "K"))
		}
		out = append(out, a)

		// Composite lines keep their position relative to the source fields.
		switch a.Key {
		case "aphelion":
			if txt := orbitRangeText(byKey["perihelion"], byKey["aphelion"]); txt != "" {
				out = append(out, render.Attr{Label: "Orbit Range", Text: txt})
			}
		case "moons":
			if txt := moonsText(a.Value); txt != "" {
				out = append(out, render.Attr{Label: "Moons", Text: txt})
			}
		case "aroundPlanet":
			if m, ok := a.Value.(map[string]any); ok {
				if planet := str(m["planet"]); planet != "" {
					out = append(out, render.Attr{Label: "Orbits", Text: planet})
				}
			}
		case "discoveryDate":
			if txt := discoveryText(byKey["discoveredBy"], byKey["discoveryDate"]); txt != "" {
				out = append(out, render.Attr{Label: "Discovered", Text: txt})
			}
		}
	}

	// Records without a discoveryDate can still carry a discoverer.
	if _, hasDate := byKey["discoveryDate"]; !hasDate {
		if txt := discoveryText(byKey["discoveredBy"], nil); txt != "" {
			out = append(out, render.Attr{Label: "Discovered", Text: txt})
		}
	}

	return out
}

func labelIf(a render.Attr, label, text string) render.Attr {
	if text == "" {
		return a
	}
	a.Label = label
	a.Text = text
	return a
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

// numText formats a numeric value without trailing zeros; zero and
// non-numeric values yield "" so the attr stays unlabeled.
func numText(v any) string {
	f, ok := toFloat(v)
	if !ok || f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func unitText(v any, unit string) string {
	n := numText(v)
	if n == "" {
		return ""
	}
	return n + " " + unit
}

// groupedText renders large distances with thousands separators.
func groupedText(v any, unit string) string {
	f, ok := toFloat(v)
	if !ok || f == 0 {
		return ""
	}
	return groupDigits(f) + " " + unit
}

func groupDigits(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}

	out := b.String() + frac
	if neg {
		out = "-" + out
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// sciText renders the upstream {value, exponent} pairs, e.g. mass as
// "5.97237 x 10^24 kg".
func sciText(v any, valueKey, expKey, unit string) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	val := numText(m[valueKey])
	if val == "" {
		return ""
	}
	exp, ok := toFloat(m[expKey])
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s x 10^%s %s", val, strconv.FormatFloat(exp, 'f', -1, 64), unit)
}

func orbitRangeText(perihelion, aphelion any) string {
	lo := groupedTextBare(perihelion)
	hi := groupedTextBare(aphelion)
	if lo == "" || hi == "" {
		return ""
	}
	return lo + " - " + hi + " km"
}

func groupedTextBare(v any) string {
	f, ok := toFloat(v)
	if !ok || f == 0 {
		return ""
	}
	return groupDigits(f)
}

// moonsText summarizes a body's moons: total count plus the first ten names.
func moonsText(v any) string {
	list, ok := v.([]any)
	if !ok || len(list) == 0 {
		return ""
	}

	names := make([]string, 0, 10)
	for _, entry := range list {
		if len(names) == 10 {
			break
		}
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if name := str(m["moon"]); name != "" {
			names = append(names, name)
		}
	}

	txt := fmt.Sprintf("%d total: %s", len(list), strings.Join(names, ", "))
	if len(list) > 10 {
		txt += fmt.Sprintf(", ...and %d more", len(list)-10)
	}
	return txt
}

func discoveryText(by, date any) string {
	var parts []string
	if s := str(by); s != "" {
		parts = append(parts, "by "+s)
	}
	if s := str(date); s != "" {
		parts = append(parts, "on "+s)
	}
	return strings.Join(parts, " ")
}

// countItem normalizes one known-object count record; the category id doubles
// as the display name since the upstream provides no other.
func countItem(raw map[string]any) (render.Item, error) {
	rec := make(map[string]any, len(raw)+1)
	for k, v := range raw {
		rec[k] = v
	}
	if _, ok := rec["name"]; !ok {
		rec["name"] = rec["id"]
	}

	item, err := render.Normalize(rec, []string{"knownCount", "updateDate"})
	if err != nil {
		return render.Item{}, err
	}

	for i, a := range item.Attrs {
		switch a.Key {
		case "knownCount":
			item.Attrs[i] = labelIf(a, "Known Count", groupedTextBare(a.Value))
		case "updateDate":
			item.Attrs[i] = labelIf(a, "Last Updated", str(a.Value))
		}
	}
	return item, nil
}

// positionItem normalizes one computed sky position; the object name doubles
// as the identifier. Coordinate pairs only render together, mirroring how a
// partial pair is meaningless to an observer.
func positionItem(raw map[string]any) (render.Item, error) {
	rec := make(map[string]any, len(raw)+1)
	for k, v := range raw {
		rec[k] = v
	}
	if _, ok := rec["id"]; !ok {
		rec["id"] = rec["name"]
	}

	item, err := render.Normalize(rec, []string{"ra", "dec", "az", "alt"})
	if err != nil {
		return render.Item{}, err
	}

	_, hasRA := raw["ra"]
	_, hasDec := raw["dec"]
	_, hasAz := raw["az"]
	_, hasAlt := raw["alt"]

	for i, a := range item.Attrs {
		switch a.Key {
		case "ra":
			if hasRA && hasDec {
				item.Attrs[i] = degreeAttr(a, "Right Ascension")
			}
		case "dec":
			if hasRA && hasDec {
				item.Attrs[i] = degreeAttr(a, "Declination")
			}
		case "az":
			if hasAz && hasAlt {
				item.Attrs[i] = degreeAttr(a, "Azimuth")
			}
		case "alt":
			if hasAz && hasAlt {
				item.Attrs[i] = degreeAttr(a, "Altitude")
			}
		}
	}
	return item, nil
}

func degreeAttr(a render.Attr, label string) render.Attr {
	a.Label = label
	if f, ok := toFloat(a.Value); ok {
		// zero is a legal coordinate, so this does not go through numText
		a.Text = strconv.FormatFloat(f, 'f', -1, 64) + "°"
	} else {
		a.Text = fmt.Sprintf("%v°", a.Value)
	}
	return a
}
