package contract

// JurisdictionCustom selects freeform governing-law text. When either the
// jurisdiction or the dispute-resolution method is custom, the corresponding
// override text is required.
const JurisdictionCustom = "custom"

// DisputeMethods lists the selectable conflict-resolution methods.
var DisputeMethods = []string{"negotiation", "mediation", "arbitration", "litigation", JurisdictionCustom}

// applicableLaws maps a jurisdiction key to the canned governing-law text
// shown alongside the legal-compliance group. Display text only; no legal
// interpretation happens client-side.
var applicableLaws = map[string]string{
	"us_federal": "Governed by the federal laws of the United States, including the FTC Act disclosure requirements for sponsored content.",
	"us_ca":      "Governed by the laws of the State of California, including applicable consumer protection and advertising statutes.",
	"us_ny":      "Governed by the laws of the State of New York.",
	"uk":         "Governed by the laws of England and Wales, including CAP Code requirements for influencer advertising.",
	"eu":         "Governed by applicable European Union law, including the Unfair Commercial Practices Directive.",
	"canada":     "Governed by the laws of Canada and the Ad Standards Influencer Marketing Disclosure Guidelines.",
	"australia":  "Governed by the laws of Australia, including AANA advertising codes.",
}

// Jurisdictions returns the selectable jurisdiction keys, custom last.
func Jurisdictions() []string {
	keys := make([]string, 0, len(applicableLaws)+1)
	for _, k := range []string{"us_federal", "us_ca", "us_ny", "uk", "eu", "canada", "australia"} {
		keys = append(keys, k)
	}
	return append(keys, JurisdictionCustom)
}

// ApplicableLaws resolves the canned governing-law text for a jurisdiction
// key. For the custom variant (or an unknown key) it returns ok=false and the
// caller must supply override text.
func ApplicableLaws(jurisdiction string) (string, bool) {
	text, ok := applicableLaws[jurisdiction]
	return text, ok
}
