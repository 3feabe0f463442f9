package domain

// Static reference tables. Loaded once at process start and never mutated,
// so they are safe to share across concurrent calls without locking. The
// keys drive intent matching and the values are interpolated into replies;
// both sides must use exactly the same keys.

// DesignStyles maps a style key to its display description.
var DesignStyles = map[string]string{
	"modern":       "Clean lines, minimal decoration, and a focus on function",
	"contemporary": "Current trends with smooth profiles and curated contrast",
	"minimalist":   "Pared-back spaces, neutral palettes, and purposeful pieces",
	"industrial":   "Exposed brick, raw metal, and warehouse-inspired character",
	"scandinavian": "Light woods, cozy textiles, and bright airy simplicity",
	"bohemian":     "Layered patterns, global textures, and relaxed eclecticism",
	"rustic":       "Natural materials, weathered wood, and earthy warmth",
	"traditional":  "Classic furnishings, rich tones, and timeless symmetry",
	"transitional": "A balanced blend of traditional comfort and modern lines",
	"farmhouse":    "Shiplap, vintage accents, and welcoming country charm",
	"coastal":      "Breezy blues, natural light, and beach-house ease",
	"eclectic":     "Bold mixes of eras, colors, and collected treasures",
}

// BudgetBands maps a budget band key to its display label.
var BudgetBands = map[string]string{
	"under-10k": "Under $10,000",
	"10k-25k":   "$10,000 - $25,000",
	"25k-50k":   "$25,000 - $50,000",
	"50k-100k":  "$50,000 - $100,000",
	"over-100k": "Over $100,000",
}

// TimelineBands maps a timeline band key to its display label.
var TimelineBands = map[string]string{
	"asap":          "As soon as possible",
	"1-3-months":    "1-3 months",
	"3-6-months":    "3-6 months",
	"6-plus-months": "6+ months",
}

// RoomTypes is the fixed list the room_type step matches against, in match
// priority order (first match wins).
var RoomTypes = []string{
	"living room",
	"bedroom",
	"kitchen",
	"bathroom",
	"dining room",
	"office",
	"basement",
	"outdoor",
}

// StyleOrder and BandOrder fix the enumeration order used when a reply
// lists the tables, so re-prompts are stable across calls.
var StyleOrder = []string{
	"modern", "contemporary", "minimalist", "industrial",
	"scandinavian", "bohemian", "rustic", "traditional",
	"transitional", "farmhouse", "coastal", "eclectic",
}

var BudgetOrder = []string{"under-10k", "10k-25k", "25k-50k", "50k-100k", "over-100k"}

var TimelineOrder = []string{"asap", "1-3-months", "3-6-months", "6-plus-months"}

// CompletionNextSteps is the fixed follow-up list attached to the final
// summary of every completed conversation.
var CompletionNextSteps = []string{
	"Our design team will review your project details",
	"We'll contact you within 24 hours to schedule a consultation",
	"You'll receive a personalized design proposal and quote",
}
