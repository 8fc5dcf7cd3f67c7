package world

import "slices"

// Kind is the classified category of an entity.
type Kind uint8

const (
	KindCustom Kind = iota
	KindLocation
	KindCharacter
	KindFaction
	KindEvent
	KindItem
	KindLore
)

func (k Kind) String() string {
	switch k {
	case KindLocation:
		return "location"
	case KindCharacter:
		return "character"
	case KindFaction:
		return "faction"
	case KindEvent:
		return "event"
	case KindItem:
		return "item"
	case KindLore:
		return "lore"
	}
	return "custom"
}

// locationSubtypes are kind words that classify as locations while
// keeping their own word as the subtype.
var locationSubtypes = map[string]struct{}{
	"fortress":   {},
	"city":       {},
	"town":       {},
	"village":    {},
	"region":     {},
	"continent":  {},
	"room":       {},
	"wilderness": {},
	"dungeon":    {},
	"building":   {},
	"landmark":   {},
	"plane":      {},
}

// ClassifyKind maps a declared kind word to its category. Matching is
// exact; anything unknown is a custom kind and keeps its text.
func ClassifyKind(text string) (Kind, string) {
	switch text {
	case "location":
		return KindLocation, ""
	case "character":
		return KindCharacter, ""
	case "faction":
		return KindFaction, ""
	case "event":
		return KindEvent, ""
	case "item":
		return KindItem, ""
	case "lore":
		return KindLore, ""
	}
	if _, ok := locationSubtypes[text]; ok {
		return KindLocation, text
	}
	return KindCustom, ""
}

// Kinds lists every closed kind word plus the location subtypes, for
// completion. The order is stable: base kinds first, subtypes sorted.
func Kinds() []string {
	out := []string{"location", "character", "faction", "event", "item", "lore"}
	subs := make([]string, 0, len(locationSubtypes))
	for s := range locationSubtypes {
		subs = append(subs, s)
	}
	slices.Sort(subs)
	return append(out, subs...)
}
