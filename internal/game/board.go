// internal/game/board.go
//
// Board generation for a single game session.
// Responsibilities:
//   - Fold an arbitrary seed string (typically the room ID) into an integer seed.
//   - Pick 25 words: a themed list when the caller supplies a valid one,
//     otherwise a deterministic shuffle of the static dictionary.
//   - Assign hidden card types (9 red / 8 blue / 1 assassin / 7 neutral) from
//     a second stream so word order and type order are decorrelated.
//
// Guarantee: identical seed string + identical dictionary + no themed list
// yields a byte-identical board. Themed boards are best-effort and are not
// required to be reproducible.

package game

// typeSeedOffset decorrelates the card-type shuffle from the word shuffle.
const typeSeedOffset = 100

// FoldSeed folds a seed string's character codes into a non-negative integer
// seed: acc = acc*31 + code, wrapped to 32-bit signed, then absolute value.
func FoldSeed(s string) int64 {
	var acc int32
	for _, r := range s {
		acc = acc*31 + int32(r)
	}
	n := int64(acc)
	if n < 0 {
		n = -n
	}
	return n
}

// GenerateBoard builds the 25-card board for seedString.
//
// themed is an optional word list from an external source. It is used verbatim
// only when it holds exactly TotalCards distinct words; anything else (nil,
// wrong length, duplicates) silently falls back to the deterministic
// dictionary path — a malformed themed list must never surface as an error.
func GenerateBoard(seedString string, dictionary, themed []string) []Card {
	seed := FoldSeed(seedString)

	words := themed
	if !validThemedList(themed) {
		words = pickFromDictionary(dictionary, seed)
	}

	types := shuffledTypes(seed + typeSeedOffset)

	cards := make([]Card, len(words))
	for i, w := range words {
		cards[i] = Card{ID: i, Word: w, Type: types[i]}
	}
	return cards
}

// pickFromDictionary deterministically shuffles the dictionary and takes the
// first TotalCards words.
func pickFromDictionary(dictionary []string, seed int64) []string {
	shuffled := make([]string, len(dictionary))
	copy(shuffled, dictionary)
	newStream(seed).shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > TotalCards {
		shuffled = shuffled[:TotalCards]
	}
	return shuffled
}

// shuffledTypes builds the fixed card-type multiset and shuffles it with its
// own stream.
func shuffledTypes(seed int64) []CardType {
	types := make([]CardType, 0, TotalCards)
	for i := 0; i < RedCards; i++ {
		types = append(types, CardRed)
	}
	for i := 0; i < BlueCards; i++ {
		types = append(types, CardBlue)
	}
	for i := 0; i < AssassinCards; i++ {
		types = append(types, CardAssassin)
	}
	for i := 0; i < NeutralCards; i++ {
		types = append(types, CardNeutral)
	}
	newStream(seed).shuffle(len(types), func(i, j int) {
		types[i], types[j] = types[j], types[i]
	})
	return types
}

// validThemedList reports whether an external word list can be used verbatim:
// exactly TotalCards words, all non-empty and distinct.
func validThemedList(words []string) bool {
	if len(words) != TotalCards {
		return false
	}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if w == "" {
			return false
		}
		if _, dup := seen[w]; dup {
			return false
		}
		seen[w] = struct{}{}
	}
	return true
}
