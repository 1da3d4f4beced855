package readability

// getEasyWords returns familiar multi-syllable words that the Dale-Chall
// formula does not count as difficult. One-syllable words are never difficult,
// so only longer words need listing.
func getEasyWords() map[string]bool {
	words := []string{
		"about", "above", "across", "after", "afternoon", "again", "against", "ago", "airplane", "alive",
		"almost", "alone", "along", "already", "also", "always", "among", "anger", "angry", "animal",
		"another", "answer", "any", "anybody", "anyone", "anything", "anyway", "apple", "apron", "around",
		"arrow", "asleep", "auto", "away", "baby", "backward", "bacon", "balloon", "banana", "barber",
		"basket", "beaver", "beautiful", "became", "because", "become", "before", "began", "begin", "behind",
		"being", "believe", "belong", "below", "beside", "better", "between", "bicycle", "birthday", "blanket",
		"body", "bottle", "bottom", "brother", "bucket", "butter", "button", "cabin", "candy", "careful",
		"carpet", "carry", "cellar", "center", "chicken", "children", "circle", "city", "clever", "closet",
		"coffee", "color", "common", "contest", "corner", "cotton", "country", "cousin", "cover", "crazy",
		"daddy", "dinner", "doctor", "dollar", "donkey", "double", "dozen", "during", "early", "easy",
		"eleven", "else", "empty", "enemy", "engine", "enough", "even", "evening", "ever", "every",
		"everybody", "everyone", "everything", "family", "famous", "farmer", "father", "feather", "fellow", "fifteen",
		"finger", "finish", "flower", "follow", "forest", "forget", "forgot", "forty", "friendly", "funny",
		"garden", "gentle", "giant", "ginger", "glasses", "golden", "govern", "grandma", "grocer", "happen",
		"happy", "hello", "helpful", "himself", "holiday", "hollow", "honey", "hotel", "hundred", "hungry",
		"hurry", "idea", "important", "inside", "instead", "iron", "island", "itself", "jacket", "jelly",
		"kitchen", "kitten", "ladder", "lady", "later", "lazy", "lemon", "lesson", "letter", "little",
		"lonely", "lovely", "market", "matter", "maybe", "medicine", "middle", "minute", "mister", "money",
		"monkey", "morning", "mother", "motor", "mountain", "music", "myself", "narrow", "never", "nobody",
		"nothing", "number", "ocean", "office", "often", "open", "orange", "other", "outside", "over",
		"paper", "parent", "party", "pencil", "people", "perhaps", "person", "picture", "pillow", "planet",
		"pocket", "police", "pony", "potato", "pretty", "problem", "promise", "public", "puppy", "purple",
		"quiet", "rabbit", "railroad", "ready", "really", "remember", "river", "robin", "rocket", "sailor",
		"second", "seven", "shadow", "silver", "simple", "sister", "sixty", "sometimes", "something", "sorry",
		"spider", "story", "student", "sudden", "sugar", "summer", "supper", "surprise", "table", "teacher",
		"thirty", "thousand", "today", "together", "tomorrow", "tonight", "towards", "tractor", "travel", "turkey",
		"twenty", "under", "until", "upon", "useful", "very", "village", "visit", "wagon", "water",
		"weather", "window", "winter", "without", "woman", "women", "wonder", "wonderful", "yellow", "yesterday",
	}

	easyWords := make(map[string]bool, len(words))
	for _, word := range words {
		easyWords[word] = true
	}
	return easyWords
}
