package sentences

import "strings"

var beAuxiliaries = map[string]bool{
	"am": true, "is": true, "are": true, "was": true, "were": true,
	"be": true, "been": true, "being": true,
}

var irregularParticiples = map[string]bool{
	"begun": true, "bought": true, "brought": true, "built": true, "caught": true,
	"chosen": true, "done": true, "drawn": true, "driven": true, "eaten": true,
	"fed": true, "felt": true, "found": true, "given": true, "gone": true,
	"grown": true, "heard": true, "held": true, "hidden": true, "hit": true,
	"kept": true, "known": true, "laid": true, "led": true, "left": true,
	"lost": true, "made": true, "meant": true, "met": true, "paid": true,
	"put": true, "read": true, "run": true, "said": true, "seen": true,
	"sent": true, "set": true, "shown": true, "shut": true, "sold": true,
	"spent": true, "spoken": true, "stolen": true, "struck": true, "taken": true,
	"taught": true, "thought": true, "told": true, "understood": true, "won": true,
	"worn": true, "written": true,
}

// words ending in -ed/-en that are rarely participles after a form of "be"
var participleLookalikes = map[string]bool{
	"often": true, "even": true, "open": true, "seven": true, "eleven": true,
	"ten": true, "then": true, "when": true, "green": true, "keen": true,
	"red": true, "bed": true, "need": true, "seed": true, "speed": true,
	"hundred": true, "sacred": true, "naked": true, "wicked": true, "kitchen": true,
	"garden": true, "children": true, "women": true, "men": true, "heaven": true,
}

// hasPassiveVoice looks for a form of "be" directly followed by a past participle
func hasPassiveVoice(words []string) bool {
	for i := 0; i+1 < len(words); i++ {
		if !beAuxiliaries[words[i]] {
			continue
		}
		if isParticiple(words[i+1]) {
			return true
		}
	}
	return false
}

func isParticiple(word string) bool {
	if irregularParticiples[word] {
		return true
	}
	if participleLookalikes[word] || len(word) < 4 {
		return false
	}
	return strings.HasSuffix(word, "ed") || strings.HasSuffix(word, "en")
}
