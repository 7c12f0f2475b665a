package tokenize

// stopwords are English function words that carry no topical signal.
// Contractions are absent because the tokenizer splits on apostrophes.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "across": {}, "after": {},
	"afterwards": {}, "again": {}, "against": {}, "all": {}, "almost": {},
	"alone": {}, "along": {}, "already": {}, "also": {}, "although": {},
	"always": {}, "am": {}, "among": {}, "amongst": {}, "amount": {}, "an": {},
	"and": {}, "another": {}, "any": {}, "anyhow": {}, "anyone": {},
	"anything": {}, "anyway": {}, "anywhere": {}, "are": {}, "around": {},
	"as": {}, "at": {}, "back": {}, "be": {}, "became": {}, "because": {},
	"become": {}, "becomes": {}, "becoming": {}, "been": {}, "before": {},
	"beforehand": {}, "behind": {}, "being": {}, "below": {}, "beside": {},
	"besides": {}, "between": {}, "beyond": {}, "both": {}, "but": {},
	"by": {}, "can": {}, "cannot": {}, "could": {}, "did": {}, "do": {},
	"does": {}, "doing": {}, "done": {}, "down": {}, "during": {}, "each": {},
	"either": {}, "else": {}, "elsewhere": {}, "enough": {}, "entirely": {},
	"especially": {}, "etc": {}, "even": {}, "ever": {}, "every": {},
	"everyone": {}, "everything": {}, "everywhere": {}, "few": {}, "for": {},
	"former": {}, "formerly": {}, "from": {}, "further": {}, "had": {},
	"has": {}, "have": {}, "having": {}, "he": {}, "hence": {}, "her": {},
	"here": {}, "hereafter": {}, "hereby": {}, "herein": {}, "hereupon": {},
	"hers": {}, "herself": {}, "him": {}, "himself": {}, "his": {}, "how": {},
	"however": {}, "i": {}, "if": {}, "in": {}, "indeed": {}, "into": {},
	"is": {}, "it": {}, "its": {}, "itself": {}, "just": {}, "keep": {},
	"last": {}, "latter": {}, "latterly": {}, "least": {}, "less": {},
	"let": {}, "like": {}, "likely": {}, "made": {}, "make": {}, "many": {},
	"may": {}, "maybe": {}, "me": {}, "meanwhile": {}, "might": {}, "mine": {},
	"more": {}, "moreover": {}, "most": {}, "mostly": {}, "much": {},
	"must": {}, "my": {}, "myself": {}, "neither": {}, "never": {},
	"nevertheless": {}, "next": {}, "no": {}, "nobody": {}, "none": {},
	"noone": {}, "nor": {}, "not": {}, "nothing": {}, "now": {}, "nowhere": {},
	"of": {}, "off": {}, "often": {}, "on": {}, "once": {}, "one": {},
	"only": {}, "onto": {}, "or": {}, "other": {}, "others": {},
	"otherwise": {}, "our": {}, "ours": {}, "ourselves": {}, "out": {},
	"over": {}, "own": {}, "part": {}, "per": {}, "perhaps": {}, "please": {},
	"put": {}, "rather": {}, "re": {}, "same": {}, "see": {}, "seem": {},
	"seemed": {}, "seeming": {}, "seems": {}, "several": {}, "she": {},
	"should": {}, "since": {}, "so": {}, "some": {}, "somehow": {},
	"someone": {}, "something": {}, "sometime": {}, "sometimes": {},
	"somewhere": {}, "still": {}, "such": {}, "take": {}, "than": {},
	"that": {}, "the": {}, "their": {}, "theirs": {}, "them": {},
	"themselves": {}, "then": {}, "thence": {}, "there": {}, "thereafter": {},
	"thereby": {}, "therefore": {}, "therein": {}, "thereupon": {},
	"these": {}, "they": {}, "this": {}, "those": {}, "through": {},
	"throughout": {}, "thru": {}, "thus": {}, "to": {}, "together": {},
	"too": {}, "toward": {}, "towards": {}, "under": {}, "until": {}, "up": {},
	"upon": {}, "us": {}, "use": {}, "very": {}, "via": {}, "was": {},
	"we": {}, "well": {}, "were": {}, "what": {}, "whatever": {}, "when": {},
	"whence": {}, "whenever": {}, "where": {}, "whereafter": {}, "whereas": {},
	"whereby": {}, "wherein": {}, "whereupon": {}, "wherever": {},
	"whether": {}, "which": {}, "while": {}, "whither": {}, "who": {},
	"whoever": {}, "whose": {}, "why": {}, "with": {}, "within": {},
	"without": {}, "would": {}, "yet": {}, "you": {}, "your": {}, "yours": {},
	"yourself": {}, "yourselves": {},
}

// IsStopword reports whether a case-folded term is a stop word.
func IsStopword(term string) bool {
	_, ok := stopwords[term]
	return ok
}
