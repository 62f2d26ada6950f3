package services

// stopWords are excluded from trending and top-word outputs but still
// counted in raw frequency tallies. The set covers English function words,
// romanized Hindi function words and common chat fillers.
var stopWords = map[string]bool{
	// English
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "this": true, "that": true, "these": true,
	"those": true, "i": true, "you": true, "he": true, "she": true, "it": true,
	"we": true, "they": true, "me": true, "him": true, "her": true, "us": true,
	"them": true, "my": true, "your": true, "his": true, "its": true,
	"our": true, "their": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "must": true, "can": true, "shall": true, "not": true,
	"no": true, "yes": true, "ok": true, "okay": true, "im": true, "ive": true,
	"id": true, "ill": true, "dont": true, "wont": true, "cant": true,
	"shouldnt": true, "wouldnt": true, "couldnt": true, "isnt": true,
	"arent": true, "wasnt": true, "werent": true, "hasnt": true,
	"havent": true, "hadnt": true, "didnt": true, "doesnt": true,
	// Romanized Hindi
	"hai": true, "kya": true, "aur": true, "main": true, "mein": true,
	"hoon": true, "hun": true, "tum": true, "aap": true, "yeh": true,
	"woh": true, "jo": true, "ka": true, "ki": true, "ke": true, "se": true,
	"par": true, "tha": true, "thi": true, "kar": true, "koi": true,
	"bhi": true, "nahi": true, "nahin": true, "haan": true, "han": true,
	"agar": true, "aise": true, "waise": true, "kaise": true, "phir": true,
	"ab": true, "abhi": true, "bas": true, "sirf": true, "sab": true,
	"kuch": true, "kyun": true, "kyunki": true, "isliye": true,
	"lekin": true, "magar": true, "nai": true, "jaisi": true, "jaise": true,
	"jitna": true, "kitna": true, "kaha": true, "kahan": true, "kab": true,
	"kabhi": true, "yaha": true, "waha": true, "mai": true, "iss": true,
	"inn": true, "unn": true, "mere": true, "mera": true, "meri": true,
	"tera": true, "teri": true, "unka": true, "unki": true,
	// Chat and SMS fillers
	"lol": true, "haha": true, "hehe": true, "hmm": true, "ohh": true,
	"wow": true, "cool": true, "nice": true, "good": true, "bad": true,
	"omg": true, "btw": true, "brb": true, "ttyl": true, "thx": true,
	"thanks": true, "thank": true, "welcome": true, "plz": true,
	"please": true, "sorry": true, "bro": true, "dude": true, "yaar": true,
	"yar": true, "dost": true, "bhai": true, "behen": true, "di": true,
	"sir": true, "mam": true, "ji": true, "hello": true,
	// Filler words
	"like": true, "just": true, "only": true, "also": true, "even": true,
	"now": true, "then": true, "here": true, "there": true, "where": true,
	"when": true, "what": true, "who": true, "how": true, "why": true,
	"which": true, "whose": true, "whom": true,
}

// WordCloudStopWords returns the stop-word set handed to the word-cloud
// renderer.
func WordCloudStopWords() map[string]bool {
	return wordCloudStopWords
}

// wordCloudStopWords extends the base set with the export marker words so
// placeholders like "<Media omitted>" never dominate a word cloud.
var wordCloudStopWords = func() map[string]bool {
	extra := []string{
		"media", "omitted", "image", "video", "audio",
		"document", "contact", "card", "location",
	}
	set := make(map[string]bool, len(stopWords)+len(extra))
	for word := range stopWords {
		set[word] = true
	}
	for _, word := range extra {
		set[word] = true
	}
	return set
}()
