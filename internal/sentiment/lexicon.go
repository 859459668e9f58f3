package sentiment

// Static word lists for the lexicon scorer. Positive/negative words are
// matched as substrings of a token; negators and intensifiers are matched
// as whole tokens only.

var positiveWords = []string{
	"good", "great", "excellent", "amazing", "awesome", "fantastic",
	"wonderful", "brilliant", "outstanding", "superb", "perfect",
	"love", "loved", "like", "enjoy", "impressive", "innovative",
	"reliable", "helpful", "friendly", "fast", "smooth", "beautiful",
	"best", "better", "happy", "pleased", "satisfied", "recommend",
	"quality", "delightful", "solid", "winning", "success",
}

var negativeWords = []string{
	"bad", "terrible", "awful", "horrible", "poor", "disappointing",
	"disappointed", "worst", "worse", "hate", "hated", "dislike",
	"broken", "slow", "buggy", "useless", "annoying", "frustrating",
	"frustrated", "angry", "unreliable", "rude", "expensive", "overpriced",
	"scam", "fraud", "failure", "failed", "problem", "issue",
	"crash", "defective", "refund", "complaint", "mediocre",
}

var negatorWords = map[string]struct{}{
	"not":     {},
	"no":      {},
	"never":   {},
	"neither": {},
	"nobody":  {},
	"nothing": {},
	"hardly":  {},
	"barely":  {},
	"without": {},
	"don't":   {},
	"doesn't": {},
	"didn't":  {},
	"won't":   {},
	"can't":   {},
	"cannot":  {},
	"isn't":   {},
	"aren't":  {},
	"wasn't":  {},
	"weren't": {},
}

var intensifierWords = map[string]struct{}{
	"very":       {},
	"really":     {},
	"extremely":  {},
	"incredibly": {},
	"absolutely": {},
	"totally":    {},
	"completely": {},
	"highly":     {},
	"so":         {},
	"super":      {},
	"truly":      {},
	"deeply":     {},
}

// themeKeywords maps trigger keywords to themes. Lookup is substring-based
// against lowercased tokens; "general" is the fallback when nothing matches.
var themeKeywords = map[string]string{
	"price":      "pricing",
	"pricing":    "pricing",
	"cost":       "pricing",
	"expensive":  "pricing",
	"cheap":      "pricing",
	"affordable": "pricing",
	"value":      "pricing",

	"quality":  "quality",
	"reliable": "quality",
	"durable":  "quality",
	"sturdy":   "quality",
	"broken":   "quality",
	"defect":   "quality",

	"service":  "customer service",
	"support":  "customer service",
	"staff":    "customer service",
	"helpful":  "customer service",
	"response": "customer service",
	"rude":     "customer service",

	"delivery": "delivery",
	"shipping": "delivery",
	"arrived":  "delivery",
	"package":  "delivery",
	"late":     "delivery",

	"design":    "design",
	"look":      "design",
	"style":     "design",
	"interface": "design",
	"ui":        "design",

	"feature":  "product features",
	"function": "product features",
	"update":   "product features",
	"app":      "product features",
	"software": "product features",

	"innovat":    "innovation",
	"technology": "innovation",
	"modern":     "innovation",
}

// emotionKeywords maps trigger keywords to coarse emotional tones.
var emotionKeywords = map[string]string{
	"hope":      "optimism",
	"excited":   "optimism",
	"exciting":  "optimism",
	"promising": "optimism",
	"improve":   "optimism",
	"future":    "optimism",

	"worried":  "concern",
	"worry":    "concern",
	"concern":  "concern",
	"afraid":   "concern",
	"risk":     "concern",
	"warning":  "concern",
	"problem":  "concern",

	"sure":       "confidence",
	"certain":    "confidence",
	"definitely": "confidence",
	"trust":      "confidence",
	"proven":     "confidence",

	"maybe":    "uncertainty",
	"perhaps":  "uncertainty",
	"unsure":   "uncertainty",
	"unclear":  "uncertainty",
	"doubt":    "uncertainty",
	"confused": "uncertainty",
}
