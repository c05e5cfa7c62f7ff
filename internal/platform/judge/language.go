package judge

// DefaultLanguageID is used when a challenge names a language the judge table
// does not know. An unknown language is not an error.
const DefaultLanguageID = 71 // Python

var languageIDs = map[string]int{
	"Python":     71,
	"JavaScript": 63,
	"Go":         60,
}

// LanguageID resolves a challenge's language name to the judge's language id.
func LanguageID(name string) int {
	if id, ok := languageIDs[name]; ok {
		return id
	}
	return DefaultLanguageID
}
