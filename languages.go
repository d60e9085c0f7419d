package weft

import "strings"

// LanguageNames maps language tags to human-readable names used in
// translation prompts. Site locale tags are BCP 47 ("fr-FR", "pt-BR");
// lookups fall back to the base subtag.
var LanguageNames = map[string]string{
	"en-US": "English (United States)",
	"en-GB": "English (United Kingdom)",
	"de-DE": "German (Germany)",
	"es-ES": "Spanish (Spain)",
	"es-MX": "Spanish (Mexico)",
	"fr-FR": "French (France)",
	"it-IT": "Italian (Italy)",
	"ja-JP": "Japanese (Japan)",
	"pt-BR": "Portuguese (Brazil)",
	"pt-PT": "Portuguese (Portugal)",
	"zh-CN": "Chinese (Simplified)",
	"zh-TW": "Chinese (Traditional)",
	"ar-SA": "Arabic (Saudi Arabia)",
	"ru-RU": "Russian (Russia)",
	"ko-KR": "Korean (South Korea)",
	"tr-TR": "Turkish (Turkey)",
	"pl-PL": "Polish (Poland)",
	"nl-NL": "Dutch (Netherlands)",
	"th-TH": "Thai (Thailand)",
	"vi-VN": "Vietnamese (Vietnam)",
	"id-ID": "Indonesian (Indonesia)",
	"uk-UA": "Ukrainian (Ukraine)",
}

// baseNames covers bare language subtags, which some site configurations
// use as full locale tags.
var baseNames = map[string]string{
	"en": "English",
	"de": "German",
	"es": "Spanish",
	"fr": "French",
	"it": "Italian",
	"ja": "Japanese",
	"pt": "Portuguese",
	"zh": "Chinese",
	"ar": "Arabic",
	"ru": "Russian",
	"ko": "Korean",
	"tr": "Turkish",
	"pl": "Polish",
	"nl": "Dutch",
	"th": "Thai",
	"vi": "Vietnamese",
	"id": "Indonesian",
	"uk": "Ukrainian",
	"hi": "Hindi",
	"he": "Hebrew",
	"sw": "Swahili",
	"bn": "Bengali",
}

// LanguageName returns the human-readable name for a language tag, falling
// back to the base subtag and finally to the tag itself. Prompts read better
// with "French (France)" than with "fr-FR", and the tag is kept alongside
// the name so the model still sees the exact target.
func LanguageName(tag string) string {
	if name, ok := LanguageNames[tag]; ok {
		return name
	}
	if name, ok := baseNames[BaseTag(tag)]; ok {
		return name
	}
	return tag
}

// BaseTag returns the lowercase primary language subtag ("fr" from "fr-FR").
func BaseTag(tag string) string {
	tag = strings.ReplaceAll(tag, "_", "-")
	base, _, _ := strings.Cut(tag, "-")
	return strings.ToLower(base)
}

// SameLanguage reports whether two tags share a primary language subtag.
// A target that matches the source language needs no translation.
func SameLanguage(a, b string) bool {
	return BaseTag(a) == BaseTag(b)
}
