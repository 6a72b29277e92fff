package nlp

import "strings"

// aliases groups spellings of the same skill.
var aliases = [][]string{
	{"postgres", "postgresql"},
	{"k8s", "kubernetes"},
	{"go", "golang"},
	{"js", "javascript"},
	{"ts", "typescript"},
	{"rest", "rest api"},
	{"ci cd", "cicd"},
}

var aliasIndex = func() map[string][]string {
	idx := make(map[string][]string)
	for _, group := range aliases {
		for _, name := range group {
			idx[name] = group
		}
	}
	return idx
}()

// SkillVariants returns the normalized spellings a skill may appear under,
// the skill itself first.
func SkillVariants(skill string) []string {
	base := NormalizeText(skill)
	if base == "" {
		return []string{}
	}
	out := []string{base}
	seen := map[string]struct{}{base: {}}
	add := func(s string) {
		if _, ok := seen[s]; ok || s == "" {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	for _, alt := range aliasIndex[base] {
		add(alt)
	}
	// multi-word skills: swap aliased words one at a time
	words := strings.Fields(base)
	if len(words) > 1 {
		for i, w := range words {
			for _, alt := range aliasIndex[w] {
				if alt == w || strings.Contains(alt, " ") {
					continue
				}
				swapped := append([]string{}, words...)
				swapped[i] = alt
				add(strings.Join(swapped, " "))
			}
		}
	}
	return out
}

// MatchSkills splits skills into those mentioned in text and the rest.
func MatchSkills(text string, skills []string) (matched, missing []string) {
	norm := NormalizeText(text)
	matched, missing = []string{}, []string{}
	for _, skill := range skills {
		found := false
		for _, v := range SkillVariants(skill) {
			if ContainsPhrase(norm, v) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, skill)
		} else if strings.TrimSpace(skill) != "" {
			missing = append(missing, skill)
		}
	}
	return matched, missing
}
