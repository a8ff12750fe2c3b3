package utils

import (
	"regexp"
	"strings"
)

// Each satisfied signal is worth 10 points; the total is capped at 100.
const seoPointsPerSignal = 10

var (
	headingRe = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)
	imageRe   = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	// plain links only; the leading [^!(] keeps markdown images out
	linkRe = regexp.MustCompile(`(?:^|[^!])\[[^\]]*\]\(([^)\s]+)`)
)

// SEOInput carries the article fields the score heuristic inspects.
type SEOInput struct {
	Content         string
	MetaTitle       string
	MetaDescription string
	PrimaryKeyword  string
	WordCount       int
}

// SEOScore computes a 0-100 heuristic from ten independent signals:
// meta title and description length bands, primary keyword in body and
// meta title, a heading, an image, alt text on every image, an internal
// link, an external link, and a word-count band.
func SEOScore(in SEOInput) int {
	score := 0
	lowerContent := strings.ToLower(in.Content)
	keyword := strings.ToLower(strings.TrimSpace(in.PrimaryKeyword))

	// 1. Meta title length band
	if n := len(in.MetaTitle); n >= 30 && n <= 60 {
		score += seoPointsPerSignal
	}

	// 2. Meta description length band
	if n := len(in.MetaDescription); n >= 100 && n <= 160 {
		score += seoPointsPerSignal
	}

	// 3. Primary keyword appears in the body
	if keyword != "" && strings.Contains(lowerContent, keyword) {
		score += seoPointsPerSignal
	}

	// 4. Primary keyword appears in the meta title
	if keyword != "" && strings.Contains(strings.ToLower(in.MetaTitle), keyword) {
		score += seoPointsPerSignal
	}

	// 5. At least one heading
	if headingRe.MatchString(in.Content) {
		score += seoPointsPerSignal
	}

	// 6 & 7. Images present, and every image carries alt text
	images := imageRe.FindAllStringSubmatch(in.Content, -1)
	if len(images) > 0 {
		score += seoPointsPerSignal
		allAlt := true
		for _, img := range images {
			if strings.TrimSpace(img[1]) == "" {
				allAlt = false
				break
			}
		}
		if allAlt {
			score += seoPointsPerSignal
		}
	}

	// 8 & 9. Internal and external links
	var hasInternal, hasExternal bool
	for _, link := range linkRe.FindAllStringSubmatch(in.Content, -1) {
		target := link[1]
		switch {
		case strings.HasPrefix(target, "/"):
			hasInternal = true
		case strings.HasPrefix(target, "http://"), strings.HasPrefix(target, "https://"):
			hasExternal = true
		}
	}
	if hasInternal {
		score += seoPointsPerSignal
	}
	if hasExternal {
		score += seoPointsPerSignal
	}

	// 10. Word-count band for long-form content
	if in.WordCount >= 600 && in.WordCount <= 2500 {
		score += seoPointsPerSignal
	}

	if score > 100 {
		score = 100
	}
	return score
}

// CountWords counts whitespace-separated words in the content.
func CountWords(content string) int {
	return len(strings.Fields(content))
}

// ReadingTime estimates reading minutes at 200 words per minute,
// rounding up; zero-word content reads in zero minutes.
func ReadingTime(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	return (wordCount + 199) / 200
}
