// Package spam detects replies that look like spam.
package spam

import (
	"strings"
	"unicode/utf8"
)

// Inspection looks at a body and reports whether it is spam.
type Inspection interface {
	Name() string
	Detect(body string) bool
}

// Detector runs every inspection and stops at the first hit.
type Detector struct {
	inspections []Inspection
}

func NewDetector(inspections ...Inspection) *Detector {
	return &Detector{inspections: inspections}
}

// Default returns the detector used for replies: a keyword blacklist plus the
// held-down-key check.
func Default(keywords []string) *Detector {
	return NewDetector(InvalidKeywords(keywords), KeyHeldDown(DefaultHeldDownRun))
}

// Detect returns the name of the first inspection that flagged body.
func (d *Detector) Detect(body string) (string, bool) {
	for _, in := range d.inspections {
		if in.Detect(body) {
			return in.Name(), true
		}
	}
	return "", false
}

type invalidKeywords struct {
	keywords []string
}

// InvalidKeywords flags bodies containing any of keywords, case-insensitively.
func InvalidKeywords(keywords []string) Inspection {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return &invalidKeywords{keywords: lowered}
}

func (i *invalidKeywords) Name() string { return "invalid_keywords" }

func (i *invalidKeywords) Detect(body string) bool {
	lower := strings.ToLower(body)
	for _, k := range i.keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

const DefaultHeldDownRun = 5

type keyHeldDown struct {
	run int
}

// KeyHeldDown flags bodies where any character repeats run or more times in a
// row ("aaaaa").
func KeyHeldDown(run int) Inspection {
	if run < 2 {
		run = DefaultHeldDownRun
	}
	return &keyHeldDown{run: run}
}

func (k *keyHeldDown) Name() string { return "key_held_down" }

func (k *keyHeldDown) Detect(body string) bool {
	var prev rune = utf8.RuneError
	count := 0
	for _, r := range body {
		if r == prev {
			count++
		} else {
			prev, count = r, 1
		}
		if count >= k.run {
			return true
		}
	}
	return false
}
