package usecase

import (
	"fmt"
	"regexp"
	"strconv"
)

// categoryCodes maps well-known product categories to the short code
// embedded in generated SKUs. Anything else falls back to GEN.
var categoryCodes = map[string]string{
	"Building Materials": "BLD",
	"Equipment":          "EQP",
	"Finishing":          "FIN",
	"Tools":              "TLS",
	"Safety":             "SFT",
}

var skuNumberRe = regexp.MustCompile(`^PRD-[A-Z]+-(\d+)$`)

func categoryCode(category string) string {
	if code, ok := categoryCodes[category]; ok {
		return code
	}
	return "GEN"
}

// nextSKU derives the next SKU in a category sequence from the greatest
// SKU seen so far. An empty or unparseable lastSKU starts the sequence
// at 001.
func nextSKU(code, lastSKU string) string {
	next := 1
	if m := skuNumberRe.FindStringSubmatch(lastSKU); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("PRD-%s-%03d", code, next)
}
