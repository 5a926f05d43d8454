// internal/draft/slug_test.go
package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Jon Rahm":           "jon-rahm",
		"  Rory   McIlroy  ": "rory-mcilroy",
		"Ludvig Åberg":       "ludvig-berg",
		"J.T. Poston":        "j-t-poston",
		"Min Woo Lee!!!":     "min-woo-lee",
		"2nd Alternate":      "2nd-alternate",
		"---":                "golfer",
		"":                   "golfer",
	}
	for input, want := range cases {
		assert.Equal(t, want, slugify(input), "input %q", input)
	}
}
