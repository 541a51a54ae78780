package content

import (
	"errors"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrUnfilled = errors.New("template placeholder left unfilled")

	placeholder = regexp.MustCompile(`\{([a-z_]+)\}`)
)

// Picker draws one substitution value.
type Picker func(rng *rand.Rand) string

// Context maps placeholder tokens to the pickers that fill them.
type Context map[string]Picker

// Fill substitutes every {token} in tmpl. A token without a picker, or any
// brace left in the output, is an error.
func Fill(tmpl string, ctx Context, rng *rand.Rand) (string, error) {
	var missing []string
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		token := m[1 : len(m)-1]
		pick, ok := ctx[token]
		if !ok {
			missing = append(missing, token)
			return m
		}
		return pick(rng)
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s in %q", ErrUnfilled, strings.Join(missing, ", "), tmpl)
	}
	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("%w: stray brace in %q", ErrUnfilled, out)
	}
	return out, nil
}

// FillRandom picks a template from the catalog and fills it.
func FillRandom(templates []string, ctx Context, rng *rand.Rand) (string, error) {
	return Fill(Pick(rng, templates), ctx, rng)
}

func Choices(items ...string) Picker {
	return func(rng *rand.Rand) string {
		return Pick(rng, items)
	}
}

// Number picks an integer in [lo, hi].
func Number(lo, hi int) Picker {
	return func(rng *rand.Rand) string {
		return strconv.Itoa(lo + rng.Intn(hi-lo+1))
	}
}

func Pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}
