package traits

import (
	"fmt"
	"strings"
)

// Summary names the top two traits and the top pitfall in one line.
func Summary(traits []Trait, pitfalls []Pitfall) string {
	var b strings.Builder
	switch len(traits) {
	case 0:
		b.WriteString("Your writing does not yet show a dominant signature trait.")
	case 1:
		fmt.Fprintf(&b, "Your writing stands out for %s.", strings.ToLower(traits[0].Name))
	default:
		fmt.Fprintf(&b, "Your writing stands out for %s and %s.",
			strings.ToLower(traits[0].Name), strings.ToLower(traits[1].Name))
	}
	if len(pitfalls) == 0 {
		b.WriteString(" No major pitfalls detected.")
	} else {
		fmt.Fprintf(&b, " Watch out for %s.", strings.ToLower(pitfalls[0].Name))
	}
	return b.String()
}
