package transcript

import "strings"

// Delimiter is the line inserted between consecutive cleaned chunks so a
// reviewer can locate chunk boundaries, where the overlap may have produced
// duplicated or ambiguous speaker attribution.
const Delimiter = "=========="

// Assemble joins cleaned chunks in order, separated by a [Delimiter] line,
// and returns the combined text together with the summed dollar cost.
// N chunks produce exactly N-1 delimiter lines; no results produce an empty
// transcript at zero cost.
func Assemble(results []Result) (string, float64) {
	texts := make([]string, len(results))
	total := 0.0
	for i, r := range results {
		texts[i] = r.Text
		total += r.Cost
	}
	return strings.Join(texts, "\n"+Delimiter+"\n"), total
}
