package rating

import "math"

// WinProbability returns the percentage chance, rounded to the nearest
// integer, that a player rated a beats a player rated b under the
// standard Elo expectation curve. A 400 point edge maps to roughly 91.
func WinProbability(a, b int) int {
	chance := 1 / (1 + math.Pow(10, float64(b-a)/400))
	return int(math.Round(chance * 100))
}
