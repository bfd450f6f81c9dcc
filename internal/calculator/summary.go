package calculator

import "math"

// Summary describes the prices of the items in one pack.
type Summary struct {
	ItemCount int
	Total     float64
	Average   float64
	Min       float64
	Max       float64
}

// SummarizePack computes count, total, average, min and max over item prices.
// All amounts are rounded to cents. An empty pack yields a zero Summary.
func SummarizePack(prices []float64) Summary {
	if len(prices) == 0 {
		return Summary{}
	}

	s := Summary{
		ItemCount: len(prices),
		Min:       prices[0],
		Max:       prices[0],
	}
	for _, p := range prices {
		s.Total += p
		s.Min = math.Min(s.Min, p)
		s.Max = math.Max(s.Max, p)
	}
	s.Average = s.Total / float64(len(prices))

	s.Total = roundCents(s.Total)
	s.Average = roundCents(s.Average)
	s.Min = roundCents(s.Min)
	s.Max = roundCents(s.Max)
	return s
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
