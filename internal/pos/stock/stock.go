package stock

// Category describes how much of a product is left on the shelf.
type Category string

const (
	Empty    Category = "empty"
	Low      Category = "low"
	Normal   Category = "normal"
	Abundant Category = "abundant"
)

const (
	lowMax    = 9
	normalMax = 50
)

// Classify maps an on-hand count to its category. onHand must be >= 0.
func Classify(onHand int) Category {
	switch {
	case onHand == 0:
		return Empty
	case onHand <= lowMax:
		return Low
	case onHand <= normalMax:
		return Normal
	default:
		return Abundant
	}
}

// Label is the badge text shown on the stock screen.
func (c Category) Label() string {
	switch c {
	case Empty:
		return "Habis"
	case Low:
		return "Sedikit"
	case Normal:
		return "Normal"
	case Abundant:
		return "Banyak"
	}
	return string(c)
}

type Summary struct {
	Total    int `json:"total"`
	Empty    int `json:"empty"`
	Low      int `json:"low"`
	Normal   int `json:"normal"`
	Abundant int `json:"abundant"`
}

// CountByCategory builds the summary cards for the stock screen.
func CountByCategory(onHand []int) Summary {
	s := Summary{Total: len(onHand)}
	for _, n := range onHand {
		switch Classify(n) {
		case Empty:
			s.Empty++
		case Low:
			s.Low++
		case Normal:
			s.Normal++
		case Abundant:
			s.Abundant++
		}
	}
	return s
}
