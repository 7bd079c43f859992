package game

import (
	"sort"
)

type Category int

// Categories occupy bands 1,000,000 apart so a stronger category always
// outscores a weaker one regardless of kickers.
const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

const bandWidth = 1_000_000

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

type Result struct {
	Score    int
	Category Category
}

func (r Result) BetterThan(o Result) bool {
	return r.Score > o.Score
}

// Evaluate ranks the best hand reachable from hole+board (2 to 7 cards in
// total). The rule ladder is checked strongest first and returns on the first
// match, so the best 5-card subset is selected implicitly.
func Evaluate(hole, board []Card) Result {
	cards := make([]Card, 0, len(hole)+len(board))
	cards = append(cards, hole...)
	cards = append(cards, board...)
	return evaluate(cards)
}

func evaluate(cards []Card) Result {
	values := make([]int, 0, len(cards))
	counts := map[int]int{}
	bySuit := map[Suit][]int{}
	for _, c := range cards {
		v := int(c.Rank)
		values = append(values, v)
		counts[v]++
		bySuit[c.Suit] = append(bySuit[c.Suit], v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	var flushSuit Suit
	hasFlush := false
	for s, vs := range bySuit {
		if len(vs) >= 5 {
			flushSuit = s
			hasFlush = true
		}
	}

	if hasFlush {
		if ok, high := straightHigh(bySuit[flushSuit]); ok {
			return Result{Score: int(StraightFlush)*bandWidth + high, Category: StraightFlush}
		}
	}

	type group struct {
		value int
		count int
	}
	groups := make([]group, 0, len(counts))
	for v, n := range counts {
		groups = append(groups, group{value: v, count: n})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})

	if groups[0].count == 4 {
		kicker := highestExcluding(values, groups[0].value)
		return Result{Score: int(FourOfAKind)*bandWidth + groups[0].value*100 + kicker, Category: FourOfAKind}
	}
	if groups[0].count == 3 && len(groups) > 1 && groups[1].count >= 2 {
		return Result{Score: int(FullHouse)*bandWidth + groups[0].value*100 + groups[1].value, Category: FullHouse}
	}
	if hasFlush {
		high := 0
		for _, v := range bySuit[flushSuit] {
			if v > high {
				high = v
			}
		}
		return Result{Score: int(Flush)*bandWidth + high, Category: Flush}
	}
	if ok, high := straightHigh(values); ok {
		return Result{Score: int(Straight)*bandWidth + high, Category: Straight}
	}
	if groups[0].count == 3 {
		ks := topKickers(values, []int{groups[0].value}, 2)
		return Result{Score: int(ThreeOfAKind)*bandWidth + groups[0].value*1000 + at(ks, 0)*10 + at(ks, 1), Category: ThreeOfAKind}
	}
	if groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2 {
		hi, lo := groups[0].value, groups[1].value
		kicker := highestExcluding(values, hi, lo)
		return Result{Score: int(TwoPair)*bandWidth + hi*1000 + lo*10 + kicker, Category: TwoPair}
	}
	if groups[0].count == 2 {
		ks := topKickers(values, []int{groups[0].value}, 3)
		// Base-15 kicker weights keep the first kicker dominant while staying
		// well inside the band.
		tie := at(ks, 0)*225 + at(ks, 1)*15 + at(ks, 2)
		return Result{Score: int(OnePair)*bandWidth + groups[0].value*10000 + tie, Category: OnePair}
	}
	return Result{Score: int(HighCard)*bandWidth + values[0], Category: HighCard}
}

// straightHigh reports the highest top-of-run among 5+ consecutive distinct
// values, with A-2-3-4-5 counting as a 5-high straight.
func straightHigh(values []int) (bool, int) {
	unique := uniqueDesc(values)
	if len(unique) < 5 {
		return false, 0
	}
	for i := 0; i+4 < len(unique); i++ {
		if unique[i]-unique[i+4] == 4 {
			return true, unique[i]
		}
	}
	if contains(unique, int(Ace)) && contains(unique, 5) && contains(unique, 4) && contains(unique, 3) && contains(unique, 2) {
		return true, 5
	}
	return false, 0
}

func uniqueDesc(values []int) []int {
	seen := map[int]bool{}
	out := make([]int, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func contains(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func highestExcluding(values []int, exclude ...int) int {
	for _, v := range values {
		skip := false
		for _, e := range exclude {
			if v == e {
				skip = true
			}
		}
		if !skip {
			return v
		}
	}
	return 0
}

func topKickers(values []int, exclude []int, n int) []int {
	out := make([]int, 0, n)
	for _, v := range values {
		skip := false
		for _, e := range exclude {
			if v == e {
				skip = true
				break
			}
		}
		if skip {
			continue
		}
		out = append(out, v)
		if len(out) == n {
			break
		}
	}
	return out
}

func at(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}
