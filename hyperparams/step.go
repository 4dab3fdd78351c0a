package hyperparams

import (
	"sort"
	"strconv"
	"strings"
)

type step struct {
	Iter int
	Val  float64
}

type stepper []step

// Step returns a HyperParameter that starts at 'base' and changes value at the iterations given
// by Add.
func Step(base float64) *stepper {
	s := make([]step, 1)

	s[0] = step{0, base}

	st := stepper(s)
	return &st
}

// Add adds a step to the HyperParameter, so that from iteration 'iter' onwards (until the next
// step) it has the given value. Steps may be added in any order.
func (s *stepper) Add(iter int, value float64) *stepper {
	*s = append(*s, step{iter, value})
	sort.SliceStable(*s, func(i, j int) bool {
		return (*s)[i].Iter < (*s)[j].Iter
	})
	return s
}

func (s *stepper) TypeString() string {
	return "step"
}

func (s *stepper) Value(iter int) float64 {
	sl := []step(*s)
	for i := 1; i < len(sl); i++ {
		if sl[i].Iter > iter {
			return sl[i-1].Val
		}
	}

	return sl[len(sl)-1].Val
}

// String returns the stepper in the same form accepted by Parse
func (s *stepper) String() string {
	sl := []step(*s)
	strs := make([]string, len(sl))
	for i, st := range sl {
		v := strconv.FormatFloat(st.Val, 'g', -1, 64)
		if i == 0 {
			strs[i] = v
		} else {
			strs[i] = strconv.Itoa(st.Iter) + "=" + v
		}
	}

	return "step:" + strings.Join(strs, ",")
}
