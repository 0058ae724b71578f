package service

import "sort"

// monthOrder maps the twelve period labels to calendar positions.
// Periods are free text, so labels outside this table are legal; they sort
// after every recognized month, keeping their relative order.
var monthOrder = map[string]int{
	"Enero":      1,
	"Febrero":    2,
	"Marzo":      3,
	"Abril":      4,
	"Mayo":       5,
	"Junio":      6,
	"Julio":      7,
	"Agosto":     8,
	"Septiembre": 9,
	"Octubre":    10,
	"Noviembre":  11,
	"Diciembre":  12,
}

// SortPeriods orders period labels in calendar order, not lexically.
func SortPeriods(periods []string) []string {
	out := append([]string(nil), periods...)
	sort.SliceStable(out, func(i, j int) bool {
		oi, iok := monthOrder[out[i]]
		oj, jok := monthOrder[out[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok:
			return true
		case jok:
			return false
		default:
			return false
		}
	})
	return out
}
