package model

import "sort"

// leftoverKey groups remaining pieces with the same dimensions.
type leftoverKey struct {
	length, width float64
}

// LeftoverStock turns the remaining pieces of a layout into stock items so
// they can be carried into the next room. Pieces with identical dimensions
// are merged; prices of original stock are kept where a remaining stock
// piece matches an original item exactly. Offcuts are unpriced.
func LeftoverStock(result LayoutResult, original []StockItem) []StockItem {
	counts := make(map[leftoverKey]int)
	sources := make(map[leftoverKey]PieceSource)
	var order []leftoverKey
	for _, r := range result.Remaining {
		k := leftoverKey{length: r.LengthMm, width: r.WidthMm}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
			sources[k] = r.Source
		}
		counts[k]++
		if r.Source == SourceStock {
			sources[k] = SourceStock
		}
	}

	items := make([]StockItem, 0, len(order))
	for _, k := range order {
		item := NewStockItem(k.length, k.width, counts[k])
		if sources[k] == SourceOffcut {
			item.Label = "Offcut"
		}
		for _, s := range original {
			if sources[k] == SourceStock && s.LengthMm == k.length && s.WidthMm == k.width {
				item.PricePerUnit = s.PricePerUnit
				item.Label = s.Label
				break
			}
		}
		items = append(items, item)
	}

	// Largest first
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UnitAreaM2() > items[j].UnitAreaM2()
	})
	return items
}

// TotalRemainingArea returns the total area of remaining pieces in m².
func TotalRemainingArea(remaining []RemainingPiece) float64 {
	var total float64
	for _, r := range remaining {
		total += r.AreaM2()
	}
	return total
}
