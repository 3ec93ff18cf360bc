// Package report renders a user's holdings as Markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/Rahul-Chotaliya/tradehub/internal/model"
)

// Currency is the display currency of cost figures. Costs are recorded without a
// currency, so no conversion happens.
const Currency = money.USD

// FormatMoney renders amount in the display currency, e.g. "$1,234.56". Amounts are rounded
// half away from zero to the currency's fraction digits. Amounts whose minor units overflow
// int64 are printed without thousands separators.
func FormatMoney(amount decimal.Decimal) string {
	cur := money.GetCurrency(Currency)
	minor := amount.Shift(int32(cur.Fraction)).Round(0).BigInt()
	if !minor.IsInt64() {
		sign := ""
		if amount.IsNegative() {
			sign = "-"
		}
		return sign + cur.Grapheme + amount.Abs().StringFixed(int32(cur.Fraction))
	}
	return money.New(minor.Int64(), Currency).Display()
}

// HoldingsMarkdown renders one table per category that has assets, followed by the total
// cost basis across all of them.
func HoldingsMarkdown(username string, categories []model.CategoryAssets) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Holdings of %s\n\n", escape(username))

	grandTotal := decimal.Zero
	empty := true
	for _, c := range categories {
		if len(c.Assets) == 0 {
			continue
		}
		empty = false

		fmt.Fprintf(&b, "## %s\n\n", escape(c.Name))
		b.WriteString("| Asset | Quantity | Average cost | Total cost |\n")
		b.WriteString("|---|---:|---:|---:|\n")

		categoryTotal := decimal.Zero
		for _, a := range c.Assets {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				escape(a.Name),
				a.Quantity.String(),
				FormatMoney(a.AverageCost),
				FormatMoney(a.TotalCost),
			)
			categoryTotal = categoryTotal.Add(a.TotalCost)
		}
		fmt.Fprintf(&b, "\n**%s total:** %s\n\n", escape(c.Name), FormatMoney(categoryTotal))

		grandTotal = grandTotal.Add(categoryTotal)
	}

	if empty {
		b.WriteString("_No holdings._\n")
		return b.String()
	}

	fmt.Fprintf(&b, "**Total cost basis:** %s\n", FormatMoney(grandTotal))
	return b.String()
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "#", `\#`)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}
