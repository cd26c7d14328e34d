package command

import (
	"strconv"
	"strings"

	"github.com/sandevgo/cinebot/internal/core"
)

// datePeriod mirrors the host's date-period parameter shape.
func datePeriod(year int) map[string]any {
	return map[string]any{"startDate": map[string]any{"year": year}}
}

// splitYear peels a trailing four-digit year off args.
func splitYear(args []string) ([]string, int) {
	if len(args) == 0 {
		return args, 0
	}
	last := args[len(args)-1]
	if len(last) != 4 {
		return args, 0
	}
	year, err := strconv.Atoi(last)
	if err != nil {
		return args, 0
	}
	return args[:len(args)-1], year
}

// FilterParams reads free-form "/discover netflix science fiction 2020"
// style arguments. A known provider word is taken as provider, a four-digit
// number as year, and the remaining words as the genre.
func FilterParams(args []string) map[string]any {
	params := map[string]any{}
	var rest []string
	seen := core.ProviderNone

	for _, a := range args {
		if y, err := strconv.Atoi(a); err == nil && len(a) == 4 {
			params[core.ParamDatePeriod] = datePeriod(y)
			continue
		}
		if p, known := core.ParseProvider(a); known {
			// "hbo max" names one service twice.
			if seen == core.ProviderNone {
				params[core.ParamProvider] = a
				seen = p
				continue
			}
			if p == seen {
				continue
			}
		}
		rest = append(rest, a)
	}

	if len(rest) > 0 {
		params[core.ParamGenre] = strings.Join(rest, " ")
	}
	return params
}

// TitleParams reads "/movie Dune 1984" style arguments.
func TitleParams(args []string) map[string]any {
	words, year := splitYear(args)
	if len(words) == 0 && year != 0 {
		// A lone number is a title, e.g. "1917".
		words, year = args, 0
	}
	params := map[string]any{core.ParamMovie: strings.Join(words, " ")}
	if year != 0 {
		params[core.ParamDatePeriod] = datePeriod(year)
	}
	return params
}
